package controllers

import (
	"net/http"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/pkg/config"
	"github.com/agrisetu/agrisetu-backend/pkg/db"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	pkgredis "github.com/agrisetu/agrisetu-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AgriSetu-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the database and cache before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-AgriSetu-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrisetu/agrisetu-backend/api/responses"
	"github.com/agrisetu/agrisetu-backend/api/validators"
	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	pkgerrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/pagination"
)

// WalletBalance reads the current balance for one user. Users without a
// wallet row read as zero.
func WalletBalance(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		userID, err := uuidParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Balance(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// WalletTransactions pages through a user's journal, newest first.
func WalletTransactions(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		userID, err := uuidParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := wallet.ListParams{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("direction")); raw != "" {
			direction, parseErr := enums.ParseLedgerDirection(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid direction filter"))
				return
			}
			params.Direction = &direction
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, parseErr := enums.ParseLedgerCategory(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category filter"))
				return
			}
			params.Category = &category
		}

		page, err := svc.ListTransactions(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"items":       newEntryResponses(page.Items),
			"next_cursor": page.NextCursor,
		})
	}
}

type adjustWalletRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ActorID     uuid.UUID `json:"actor_id" validate:"required"`
	Direction   string    `json:"direction" validate:"required"`
	Amount      string    `json:"amount" validate:"required"`
	Category    string    `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// AdminWalletAdjust posts a manual credit or debit against a wallet.
func AdminWalletAdjust(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		var payload adjustWalletRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		direction, err := enums.ParseLedgerDirection(payload.Direction)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "direction must be credit or debit"))
			return
		}
		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal string"))
			return
		}

		category := enums.LedgerCategoryAdminAdjustment
		if payload.Category != "" {
			parsed, parseErr := enums.ParseLedgerCategory(payload.Category)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid ledger category"))
				return
			}
			category = parsed
		}

		entry, err := svc.AdminAdjust(r.Context(), wallet.AdjustInput{
			UserID:      payload.UserID,
			Direction:   direction,
			Amount:      amount,
			Category:    category,
			Description: sanitizeFreeText(payload.Description),
			ActorID:     payload.ActorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newEntryResponse(*entry))
	}
}

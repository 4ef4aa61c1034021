package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrisetu/agrisetu-backend/api/controllers"
	"github.com/agrisetu/agrisetu-backend/api/middleware"
	"github.com/agrisetu/agrisetu-backend/internal/bookings"
	"github.com/agrisetu/agrisetu-backend/internal/commission"
	"github.com/agrisetu/agrisetu-backend/internal/delivery"
	"github.com/agrisetu/agrisetu-backend/internal/orders"
	"github.com/agrisetu/agrisetu-backend/internal/settlement"
	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/config"
	"github.com/agrisetu/agrisetu-backend/pkg/db"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	pkgredis "github.com/agrisetu/agrisetu-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *pkgredis.Client
	WalletSvc     wallet.Service
	CommissionSvc commission.Service
	OrdersSvc     orders.Service
	BookingsSvc   bookings.Service
	DeliverySvc   delivery.Service
	SettlementSvc settlement.Service
}

// NewRouter builds the full HTTP surface: health probes, a public ping, and
// the versioned API with rate limiting and idempotency replay applied.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	apiPolicy := middleware.NewRateLimitPolicy("api", cfg.RateLimit.Window, cfg.RateLimit.IPLimit)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(apiPolicy, deps.Redis, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1", func(r chi.Router) {
			r.Post("/checkout", controllers.Checkout(deps.OrdersSvc, logg))
			r.Get("/orders/{orderId}", controllers.GetOrder(deps.OrdersSvc, logg))

			r.Route("/wallets", func(r chi.Router) {
				r.Get("/{userId}/balance", controllers.WalletBalance(deps.WalletSvc, logg))
				r.Get("/{userId}/transactions", controllers.WalletTransactions(deps.WalletSvc, logg))
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/labour", controllers.CreateLabourBooking(deps.BookingsSvc, logg))
				r.Get("/labour/{bookingId}", controllers.GetLabourBooking(deps.BookingsSvc, logg))
				r.Post("/transport", controllers.CreateTransportBooking(deps.BookingsSvc, logg))
				r.Get("/transport/{bookingId}", controllers.GetTransportBooking(deps.BookingsSvc, logg))
			})

			r.Post("/deliveries", controllers.CreateDelivery(deps.DeliverySvc, logg))
			r.Get("/deliveries/{deliveryId}", controllers.GetDelivery(deps.DeliverySvc, logg))

			r.Post("/settlements/transition", controllers.SettleTransition(deps.SettlementSvc, logg))

			r.Get("/commission/policies", controllers.ListCommissionPolicies(deps.CommissionSvc, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Post("/wallets/adjust", controllers.AdminWalletAdjust(deps.WalletSvc, logg))
				r.Put("/commission/policies/{category}", controllers.UpdateCommissionPolicy(deps.CommissionSvc, logg))
				r.Put("/commission/sellers/{sellerId}", controllers.SetSellerCommissionRate(deps.CommissionSvc, logg))
			})
		})
	})

	return r
}

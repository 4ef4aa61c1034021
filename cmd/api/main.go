package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agrisetu/agrisetu-backend/api/routes"
	"github.com/agrisetu/agrisetu-backend/internal/bookings"
	"github.com/agrisetu/agrisetu-backend/internal/commission"
	"github.com/agrisetu/agrisetu-backend/internal/delivery"
	"github.com/agrisetu/agrisetu-backend/internal/orders"
	"github.com/agrisetu/agrisetu-backend/internal/settlement"
	"github.com/agrisetu/agrisetu-backend/internal/wallet"
	"github.com/agrisetu/agrisetu-backend/pkg/config"
	"github.com/agrisetu/agrisetu-backend/pkg/db"
	"github.com/agrisetu/agrisetu-backend/pkg/logger"
	"github.com/agrisetu/agrisetu-backend/pkg/metrics"
	"github.com/agrisetu/agrisetu-backend/pkg/migrate"
	"github.com/agrisetu/agrisetu-backend/pkg/outbox"
	"github.com/agrisetu/agrisetu-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	platformAccountID, err := uuid.Parse(cfg.Settlement.PlatformAccountID)
	if err != nil {
		logg.Error(context.Background(), "invalid platform account id", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	walletSvc, err := wallet.NewService(dbClient, wallet.NewRepository(dbClient.DB()), outboxSvc, logg, platformAccountID)
	if err != nil {
		logg.Error(context.Background(), "failed to create wallet service", err)
		os.Exit(1)
	}

	commissionSvc, err := commission.NewService(commission.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersSvc, err := orders.NewService(dbClient, ordersRepo, walletSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	labourRepo := bookings.NewLabourRepository(dbClient.DB())
	transportRepo := bookings.NewTransportRepository(dbClient.DB())
	bookingsSvc, err := bookings.NewService(dbClient, labourRepo, transportRepo, walletSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	deliveryRepo := delivery.NewRepository(dbClient.DB())
	deliverySvc, err := delivery.NewService(deliveryRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	settlementSvc, err := settlement.NewService(settlement.Config{
		Tx:                dbClient,
		OrdersRepo:        ordersRepo,
		LabourRepo:        labourRepo,
		TransportRepo:     transportRepo,
		DeliveryRepo:      deliveryRepo,
		WalletSvc:         walletSvc,
		CommissionSvc:     commissionSvc,
		Stock:             ordersSvc,
		Outbox:            outboxSvc,
		Metrics:           metrics.NewSettlementMetrics(prometheus.DefaultRegisterer),
		Logger:            logg,
		PlatformAccountID: platformAccountID,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			WalletSvc:     walletSvc,
			CommissionSvc: commissionSvc,
			OrdersSvc:     ordersSvc,
			BookingsSvc:   bookingsSvc,
			DeliverySvc:   deliverySvc,
			SettlementSvc: settlementSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

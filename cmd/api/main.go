package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jrbautista/tindahan-pos/api/routes"
	cartsvc "github.com/jrbautista/tindahan-pos/internal/cart"
	"github.com/jrbautista/tindahan-pos/internal/catalog"
	"github.com/jrbautista/tindahan-pos/internal/checkout"
	"github.com/jrbautista/tindahan-pos/internal/customers"
	"github.com/jrbautista/tindahan-pos/internal/transactions"
	"github.com/jrbautista/tindahan-pos/pkg/config"
	"github.com/jrbautista/tindahan-pos/pkg/db"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
	"github.com/jrbautista/tindahan-pos/pkg/metrics"
	"github.com/jrbautista/tindahan-pos/pkg/migrate"
	"github.com/jrbautista/tindahan-pos/pkg/redis"
	"github.com/jrbautista/tindahan-pos/pkg/session"
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

	sessionManager, err := session.NewManager(redisClient, cfg.Session.TokenTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Session.CartTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	customersRepo := customers.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	checkoutService, err := checkout.NewService(
		dbClient,
		checkout.NewRepository(dbClient.DB()),
		cartStore,
		sessionManager,
		customersRepo,
		checkoutMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	transactionsService, err := transactions.NewService(transactions.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
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
			Config:       cfg,
			Logger:       logg,
			DBPinger:     dbClient,
			RedisPinger:  redisClient,
			Registry:     registry,
			Sessions:     sessionManager,
			Catalog:      catalogService,
			Customers:    customersService,
			Cart:         cartService,
			Checkout:     checkoutService,
			Transactions: transactionsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

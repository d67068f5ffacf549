package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/freefind/freefind-backend/api/routes"
	"github.com/freefind/freefind-backend/internal/accounts"
	"github.com/freefind/freefind-backend/internal/co2"
	"github.com/freefind/freefind-backend/internal/donations"
	"github.com/freefind/freefind-backend/internal/photos"
	"github.com/freefind/freefind-backend/pkg/aibackend"
	"github.com/freefind/freefind-backend/pkg/config"
	"github.com/freefind/freefind-backend/pkg/instance"
	"github.com/freefind/freefind-backend/pkg/jsonstore"
	"github.com/freefind/freefind-backend/pkg/logger"
	"github.com/freefind/freefind-backend/pkg/metrics"
	"github.com/freefind/freefind-backend/pkg/redis"
	"github.com/google/uuid"
)

const shutdownTimeout = 10 * time.Second

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

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Info(context.Background(), "redis not configured, running without cache and session revocation")
	}

	aiClient := aibackend.New(cfg.AIBackend)
	if aiClient == nil {
		logg.Info(context.Background(), "ai backend not configured, estimates use the local table")
	}
	estimator := co2.NewEstimator(aiClient, redisClient, cfg.AIBackend.EstimateCacheTTL, logg)

	accountsSvc, err := accounts.NewService(accounts.ServiceParams{
		AccountStore:    jsonstore.New[[]accounts.Account](cfg.Storage.AccountsPath()),
		CredentialStore: jsonstore.New[[]accounts.Credential](cfg.Storage.CredentialsPath()),
		Sessions:        redisClient,
		JWTConfig:       cfg.JWT,
		PasswordConfig:  cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	ledger := donations.NewLedger(jsonstore.New[[]donations.ItemRecord](cfg.Storage.DonationsPath()))
	donationsSvc, err := donations.NewService(donations.ServiceParams{
		Ledger:    ledger,
		Estimator: estimator,
		OnStats: func(ctx context.Context, userID uuid.UUID, stats donations.Stats) {
			if _, err := accountsSvc.RecomputeStats(ctx, userID, stats.Count, stats.CO2SavedKg); err != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "account stats recompute failed")
			}
		},
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create donation service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	requestMetrics := metrics.NewRequestMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			Redis:          redisClient,
			AIClient:       aiClient,
			Estimator:      estimator,
			Accounts:       accountsSvc,
			Donations:      donationsSvc,
			Photos:         photos.NewStorage(cfg.Photos),
			RequestMetrics: requestMetrics,
			Gatherer:       registry,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		closeErr := multierr.Combine(
			server.Shutdown(timeoutCtx),
			redisClient.Close(),
		)
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}

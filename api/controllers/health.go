package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/freefind/freefind-backend/api/responses"
	"github.com/freefind/freefind-backend/pkg/aibackend"
	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
	"github.com/freefind/freefind-backend/pkg/logger"
	"github.com/freefind/freefind-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreeFind-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the optional dependencies that are configured. A service
// running without Redis or the AI backend is still ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient *redis.Client, aiClient *aibackend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreeFind-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if cfg.Redis.Enabled() {
			if err := redisClient.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "up"
			}
		}

		if cfg.AIBackend.Enabled() {
			if err := aiClient.Ping(ctx); err != nil {
				checks["ai_backend"] = "down"
				healthy = false
			} else {
				checks["ai_backend"] = "up"
			}
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}

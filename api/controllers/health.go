package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/catalog-pricing/api/responses"
	"github.com/angelmondragon/catalog-pricing/pkg/config"
	pkgerrors "github.com/angelmondragon/catalog-pricing/pkg/errors"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

const (
	envHeader    = "X-Catalog-Pricing-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck names one dependency probed by HealthReady.
type ReadinessCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every check and answers 503 when any of them fails.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		var firstErr error
		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				results[check.Name] = "unavailable"
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			results[check.Name] = "ok"
		}

		if firstErr != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, firstErr, "dependency unavailable").
					WithDetails(map[string]any{"checks": results}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": results})
	}
}

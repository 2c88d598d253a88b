package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/jrbautista/tindahan-pos/api/responses"
	"github.com/jrbautista/tindahan-pos/pkg/config"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tindahan-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing store and fails closed when any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tindahan-Env", cfg.App.Env)

		var err error
		for _, dep := range deps {
			if dep == nil {
				continue
			}
			err = multierr.Append(err, dep.Ping(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "readiness check failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

package controllers

import (
	"context"
	"net/http"

	"github.com/Ahmad-Arslan-10/Steakaway/api/responses"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
)

// Pinger is satisfied by backing stores that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Steakaway-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the backing store answers. A nil
// pinger means state is in-process and the service is always ready.
func HealthReady(cfg *config.Config, store Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Steakaway-Env", cfg.App.Env)
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state store unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

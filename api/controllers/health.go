package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/quoteline/rfqtracker-backend/api/responses"
	"github.com/quoteline/rfqtracker-backend/pkg/config"
	pkgerrors "github.com/quoteline/rfqtracker-backend/pkg/errors"
	"github.com/quoteline/rfqtracker-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is the health surface a backing dependency must expose.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RFQTracker-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every backing dependency answers.
func HealthReady(cfg *config.Config, database, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RFQTracker-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		if database != nil {
			err = multierr.Append(err, database.Ping(ctx))
		}
		if cache != nil {
			err = multierr.Append(err, cache.Ping(ctx))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

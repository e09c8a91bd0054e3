package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/modkit/pkg/logger"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// ReadinessHandler returns 200 "READY" when every check passes and 503
// "NOT_READY" otherwise. Without checks it answers "ALIVE".
func ReadinessHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	log = logger.OrNop(log)
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "Readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

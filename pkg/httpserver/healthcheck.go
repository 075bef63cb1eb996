package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/htmlsaver/pkg/logger"
)

// Check is a named dependency probe, such as a storage backend ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthReport is the JSON body written by HealthCheckHandler.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const (
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	checkOK        = "ok"
	checkTimeout   = 5 * time.Second
)

// HealthCheckHandler returns a handler usable for both liveness and
// readiness probes.
//
//   - Liveness: with no checks the handler answers 200 with status "alive".
//   - Readiness: every check runs with the request context; if all pass the
//     handler answers 200 with status "ready", otherwise 503 with status
//     "not_ready" and the failing check's error in the report.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			WriteJSON(w, http.StatusOK, HealthReport{Status: StatusAlive})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		report := HealthReport{Status: StatusReady, Checks: make(map[string]string, len(checks))}
		code := http.StatusOK
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err))
				report.Checks[c.Name] = err.Error()
				report.Status = StatusNotReady
				code = http.StatusServiceUnavailable
				continue
			}
			report.Checks[c.Name] = checkOK
		}

		WriteJSON(w, code, report)
	}
}

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

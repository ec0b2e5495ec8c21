package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/recordkit/pkg/logger"
)

// Check is a named dependency probe such as pg.Healthcheck(pool).
type Check struct {
	Name  string
	Probe func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler answers liveness and readiness probes. Without checks it
// always reports "ok". With checks it runs each one with the request context
// and answers 503 when any fails.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		status := http.StatusOK

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for _, c := range checks {
			if err := c.Probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component(c.Name), logger.Error(err))
				resp.Checks[c.Name] = "failed"
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

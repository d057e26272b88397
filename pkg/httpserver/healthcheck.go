package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// Check is a named readiness check.
type Check func(ctx context.Context) error

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthCheckHandler runs every check on each request. It answers 200 with
// status "ok" when all pass and 503 with status "unavailable" otherwise.
// Without checks it acts as a liveness check.
func HealthCheckHandler(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))
	return func(w http.ResponseWriter, r *http.Request) {
		res := HealthStatus{Status: "ok"}
		code := http.StatusOK

		if len(names) > 0 {
			res.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", slog.String("check", name), logger.Error(err))
				res.Checks[name] = err.Error()
				res.Status = "unavailable"
				code = http.StatusServiceUnavailable
				continue
			}
			res.Checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(res)
	}
}

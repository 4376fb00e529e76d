package http

import (
	"context"
	"log"
	stdhttp "net/http"
	"time"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler answers "ok" when every check passes and 503 otherwise.
func HealthHandler(logger *log.Logger, checks ...HealthCheck) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				if logger != nil {
					logger.Printf("WARN: health check name=%s: %v", c.Name, err)
				}
				w.WriteHeader(stdhttp.StatusServiceUnavailable)
				_, _ = w.Write([]byte(c.Name + " unavailable"))
				return
			}
		}
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (RedisClient, EventBus, and the price API client all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// Nil fields are reported as "skipped".
type HealthChecks struct {
	Redis    HealthChecker
	EventBus HealthChecker
	PriceAPI HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
	PriceAPI string `json:"price_api"`
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// dependencies with a 2 s deadline each. Responds 200 when every probe
// succeeds, 503 otherwise.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		healthy := true

		resp.Redis, healthy = probe(r.Context(), checks.Redis, healthy)
		resp.EventBus, healthy = probe(r.Context(), checks.EventBus, healthy)
		resp.PriceAPI, healthy = probe(r.Context(), checks.PriceAPI, healthy)

		status := http.StatusOK
		if !healthy {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker, healthy bool) (string, bool) {
	if c == nil {
		return "skipped", healthy
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		return err.Error(), false
	}
	return "ok", healthy
}

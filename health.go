package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/curaflow/curaflow-go/routes"
)

// ServiceStatus reports per-dependency liveness from the backend.
type ServiceStatus struct {
	API string `json:"api"`
	DB  string `json:"db"`
}

// HealthStatus is the liveness payload from GET /health.
type HealthStatus struct {
	Status   string        `json:"status"`
	Services ServiceStatus `json:"services"`
}

// Health probes backend liveness without authentication. The probe races a
// bounded window: if it has not completed within `within`, the timeout wins
// and the slower branch's eventual result is discarded. The buffered channel
// lets the late goroutine finish without leaking.
func (c *Client) Health(ctx context.Context, within time.Duration) (HealthStatus, error) {
	type outcome struct {
		status HealthStatus
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		status, err := Execute[HealthStatus](ctx, c, RequestSpec{
			Method: http.MethodGet,
			Path:   routes.Health,
		})
		done <- outcome{status: status, err: err}
	}()

	timer := time.NewTimer(within)
	defer timer.Stop()
	select {
	case out := <-done:
		return out.status, out.err
	case <-ctx.Done():
		return HealthStatus{}, &TransportError{Message: "health probe canceled", Cause: ctx.Err()}
	case <-timer.C:
		return HealthStatus{}, &TransportError{Message: "health probe timed out"}
	}
}

package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ZerologHooks returns TelemetryHooks backed by a zerolog logger, so
// embedding applications get structured request logs without writing hooks
// by hand.
func ZerologHooks(log zerolog.Logger) TelemetryHooks {
	return TelemetryHooks{
		OnHTTPResponse: func(_ context.Context, req *http.Request, resp *http.Response, err error, latency time.Duration) {
			evt := log.Info()
			if err != nil {
				evt = log.Error().Err(err)
			}
			if resp != nil {
				evt = evt.Int("status", resp.StatusCode)
			}
			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("latency", latency).
				Msg("api request")
		},
		OnLogEntry: func(_ context.Context, entry LogEntry) {
			evt := log.Debug()
			if entry.Level == LogLevelError {
				evt = log.Error()
			}
			evt.Fields(entry.Fields).Msg(entry.Message)
		},
		OnMetric: func(_ context.Context, metric Metric) {
			log.Debug().
				Float64("value", metric.Value).
				Fields(map[string]any{"labels": metric.Labels}).
				Msg(metric.Name)
		},
	}
}

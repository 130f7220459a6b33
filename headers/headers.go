// Package headers defines HTTP header constants used across the Curaflow
// platform. This is the single source of truth for header names used in API
// requests/responses.
package headers

const (
	// RequestID is the header for request correlation / idempotency.
	// The transport sends the same value when a request is replayed after a
	// token refresh, so the backend can deduplicate side effects of
	// non-idempotent calls.
	RequestID = "X-Curaflow-Request-Id"
)

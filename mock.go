package sdk

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// MockTransport is an in-memory http.RoundTripper for unit tests that must
// not hit the API. Responses are served in FIFO order; install it via
// Config.HTTPClient.
//
// Example:
//
//	mock := NewMockTransport().
//	    WithJSON(200, `{"user":{"id":"u1"}}`)
//	client, _ := NewClient(Config{
//	    BaseURL:     "https://api.test",
//	    Credentials: store,
//	    HTTPClient:  &http.Client{Transport: mock},
//	})
type MockTransport struct {
	mu    sync.Mutex
	queue []mockResponse
	calls []*http.Request
}

type mockResponse struct {
	status int
	body   []byte
	err    error
}

// MockTransportError is returned when the queue is exhausted.
type MockTransportError struct {
	Reason string
}

func (e MockTransportError) Error() string { return "mock transport: " + e.Reason }

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// WithJSON enqueues a JSON response for the next request.
func (m *MockTransport) WithJSON(status int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResponse{status: status, body: []byte(body)})
	return m
}

// WithError enqueues a transport-level failure for the next request.
func (m *MockTransport) WithError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, mockResponse{err: err})
	return m
}

// Calls returns the requests seen so far, in order.
func (m *MockTransport) Calls() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*http.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return nil, MockTransportError{Reason: "no response queued for " + req.URL.Path}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	if next.err != nil {
		return nil, next.err
	}
	return &http.Response{
		StatusCode: next.status,
		Status:     http.StatusText(next.status),
		Body:       io.NopCloser(bytes.NewReader(next.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/curaflow/curaflow-go/auth"
	"github.com/curaflow/curaflow-go/keystore"
)

const defaultBaseURL = "https://api.curaflow.app/api/v1"
const defaultUserAgent = "curaflow-sdk/" + Version

// Config wires the credential store, base URL, and telemetry for the client.
type Config struct {
	BaseURL     string
	Credentials keystore.Store
	HTTPClient  *http.Client
	Telemetry   TelemetryHooks
	UserAgent   string
}

// Client executes API requests with transparent token attachment and the
// refresh-and-replay protocol. Construct one per process and share it; all
// methods are safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenSource
	authAPI    *auth.Client
	telemetry  TelemetryHooks
	userAgent  string
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Credentials == nil {
		return nil, errors.New("sdk: credential store required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	authAPI, err := auth.NewClient(auth.Config{
		BaseURL:    normalized,
		HTTPClient: httpClient,
		UserAgent:  ua,
	})
	if err != nil {
		return nil, err
	}
	client := &Client{
		baseURL:    normalized,
		httpClient: httpClient,
		authAPI:    authAPI,
		telemetry:  cfg.Telemetry,
		userAgent:  ua,
	}
	client.tokens = NewTokenSource(cfg.Credentials, authAPI)
	return client, nil
}

// Tokens exposes the token lifecycle coordinator.
func (c *Client) Tokens() *TokenSource { return c.tokens }

// Login exchanges credentials for a token pair and persists it. It does not
// touch session state; see the session package for the full login flow.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return &APIError{Kind: KindInvalidPayload, Message: "email and password required"}
	}
	pair, err := c.authAPI.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return classifyAuthErr(err)
	}
	if err := c.tokens.save(pair); err != nil {
		return err
	}
	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("sdk: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("sdk: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("sdk: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("sdk: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	injectTraceparent(ctx, req)
	return req, nil
}

// send executes a prepared request. Non-2xx responses are classified and
// returned as *APIError; anything that never produced a well-formed response
// is a *TransportError.
func (c *Client) send(req *http.Request, strategy authStrategy) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	strategy.Apply(req)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(req.Context(), req)
	}
	c.telemetry.log(req.Context(), LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(req.Context(), req, resp, err, time.Since(start))
	}
	c.telemetry.metric(req.Context(), "sdk_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	if err != nil {
		return nil, &TransportError{Message: "request failed", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func injectTraceparent(ctx context.Context, req *http.Request) {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()
	if !sc.IsValid() {
		return
	}
	traceparent := fmt.Sprintf("00-%s-%s-01", sc.TraceID().String(), sc.SpanID().String())
	req.Header.Set("Traceparent", traceparent)
}

// Package auth provides the wire client and token helpers for the Curaflow
// authentication endpoints.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/curaflow/curaflow-go/routes"
)

// Config controls how the auth client talks to the Curaflow API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client issues login and refresh requests against the API. These calls are
// never authenticated themselves: login carries user credentials and refresh
// carries the refresh token in the body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Credentials encapsulates email/password inputs for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest wraps the token used during refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPair mirrors the backend response for login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// HTTPError conveys a non-2xx response. The raw body is preserved so the
// caller can classify it.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("auth: http %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Code returns the backend error code, if the body carries one.
func (e *HTTPError) Code() string {
	var payload errorEnvelope
	if json.Unmarshal(e.Body, &payload) != nil {
		return ""
	}
	return payload.Error.Code
}

// Message returns the backend error message, if the body carries one.
func (e *HTTPError) Message() string {
	var payload errorEnvelope
	if json.Unmarshal(e.Body, &payload) != nil {
		return ""
	}
	return payload.Error.Message
}

// NewClient constructs a Client with sane defaults.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("auth: base url required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: client,
		userAgent:  cfg.UserAgent,
	}, nil
}

// Login exchanges user credentials for access/refresh tokens.
func (c *Client) Login(ctx context.Context, creds Credentials) (TokenPair, error) {
	if strings.TrimSpace(creds.Email) == "" || strings.TrimSpace(creds.Password) == "" {
		return TokenPair{}, errors.New("auth: email and password required")
	}
	return c.post(ctx, routes.AuthLogin, creds)
}

// Refresh swaps a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (TokenPair, error) {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return TokenPair{}, errors.New("auth: refresh token required")
	}
	return c.post(ctx, routes.AuthRefresh, req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (TokenPair, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return TokenPair{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenPair{}, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return TokenPair{}, &HTTPError{Status: resp.StatusCode, Body: body}
	}
	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return TokenPair{}, fmt.Errorf("auth: decode token response: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return TokenPair{}, errors.New("auth: token response missing tokens")
	}
	return pair, nil
}

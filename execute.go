package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/curaflow/curaflow-go/headers"
)

// RequestSpec describes a single API call.
type RequestSpec struct {
	Method       string
	Path         string
	Body         any
	RequiresAuth bool
}

// Execute performs the request described by spec and decodes the response
// body into T. An empty 2xx body yields T's zero value.
//
// For authenticated calls, exactly one recovery is attempted: when the first
// attempt fails with a refreshable error, the token pair is refreshed
// (joining any refresh already in flight) and the request is replayed once
// with the new token and the original request ID. A refreshable failure on
// the replay is surfaced as-is. Transport failures never trigger a refresh.
func Execute[T any](ctx context.Context, c *Client, spec RequestSpec) (T, error) {
	var zero T
	requestID := uuid.NewString()

	strategy := authStrategy(noAuth{})
	if spec.RequiresAuth {
		tok, err := c.tokens.ValidAccessToken()
		if err != nil {
			if KindOf(err) != KindSessionExpired {
				return zero, err
			}
			// Locally expired is a hint only: send the stored token and let
			// an actual 401 drive the refresh, in case the backend still
			// accepts it.
			tok, err = c.tokens.storedAccess()
			if err != nil {
				return zero, err
			}
		}
		strategy = bearerAuth{token: tok}
	}

	body, err := c.attempt(ctx, spec, strategy, requestID)
	if err == nil {
		return decodeBody[T](body)
	}

	var apiErr *APIError
	if spec.RequiresAuth && errors.As(err, &apiErr) && apiErr.Kind.Refreshable() {
		newTok, refreshErr := c.tokens.ForceRefresh(ctx)
		if refreshErr != nil {
			return zero, refreshErr
		}
		body, err = c.attempt(ctx, spec, bearerAuth{token: newTok}, requestID)
		if err != nil {
			return zero, err
		}
		return decodeBody[T](body)
	}
	return zero, err
}

func (c *Client) attempt(ctx context.Context, spec RequestSpec, strategy authStrategy, requestID string) ([]byte, error) {
	req, err := c.newJSONRequest(ctx, spec.Method, spec.Path, spec.Body)
	if err != nil {
		return nil, &TransportError{Message: "build request", Cause: err}
	}
	req.Header.Set(headers.RequestID, requestID)
	resp, err := c.send(req, strategy)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: "read response", Cause: err}
	}
	return data, nil
}

func decodeBody[T any](data []byte) (T, error) {
	var out T
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &TransportError{Message: "malformed response body", Cause: err}
	}
	return out, nil
}

// Do executes a request whose response body does not matter to the caller.
func Do(ctx context.Context, c *Client, spec RequestSpec) error {
	_, err := Execute[struct{}](ctx, c, spec)
	return err
}

package sdk

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/curaflow/curaflow-go/auth"
	"github.com/curaflow/curaflow-go/keystore"
)

// TokenSource owns the access/refresh token lifecycle: local validity
// inspection and the single-flight refresh protocol. Concurrent callers that
// need a refresh join the same in-flight backend call and observe the same
// settled result; a new call can only start after the previous one settles.
type TokenSource struct {
	store   keystore.Store
	authAPI *auth.Client
	flight  singleflight.Group
	now     func() time.Time
}

// NewTokenSource binds the coordinator to a credential store and the auth
// wire client.
func NewTokenSource(store keystore.Store, authAPI *auth.Client) *TokenSource {
	return &TokenSource{
		store:   store,
		authAPI: authAPI,
		now:     time.Now,
	}
}

// ValidAccessToken returns the stored access token if its exp claim is still
// in the future. It never refreshes: refresh is driven by an actual 401 from
// the backend, so an early server-side revocation is not masked by a locally
// fresh token.
func (s *TokenSource) ValidAccessToken() (string, error) {
	tok, err := s.store.Access()
	if err != nil {
		return "", err
	}
	if tok == "" || auth.Expired(tok, s.now()) {
		return "", &APIError{Kind: KindSessionExpired, Message: "access token missing or expired"}
	}
	return tok, nil
}

// ForceRefresh performs (or joins) the single-flight refresh and returns the
// new access token. On an authentication-semantic failure both stored tokens
// are cleared; on a transport failure only the access token is dropped so a
// later refresh can still succeed. Returns ErrNotAuthenticated when no
// refresh token is stored.
func (s *TokenSource) ForceRefresh(ctx context.Context) (string, error) {
	// The backend call is shared by every joined waiter, so it must not die
	// with the initiating caller: once issued, a refresh is not separately
	// cancellable. Context values (trace spans) still flow through.
	detached := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do("refresh", func() (any, error) {
		return s.refresh(detached)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	refresh, err := s.store.Refresh()
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", ErrNotAuthenticated
	}
	pair, err := s.authAPI.Refresh(ctx, auth.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		classified := classifyAuthErr(err)
		if KindOf(classified) == KindNetwork {
			// Transient failure: the refresh token may still be good.
			_ = s.store.Save(keystore.Pair{Refresh: refresh})
		} else {
			_ = s.store.Clear()
		}
		return "", classified
	}
	if err := s.save(pair); err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}

// ClearSession removes both stored tokens unconditionally.
func (s *TokenSource) ClearSession() error {
	return s.store.Clear()
}

// HasRefreshToken reports whether a refresh token is stored, without any
// network traffic.
func (s *TokenSource) HasRefreshToken() (bool, error) {
	refresh, err := s.store.Refresh()
	if err != nil {
		return false, err
	}
	return refresh != "", nil
}

func (s *TokenSource) save(pair auth.TokenPair) error {
	return s.store.Save(keystore.Pair{
		Access:  pair.AccessToken,
		Refresh: pair.RefreshToken,
	})
}

// storedAccess returns the raw stored access token, valid or not. The
// transport sends it on the first attempt even when it looks locally
// expired; the local exp check is a hint, not the backend's verdict.
func (s *TokenSource) storedAccess() (string, error) {
	return s.store.Access()
}

// classifyAuthErr converts auth wire-client failures into the taxonomy.
func classifyAuthErr(err error) error {
	var httpErr *auth.HTTPError
	if errors.As(err, &httpErr) {
		apiErr := &APIError{
			Kind:    Classify(httpErr.Status, httpErr.Body),
			Status:  httpErr.Status,
			Code:    httpErr.Code(),
			Message: httpErr.Message(),
		}
		return apiErr
	}
	return &TransportError{Message: "auth request failed", Cause: err}
}

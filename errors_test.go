package sdk

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   ErrorKind
	}{
		{name: "empty body 401", status: 401, body: "", want: KindSessionExpired},
		{name: "empty body 500", status: 500, body: "", want: KindServerError},
		{name: "garbage body 503", status: 503, body: "<html>bad gateway</html>", want: KindServerError},
		{name: "token expired", status: 401, body: `{"error":{"code":"TOKEN_EXPIRED","message":"expired"}}`, want: KindSessionExpired},
		{name: "token invalid", status: 401, body: `{"error":{"code":"TOKEN_INVALID","message":"nope"}}`, want: KindSessionExpired},
		{name: "user inactive", status: 403, body: `{"error":{"code":"USER_INACTIVE","message":"disabled"}}`, want: KindUserInactive},
		{name: "user deleted", status: 401, body: `{"error":{"code":"USER_DELETED","message":"gone"}}`, want: KindUserDeleted},
		{name: "user exists", status: 409, body: `{"error":{"code":"USER_EXISTS","message":"dup"}}`, want: KindUserExists},
		{name: "invalid payload", status: 422, body: `{"error":{"code":"INVALID_PAYLOAD","message":"bad field"}}`, want: KindInvalidPayload},
		{name: "unauthorized", status: 403, body: `{"error":{"code":"UNAUTHORIZED","message":"no"}}`, want: KindUnauthorized},
		{name: "internal error", status: 500, body: `{"error":{"code":"INTERNAL_ERROR","message":"boom"}}`, want: KindServerError},
		{name: "unknown code", status: 418, body: `{"error":{"code":"TEAPOT","message":"short and stout"}}`, want: KindUnknown},
		{name: "credentials generic", status: 401, body: `{"error":{"code":"INVALID_CREDENTIALS","message":"invalid credentials"}}`, want: KindInvalidCredentials},
		{name: "credentials user not found", status: 401, body: `{"error":{"code":"INVALID_CREDENTIALS","message":"User Not Found for this email"}}`, want: KindUserNotRegistered},
		{name: "credentials not registered", status: 401, body: `{"error":{"code":"INVALID_CREDENTIALS","message":"account not registered"}}`, want: KindUserNotRegistered},
		{name: "credentials wrong password", status: 401, body: `{"error":{"code":"INVALID_CREDENTIALS","message":"Wrong PASSWORD supplied"}}`, want: KindPasswordMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.status, []byte(tc.body))
			if got != tc.want {
				t.Fatalf("Classify(%d, %s) = %s, want %s", tc.status, tc.body, got, tc.want)
			}
		})
	}
}

func TestErrorKindPredicates(t *testing.T) {
	if !KindSessionExpired.Refreshable() {
		t.Fatalf("session_expired must be refreshable")
	}
	for _, k := range []ErrorKind{
		KindNetwork, KindInvalidCredentials, KindUserNotRegistered, KindPasswordMismatch,
		KindUserExists, KindUserInactive, KindUserDeleted, KindInvalidPayload,
		KindUnauthorized, KindServerError, KindUnknown,
	} {
		if k.Refreshable() {
			t.Fatalf("%s must not be refreshable", k)
		}
	}

	fatal := map[ErrorKind]bool{
		KindSessionExpired: true,
		KindUnauthorized:   true,
		KindUserInactive:   true,
		KindUserDeleted:    true,
	}
	all := []ErrorKind{
		KindNetwork, KindInvalidCredentials, KindUserNotRegistered, KindPasswordMismatch,
		KindUserExists, KindSessionExpired, KindUserInactive, KindUserDeleted,
		KindInvalidPayload, KindUnauthorized, KindServerError, KindUnknown,
	}
	for _, k := range all {
		if k.Fatal() != fatal[k] {
			t.Fatalf("%s: Fatal() = %v, want %v", k, k.Fatal(), fatal[k])
		}
		if k.UserMessage() == "" {
			t.Fatalf("%s: empty user message", k)
		}
	}
}

func TestKindOf(t *testing.T) {
	apiErr := &APIError{Kind: KindUserDeleted, Status: http.StatusUnauthorized}
	if got := KindOf(apiErr); got != KindUserDeleted {
		t.Fatalf("KindOf(APIError) = %s", got)
	}
	transportErr := &TransportError{Message: "dial failed", Cause: errors.New("refused")}
	if got := KindOf(transportErr); got != KindNetwork {
		t.Fatalf("KindOf(TransportError) = %s", got)
	}
	if got := KindOf(ErrNotAuthenticated); got != KindSessionExpired {
		t.Fatalf("KindOf(ErrNotAuthenticated) = %s", got)
	}
	if got := KindOf(errors.New("misc")); got != KindUnknown {
		t.Fatalf("KindOf(unrelated) = %s", got)
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &TransportError{Message: "request failed", Cause: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach cause")
	}
}

package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorKind is the closed classification of backend and transport failures.
// Every failure surfaced by this package carries exactly one kind.
type ErrorKind string

const (
	KindNetwork            ErrorKind = "network"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUserNotRegistered  ErrorKind = "user_not_registered"
	KindPasswordMismatch   ErrorKind = "password_mismatch"
	KindUserExists         ErrorKind = "user_exists"
	KindSessionExpired     ErrorKind = "session_expired"
	KindUserInactive       ErrorKind = "user_inactive"
	KindUserDeleted        ErrorKind = "user_deleted"
	KindInvalidPayload     ErrorKind = "invalid_payload"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindServerError        ErrorKind = "server_error"
	KindUnknown            ErrorKind = "unknown"
)

// Refreshable reports whether a failure of this kind may be recovered by
// refreshing the token pair and replaying the request once.
func (k ErrorKind) Refreshable() bool { return k == KindSessionExpired }

// Fatal reports whether a failure of this kind ends the current session.
// Fatal kinds force a transition to the expired state regardless of which
// call produced them; only KindSessionExpired is retried first.
func (k ErrorKind) Fatal() bool {
	switch k {
	case KindSessionExpired, KindUnauthorized, KindUserInactive, KindUserDeleted:
		return true
	default:
		return false
	}
}

// UserMessage returns the fixed display text for this kind.
func (k ErrorKind) UserMessage() string {
	switch k {
	case KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case KindInvalidCredentials:
		return "The email or password is incorrect."
	case KindUserNotRegistered:
		return "No account exists for this email."
	case KindPasswordMismatch:
		return "The password is incorrect."
	case KindUserExists:
		return "An account with this email already exists."
	case KindSessionExpired:
		return "Your session has expired. Please sign in again."
	case KindUserInactive:
		return "This account has been deactivated."
	case KindUserDeleted:
		return "This account no longer exists."
	case KindInvalidPayload:
		return "The request was rejected by the server."
	case KindUnauthorized:
		return "You are not authorized to perform this action."
	case KindServerError:
		return "The server encountered an error. Try again later."
	default:
		return "Something went wrong. Try again later."
	}
}

// errorEnvelope mirrors the backend error contract {error:{code,message}}.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Classify maps an HTTP status plus raw error body onto an ErrorKind.
//
// A body that does not parse into the error envelope falls back on the
// status code alone: 401 means the token was rejected, anything else is a
// server-side failure.
func Classify(status int, body []byte) ErrorKind {
	var payload errorEnvelope
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Code == "" {
		if status == http.StatusUnauthorized {
			return KindSessionExpired
		}
		return KindServerError
	}
	switch payload.Error.Code {
	case "TOKEN_INVALID", "TOKEN_EXPIRED":
		return KindSessionExpired
	case "USER_INACTIVE":
		return KindUserInactive
	case "USER_DELETED":
		return KindUserDeleted
	case "INVALID_CREDENTIALS":
		return refineCredentials(payload.Error.Message)
	case "INVALID_PAYLOAD":
		return KindInvalidPayload
	case "USER_EXISTS":
		return KindUserExists
	case "UNAUTHORIZED":
		return KindUnauthorized
	case "INTERNAL_ERROR":
		return KindServerError
	default:
		return KindUnknown
	}
}

// refineCredentials splits INVALID_CREDENTIALS into its sub-kinds using the
// backend's prose message. The backend encodes the distinction only in
// human-readable text, so this is a case-insensitive substring match.
func refineCredentials(message string) ErrorKind {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not found"), strings.Contains(lower, "not registered"):
		return KindUserNotRegistered
	case strings.Contains(lower, "password"):
		return KindPasswordMismatch
	default:
		return KindInvalidCredentials
	}
}

// APIError captures a classified backend failure.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = "UNKNOWN"
	}
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("%s (%d)", code, e.Status)
	}
	return fmt.Sprintf("%s: %s", code, msg)
}

// TransportError captures a failure that never reached a well-formed backend
// response: connectivity loss, timeouts, malformed bodies. Always KindNetwork.
type TransportError struct {
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sdk: %s: %v", e.Message, e.Cause)
	}
	return "sdk: " + e.Message
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ErrNotAuthenticated is returned when an operation needs a stored refresh
// token and none exists. It sits outside the ErrorKind taxonomy so callers
// can tell "never had a session" apart from a refresh that failed.
var ErrNotAuthenticated = errors.New("sdk: not authenticated")

// KindOf extracts the ErrorKind from any error produced by this package.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindNetwork
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return KindSessionExpired
	}
	return KindUnknown
}

// decodeAPIError drains a non-2xx response body and classifies it.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{
		Kind:   Classify(resp.StatusCode, data),
		Status: resp.StatusCode,
	}
	var payload errorEnvelope
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

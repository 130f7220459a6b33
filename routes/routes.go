// Package routes provides shared API route constants used by the SDK and
// embedding applications to prevent path mismatches.
package routes

const (
	// AuthLogin exchanges email/password credentials for a token pair.
	AuthLogin = "/auth/login"

	// AuthRefresh swaps a refresh token for a new token pair.
	AuthRefresh = "/auth/refresh" // #nosec G101 -- route path, not a credential

	// UsersMe returns the current authenticated user's profile snapshot.
	UsersMe = "/users/me"

	// Health reports backend liveness, independent of authentication.
	Health = "/health"
)

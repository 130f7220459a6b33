package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims encodes the JWT claims embedded into Curaflow access tokens.
//
// This is a DTO matching the backend's access token contract. The client
// keeps it local so no server-side module is imported.
type Claims struct {
	UserID string `json:"uid,omitempty"`
	Role   string `json:"role,omitempty"`

	jwt.RegisteredClaims
}

// ParseClaims decodes the claims segment of a token WITHOUT verifying the
// signature. The result is a local hint only; the backend remains the
// authority on whether a token is actually valid.
func ParseClaims(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is at or before now.
// Any token that cannot be decoded (wrong segment count, bad base64,
// malformed JSON, missing exp) counts as expired, so a broken token forces
// re-authentication instead of being trusted.
func Expired(token string, now time.Time) bool {
	claims, err := ParseClaims(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(now)
}

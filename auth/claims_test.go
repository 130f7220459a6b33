package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func tokenWithClaims(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	encoded, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(encoded))
}

func TestParseClaims(t *testing.T) {
	token := tokenWithClaims(t, map[string]any{
		"uid":  "u1",
		"role": "surgeon",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "surgeon" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("exp claim missing")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "one second in the past",
			token: tokenWithClaims(t, map[string]any{"exp": now.Add(-time.Second).Unix()}),
			want:  true,
		},
		{
			name:  "one second in the future",
			token: tokenWithClaims(t, map[string]any{"exp": now.Add(time.Second).Unix()}),
			want:  false,
		},
		{
			name:  "exactly now",
			token: tokenWithClaims(t, map[string]any{"exp": now.Unix()}),
			want:  true,
		},
		{
			name:  "missing exp claim",
			token: tokenWithClaims(t, map[string]any{"uid": "u1"}),
			want:  true,
		},
		{
			name:  "two segments",
			token: "header.payload",
			want:  true,
		},
		{
			name:  "not base64",
			token: "!!!.???.###",
			want:  true,
		},
		{
			name:  "empty string",
			token: "",
			want:  true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expired(tc.token, now); got != tc.want {
				t.Fatalf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}

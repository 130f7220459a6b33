// Package sdk provides the Curaflow Go client core: credential storage,
// token lifecycle, authenticated transport, and error classification.
package sdk

import "net/http"

type authStrategy interface {
	Apply(req *http.Request)
}

type bearerAuth struct {
	token string
}

func (b bearerAuth) Apply(req *http.Request) {
	if b.token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
}

type noAuth struct{}

func (noAuth) Apply(*http.Request) {}

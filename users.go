package sdk

import (
	"context"
	"errors"
	"net/http"

	"github.com/curaflow/curaflow-go/routes"
)

// User is the current-user identity snapshot returned by GET /users/me.
// Treat values as immutable; a fresh snapshot replaces the whole struct.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type userEnvelope struct {
	User User `json:"user"`
}

// Me fetches the authenticated user's snapshot.
func (c *Client) Me(ctx context.Context) (User, error) {
	payload, err := Execute[userEnvelope](ctx, c, RequestSpec{
		Method:       http.MethodGet,
		Path:         routes.UsersMe,
		RequiresAuth: true,
	})
	if err != nil {
		return User{}, err
	}
	if payload.User.ID == "" {
		return User{}, errors.New("sdk: missing user in response")
	}
	return payload.User, nil
}

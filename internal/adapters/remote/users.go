package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// authBody accepts both `{"user": {...}}` and a bare user object.
type authBody struct {
	raw json.RawMessage
}

func (b *authBody) UnmarshalJSON(data []byte) error {
	b.raw = append(b.raw[:0], data...)
	return nil
}

func (b *authBody) user() *domain.User {
	if len(b.raw) == 0 {
		return nil
	}
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if json.Unmarshal(b.raw, &wrapped) == nil && wrapped.User != nil {
		return wrapped.User
	}
	var bare domain.User
	if json.Unmarshal(b.raw, &bare) == nil && bare.UserID != "" {
		return &bare
	}
	return nil
}

// Me calls GET /users/me.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var body authBody
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("users", "me"), nil, &body); err != nil {
		return nil, err
	}
	u := body.user()
	if u == nil {
		return &domain.User{}, nil
	}
	return u, nil
}

// Login calls POST /users/login. The session cookies the backend sets are
// returned so they can be relayed to the browser.
func (c *Client) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, c.endpoint("users", "login"), creds)
}

// Logout calls POST /users/logout.
func (c *Client) Logout(ctx context.Context) (*domain.AuthResult, error) {
	return c.authCall(ctx, http.MethodPost, c.endpoint("users", "logout"), nil)
}

// DeleteAccount calls DELETE /users/delete.
func (c *Client) DeleteAccount(ctx context.Context) (*domain.AuthResult, error) {
	return c.authCall(ctx, http.MethodDelete, c.endpoint("users", "delete"), nil)
}

func (c *Client) authCall(ctx context.Context, method string, target route, in any) (*domain.AuthResult, error) {
	var body authBody
	cookies, err := c.doJSON(ctx, method, target, in, &body)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: body.user(), Cookies: cookies}, nil
}

package api

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoIdentity means /auth/me answered without a user id: the token is
// missing, invalid or expired.
var ErrNoIdentity = errors.New("token does not resolve to a user")

// Me resolves the current token to a user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/me", out: &u}); err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, ErrNoIdentity
	}
	return &u, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
		out:    &res,
		public: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   reg,
		out:    &res,
		public: true,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

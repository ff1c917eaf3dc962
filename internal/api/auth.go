package api

import (
	"context"
	"fmt"
	"net/http"

	"communityClient/internal/models"
)

func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp authDTO
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", asCredentialsError(err))
	}
	return resp.toSession(), nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	var resp authDTO
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("register: %w", asConflictError(err))
	}
	return resp.toSession(), nil
}

// Me returns the account behind the current credential.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return resp.toModel(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodPut, "/auth/profile", update, &resp); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return resp.toModel(), nil
}

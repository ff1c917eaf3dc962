package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"communityClient/internal/models"
)

func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return resp.toModel(), nil
}

func (c *Client) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	var resp postListDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/posts", nil, &resp); err != nil {
		return nil, fmt.Errorf("get posts of user %s: %w", userID, err)
	}
	return postsToModels(resp.Posts), nil
}

// ToggleFollow follows or unfollows userID, the result carries the new relationship.
func (c *Client) ToggleFollow(ctx context.Context, userID string) (*models.FollowResult, error) {
	var resp models.FollowResult
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/follow", nil, &resp); err != nil {
		return nil, fmt.Errorf("follow user %s: %w", userID, err)
	}
	return &resp, nil
}

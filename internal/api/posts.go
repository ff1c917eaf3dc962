package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"communityClient/internal/models"
)

func (c *Client) ListPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp postListDTO
	if err := c.do(ctx, http.MethodGet, "/posts?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list posts page %d: %w", page, err)
	}

	return &models.PostPage{
		Posts:      postsToModels(resp.Posts),
		Page:       page,
		TotalPages: resp.TotalPages,
	}, nil
}

func (c *Client) CreatePost(ctx context.Context, content string) (*models.Post, error) {
	var resp postDTO
	if err := c.do(ctx, http.MethodPost, "/posts", contentRequest{Content: content}, &resp); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post := resp.toModel()
	return &post, nil
}

// ToggleLike likes or unlikes postID for the current user and returns the server's post.
func (c *Client) ToggleLike(ctx context.Context, postID string) (*models.Post, error) {
	var resp postDTO
	if err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID)+"/like", nil, &resp); err != nil {
		return nil, fmt.Errorf("like post %s: %w", postID, err)
	}
	post := resp.toModel()
	return &post, nil
}

func (c *Client) AddComment(ctx context.Context, postID, content string) (*models.Post, error) {
	var resp postDTO
	err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comment", contentRequest{Content: content}, &resp)
	if err != nil {
		return nil, fmt.Errorf("comment on post %s: %w", postID, err)
	}
	post := resp.toModel()
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil); err != nil {
		return fmt.Errorf("delete post %s: %w", postID, err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"communityClient/internal/apperr"
	"communityClient/internal/models"
)

type FeedController interface {
	// LoadNextPage appends the next page. It does nothing while a load is in flight or
	// once the last page was seen.
	LoadNextPage(ctx context.Context) error
	Refresh(ctx context.Context) error
	CreatePost(ctx context.Context, content string) (*models.Post, error)
	ToggleLike(ctx context.Context, postID string) error
	AddComment(ctx context.Context, postID, content string) error
	DeletePost(ctx context.Context, postID string) error
	State() models.FeedState
}

type feedController struct {
	mu    sync.Mutex
	state models.FeedState

	api      PostAPI
	session  SessionStore
	notifier Notifier
	validate *validator.Validate
	flight   singleflight.Group
}

func NewFeedController(api PostAPI, session SessionStore, notifier Notifier) FeedController {
	return &feedController{
		state:    models.FeedState{HasMore: true},
		api:      api,
		session:  session,
		notifier: orNop(notifier),
		validate: newValidator(),
	}
}

func (f *feedController) LoadNextPage(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Loading || !f.state.HasMore {
		f.mu.Unlock()
		return nil
	}
	f.state.Loading = true
	page := f.state.PageNumber + 1
	f.mu.Unlock()

	result, err := f.api.ListPosts(ctx, page, models.PageSize)

	f.mu.Lock()
	f.state.Loading = false
	if err != nil {
		f.mu.Unlock()
		return fail(f.notifier, "load posts", "Failed to load posts", err)
	}

	seen := make(map[string]struct{}, len(f.state.Items))
	for _, p := range f.state.Items {
		seen[p.PostID] = struct{}{}
	}
	for _, p := range result.Posts {
		if _, dup := seen[p.PostID]; dup {
			continue
		}
		f.state.Items = append(f.state.Items, p.Clone())
	}
	f.state.PageNumber = page
	f.state.HasMore = page < result.TotalPages
	f.mu.Unlock()

	return nil
}

func (f *feedController) Refresh(ctx context.Context) error {
	f.mu.Lock()
	if f.state.Loading {
		f.mu.Unlock()
		return nil
	}
	f.state.Loading = true
	f.mu.Unlock()

	result, err := f.api.ListPosts(ctx, 1, models.PageSize)

	f.mu.Lock()
	f.state.Loading = false
	if err != nil {
		f.mu.Unlock()
		return fail(f.notifier, "refresh posts", "Failed to load posts", err)
	}

	items := make([]models.Post, 0, len(result.Posts))
	for _, p := range result.Posts {
		items = append(items, p.Clone())
	}
	f.state.Items = items
	f.state.PageNumber = 1
	f.state.HasMore = 1 < result.TotalPages
	f.mu.Unlock()

	return nil
}

func (f *feedController) CreatePost(ctx context.Context, content string) (*models.Post, error) {
	form := postForm{Content: strings.TrimSpace(content)}
	if err := validateForm(f.validate, form); err != nil {
		return nil, err
	}

	if !f.session.IsAuthenticated() {
		return nil, fail(f.notifier, "create post", "Please login to create a post", errNotLoggedIn)
	}

	post, err := f.api.CreatePost(ctx, form.Content)
	if err != nil {
		return nil, fail(f.notifier, "create post", "Failed to create post", err)
	}

	f.mu.Lock()
	f.state.Items = append([]models.Post{post.Clone()}, f.state.Items...)
	f.mu.Unlock()

	f.notifier.Success("Post created successfully!")

	created := post.Clone()
	return &created, nil
}

func (f *feedController) ToggleLike(ctx context.Context, postID string) error {
	if !f.session.IsAuthenticated() {
		return fail(f.notifier, "like post", "Please login to like posts", errNotLoggedIn)
	}

	if _, ok := f.find(postID); !ok {
		return nil
	}

	v, err, _ := f.flight.Do("like:"+postID, func() (interface{}, error) {
		return f.api.ToggleLike(ctx, postID)
	})
	if err != nil {
		return fail(f.notifier, "like post", "Failed to like post", err)
	}

	f.replace(v.(*models.Post))
	return nil
}

func (f *feedController) AddComment(ctx context.Context, postID, content string) error {
	form := commentForm{Content: strings.TrimSpace(content)}
	if err := validateForm(f.validate, form); err != nil {
		return err
	}

	if !f.session.IsAuthenticated() {
		return fail(f.notifier, "add comment", "Please login to comment", errNotLoggedIn)
	}

	if _, ok := f.find(postID); !ok {
		return fmt.Errorf("%w: post %s is not in the feed", apperr.ErrNotFound, postID)
	}

	post, err := f.api.AddComment(ctx, postID, form.Content)
	if err != nil {
		return fail(f.notifier, "add comment", "Failed to add comment", err)
	}

	f.replace(post)
	f.notifier.Success("Comment added successfully!")
	return nil
}

func (f *feedController) DeletePost(ctx context.Context, postID string) error {
	session := f.session.Current()
	if session == nil {
		return fail(f.notifier, "delete post", "Please login to delete posts", errNotLoggedIn)
	}

	post, ok := f.find(postID)
	if !ok {
		return fmt.Errorf("%w: post %s is not in the feed", apperr.ErrNotFound, postID)
	}
	// an unknown author is left to the server
	if post.AuthorID != "" && post.AuthorID != session.UserID {
		err := fmt.Errorf("%w: only the author can delete a post", apperr.ErrUnauthorized)
		return fail(f.notifier, "delete post", "Failed to delete post", err)
	}

	_, err, _ := f.flight.Do("delete:"+postID, func() (interface{}, error) {
		return nil, f.api.DeletePost(ctx, postID)
	})
	if err != nil {
		return fail(f.notifier, "delete post", "Failed to delete post", err)
	}

	f.mu.Lock()
	items := f.state.Items[:0:0]
	for _, p := range f.state.Items {
		if p.PostID != postID {
			items = append(items, p)
		}
	}
	f.state.Items = items
	f.mu.Unlock()

	f.notifier.Success("Post deleted successfully!")
	return nil
}

func (f *feedController) State() models.FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.state
	state.Items = make([]models.Post, 0, len(f.state.Items))
	for _, p := range f.state.Items {
		state.Items = append(state.Items, p.Clone())
	}
	return state
}

func (f *feedController) find(postID string) (models.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.state.Items {
		if p.PostID == postID {
			return p.Clone(), true
		}
	}
	return models.Post{}, false
}

// replace swaps in the server's copy of a post, keeping its position.
func (f *feedController) replace(post *models.Post) {
	if post == nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.state.Items {
		if f.state.Items[i].PostID == post.PostID {
			f.state.Items[i] = post.Clone()
			return
		}
	}
}

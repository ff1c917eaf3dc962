package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"communityClient/internal/apperr"
	"communityClient/internal/models"
)

type ProfileController interface {
	// LoadUser replaces the profile view with userID's profile and posts.
	LoadUser(ctx context.Context, userID string) error
	ToggleFollow(ctx context.Context, userID string) error
	State() models.ProfileState
}

type profileController struct {
	mu         sync.Mutex
	state      models.ProfileState
	viewing    string
	generation uint64

	api      UserAPI
	session  SessionStore
	notifier Notifier
	flight   singleflight.Group
}

func NewProfileController(api UserAPI, session SessionStore, notifier Notifier) ProfileController {
	return &profileController{
		api:      api,
		session:  session,
		notifier: orNop(notifier),
	}
}

func (p *profileController) LoadUser(ctx context.Context, userID string) error {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	if p.viewing != userID {
		p.state = models.ProfileState{}
		p.viewing = userID
	}
	p.mu.Unlock()

	var (
		user  *models.User
		posts []models.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := p.api.GetUser(gctx, userID)
		user = u
		return err
	})
	g.Go(func() error {
		ps, err := p.api.GetUserPosts(gctx, userID)
		posts = ps
		return err
	})

	err := g.Wait()

	p.mu.Lock()
	if gen != p.generation {
		// a newer LoadUser owns the view
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		p.mu.Unlock()
		msg := "Failed to load user profile"
		if errors.Is(err, apperr.ErrNotFound) {
			msg = "User not found"
		}
		return fail(p.notifier, "load user", msg, err)
	}

	p.state = models.ProfileState{
		User:        user,
		Posts:       posts,
		IsFollowing: p.isFollowing(user),
		Loaded:      true,
	}
	p.mu.Unlock()

	return nil
}

func (p *profileController) ToggleFollow(ctx context.Context, userID string) error {
	session := p.session.Current()
	if session == nil {
		return fail(p.notifier, "follow user", "Please login to follow users", errNotLoggedIn)
	}
	if session.UserID == userID {
		return apperr.Validation("userId", "You cannot follow yourself")
	}

	v, err, _ := p.flight.Do("follow:"+userID, func() (interface{}, error) {
		return p.api.ToggleFollow(ctx, userID)
	})
	if err != nil {
		return fail(p.notifier, "follow user", "Failed to follow user", err)
	}
	res := v.(*models.FollowResult)

	if err := p.session.SetFollowing(ctx, userID, res.Following); err != nil {
		log.Printf("follow user: session changed while following: %v", err)
	}

	msg := res.Message
	if msg == "" {
		msg = "User unfollowed successfully"
		if res.Following {
			msg = "User followed successfully"
		}
	}
	p.notifier.Success(msg)

	p.mu.Lock()
	if p.viewing == userID && p.state.Loaded {
		p.state.IsFollowing = res.Following
	}
	p.mu.Unlock()

	user, err := p.api.GetUser(ctx, userID)
	if err != nil {
		return fail(p.notifier, "refresh profile", "Failed to load user profile",
			fmt.Errorf("refresh after follow: %w", err))
	}

	p.mu.Lock()
	if p.viewing == userID && p.state.Loaded {
		p.state.User = user
	}
	p.mu.Unlock()

	return nil
}

func (p *profileController) State() models.ProfileState {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.state
	if p.state.User != nil {
		u := *p.state.User
		u.FollowerIDs = u.FollowerIDs.Clone()
		u.FollowingIDs = u.FollowingIDs.Clone()
		state.User = &u
	}
	state.Posts = make([]models.Post, 0, len(p.state.Posts))
	for _, post := range p.state.Posts {
		state.Posts = append(state.Posts, post.Clone())
	}
	return state
}

// isFollowing trusts the server's follower list when the projection carries one.
func (p *profileController) isFollowing(user *models.User) bool {
	session := p.session.Current()
	if session == nil || user == nil {
		return false
	}
	if user.FollowerIDs != nil {
		return user.FollowerIDs.Has(session.UserID)
	}
	return session.FollowingIDs.Has(user.UserID)
}

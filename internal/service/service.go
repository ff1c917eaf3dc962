package service

import (
	"context"
	"fmt"
	"log"

	"communityClient/internal/apperr"
	"communityClient/internal/middleware"
	"communityClient/internal/models"
	"communityClient/internal/repository"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
}

type PostAPI interface {
	ListPosts(ctx context.Context, page, limit int) (*models.PostPage, error)
	CreatePost(ctx context.Context, content string) (*models.Post, error)
	ToggleLike(ctx context.Context, postID string) (*models.Post, error)
	AddComment(ctx context.Context, postID, content string) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type UserAPI interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserPosts(ctx context.Context, userID string) ([]models.Post, error)
	ToggleFollow(ctx context.Context, userID string) (*models.FollowResult, error)
}

// API is the whole backend surface, *api.Client implements it.
type API interface {
	AuthAPI
	PostAPI
	UserAPI
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

type nopNotifier struct{}

func (nopNotifier) Success(string)      {}
func (nopNotifier) Error(string, error) {}

type Service struct {
	Session SessionStore
	Feed    FeedController
	Profile ProfileController
}

// NewService wires the controllers. A nil repo keeps the session in memory only.
func NewService(repo *repository.Repository, client API, cred *middleware.Credential, notifier Notifier) *Service {
	var sessions repository.SessionRepository
	if repo != nil {
		sessions = repo.Session
	}
	session := NewSessionStore(client, sessions, cred, notifier)

	return &Service{
		Session: session,
		Feed:    NewFeedController(client, session, notifier),
		Profile: NewProfileController(client, session, notifier),
	}
}

var errNotLoggedIn = fmt.Errorf("%w: not logged in", apperr.ErrUnauthorized)

// fail logs err and surfaces msg, it returns err unchanged for the caller.
func fail(notifier Notifier, op, msg string, err error) error {
	log.Printf("%s failed: %v", op, err)
	notifier.Error(msg, err)
	return err
}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

package test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"communityClient/internal/models"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockAPI) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPI) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPI) ListPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostPage), args.Error(1)
}

func (m *MockAPI) CreatePost(ctx context.Context, content string) (*models.Post, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockAPI) ToggleLike(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockAPI) AddComment(ctx context.Context, postID, content string) (*models.Post, error) {
	args := m.Called(ctx, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockAPI) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockAPI) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPI) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockAPI) ToggleFollow(ctx context.Context, userID string) (*models.FollowResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FollowResult), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, stored *models.StoredSession) error {
	args := m.Called(ctx, stored)
	return args.Error(0)
}

func (m *MockSessionRepository) Load(ctx context.Context, key string) (*models.StoredSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// FakeSession is a SessionStore holding a fixed account.
type FakeSession struct {
	mu      sync.Mutex
	session *models.Session
}

func NewFakeSession(userID string, following ...string) *FakeSession {
	if userID == "" {
		return &FakeSession{}
	}
	return &FakeSession{session: &models.Session{
		UserID:       userID,
		Name:         "User " + userID,
		FollowingIDs: models.NewIDSet(following...),
		AuthToken:    "token-" + userID,
	}}
}

func (f *FakeSession) Login(context.Context, string, string) error            { return nil }
func (f *FakeSession) Register(context.Context, string, string, string) error { return nil }
func (f *FakeSession) Restore(context.Context) error                          { return nil }

func (f *FakeSession) Logout(context.Context) error {
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	return nil
}

func (f *FakeSession) UpdateProfile(context.Context, models.ProfileUpdate) error { return nil }

func (f *FakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session != nil
}

func (f *FakeSession) Current() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

func (f *FakeSession) SetFollowing(_ context.Context, userID string, following bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if following {
		f.session.FollowingIDs.Add(userID)
	} else {
		f.session.FollowingIDs.Remove(userID)
	}
	return nil
}

type RecordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *RecordingNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *RecordingNotifier) Error(msg string, _ error) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func (n *RecordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.successes...)
}

func (n *RecordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

func post(id, authorID string, likers ...string) models.Post {
	return models.Post{
		PostID:     id,
		AuthorID:   authorID,
		AuthorName: "User " + authorID,
		Content:    "content of " + id,
		LikerIDs:   models.NewIDSet(likers...),
	}
}

func pageOf(total int, posts ...models.Post) *models.PostPage {
	return &models.PostPage{Posts: posts, TotalPages: total}
}

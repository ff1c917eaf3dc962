package test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"communityClient/internal/apperr"
	"communityClient/internal/middleware"
	"communityClient/internal/models"
	"communityClient/internal/repository"
	"communityClient/internal/service"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u1",
		"exp":    exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newSessionStore(t *testing.T) (service.SessionStore, *MockAPI, *MockSessionRepository, *middleware.Credential, *RecordingNotifier) {
	t.Helper()
	api := new(MockAPI)
	repo := new(MockSessionRepository)
	cred := middleware.NewCredential()
	notifier := &RecordingNotifier{}
	return service.NewSessionStore(api, repo, cred, notifier), api, repo, cred, notifier
}

func adaSession(token string) *models.Session {
	return &models.Session{
		UserID:       "u1",
		Name:         "Ada",
		Email:        "ada@example.com",
		FollowingIDs: models.NewIDSet("u2"),
		AuthToken:    token,
	}
}

func TestLogin(t *testing.T) {
	store, api, repo, cred, notifier := newSessionStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))

	api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession(token), nil).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *models.StoredSession) bool {
		var snapshot models.Session
		return s.SessionKey == repository.CurrentSessionKey &&
			s.Token == token &&
			json.Unmarshal([]byte(s.UserJSON), &snapshot) == nil &&
			snapshot.UserID == "u1" && !strings.Contains(s.UserJSON, token)
	})).Return(nil).Once()

	require.NoError(t, store.Login(context.Background(), " ada@example.com ", "secret1"))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, token, cred.Token())
	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "Ada", current.Name)
	assert.True(t, current.FollowingIDs.Has("u2"))
	assert.Equal(t, []string{"Login successful!"}, notifier.Successes())
	repo.AssertExpectations(t)
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"missing email", "", "secret1", "email"},
		{"malformed email", "ada.example.com", "secret1", "email"},
		{"missing password", "ada@example.com", "", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, api, _, _, _ := newSessionStore(t)

			err := store.Login(context.Background(), tt.email, tt.password)

			require.ErrorIs(t, err, apperr.ErrValidation)
			var vErr *apperr.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
			assert.False(t, store.IsAuthenticated())
		})
	}
}

func TestLogin_Rejected(t *testing.T) {
	store, api, _, cred, notifier := newSessionStore(t)
	api.On("Login", mock.Anything, "ada@example.com", "wrong").
		Return(nil, apperr.NewAPIError(http.StatusBadRequest, "Invalid credentials", apperr.ErrInvalidCredentials)).Once()

	err := store.Login(context.Background(), "ada@example.com", "wrong")

	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, cred.Token())
	assert.Equal(t, []string{"Invalid credentials"}, notifier.Errors())
}

func TestLogin_ExpiredTokenIsNotASession(t *testing.T) {
	store, api, repo, _, _ := newSessionStore(t)
	token := signedToken(t, time.Now().Add(-time.Minute))

	api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession(token), nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret1"))

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		apiErr   error
		wantErr  error
	}{
		{name: "success", user: "Ada", password: "secret1"},
		{name: "long name", user: strings.Repeat("n", 51), password: "secret1"},
		{name: "short name", user: " A ", password: "secret1", wantErr: apperr.ErrValidation},
		{name: "short password", user: "Ada", password: "12345", wantErr: apperr.ErrValidation},
		{
			name:     "duplicate email",
			user:     "Ada",
			password: "secret1",
			apiErr:   apperr.NewAPIError(http.StatusBadRequest, "User already exists", apperr.ErrConflict),
			wantErr:  apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, api, repo, _, _ := newSessionStore(t)
			repo.On("Save", mock.Anything, mock.Anything).Return(nil)

			if tt.apiErr != nil {
				api.On("Register", mock.Anything, tt.user, "ada@example.com", tt.password).Return(nil, tt.apiErr).Once()
			} else {
				api.On("Register", mock.Anything, tt.user, "ada@example.com", tt.password).Return(adaSession("opaque-token"), nil).Maybe()
			}

			err := store.Register(context.Background(), tt.user, "ada@example.com", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, store.IsAuthenticated())
				return
			}
			require.NoError(t, err)
			assert.True(t, store.IsAuthenticated())
		})
	}
}

func TestLogout_Idempotent(t *testing.T) {
	store, api, repo, cred, _ := newSessionStore(t)
	api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession("opaque-token"), nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, repository.CurrentSessionKey).Return(nil).Twice()

	require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret1"))

	require.NoError(t, store.Logout(context.Background()))
	require.NoError(t, store.Logout(context.Background()))

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
	assert.Empty(t, cred.Token())
	repo.AssertExpectations(t)
}

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name    string
		update  models.ProfileUpdate
		wantErr error
		field   string
	}{
		{name: "one letter name", update: models.ProfileUpdate{Name: "A"}, wantErr: apperr.ErrValidation, field: "name"},
		{name: "blank name", update: models.ProfileUpdate{Name: "   "}, wantErr: apperr.ErrValidation, field: "name"},
		{name: "bio too long", update: models.ProfileUpdate{Name: "Ada", Bio: strings.Repeat("b", models.MaxBioLength+1)}, wantErr: apperr.ErrValidation, field: "bio"},
		{name: "bio too long before trimming", update: models.ProfileUpdate{Name: "Ada", Bio: strings.Repeat("b", models.MaxBioLength-1) + "  "}, wantErr: apperr.ErrValidation, field: "bio"},
		{name: "success", update: models.ProfileUpdate{Name: " Ada L ", Bio: " maths "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, api, repo, _, notifier := newSessionStore(t)
			api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession("opaque-token"), nil).Once()
			repo.On("Save", mock.Anything, mock.Anything).Return(nil)
			require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret1"))

			api.On("UpdateProfile", mock.Anything, models.ProfileUpdate{Name: "Ada L", Bio: "maths"}).
				Return(&models.User{UserID: "u1", Name: "Ada L", Bio: "maths"}, nil).Maybe()

			err := store.UpdateProfile(context.Background(), tt.update)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var vErr *apperr.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.field, vErr.Field)
				api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
				assert.Equal(t, "Ada", store.Current().Name)
				return
			}

			require.NoError(t, err)
			current := store.Current()
			assert.Equal(t, "Ada L", current.Name)
			assert.Equal(t, "maths", current.Bio)
			assert.Equal(t, "ada@example.com", current.Email)
			assert.Contains(t, notifier.Successes(), "Profile updated successfully!")
		})
	}
}

func TestUpdateProfile_AcceptsLimits(t *testing.T) {
	tests := []struct {
		name string
		user string
		bio  string
	}{
		{name: "bio at the limit", user: "Ada", bio: strings.Repeat("b", models.MaxBioLength)},
		{name: "multi-byte bio at the limit", user: "Ada", bio: strings.Repeat("é", models.MaxBioLength)},
		{name: "long name", user: strings.Repeat("n", 120), bio: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, api, repo, _, _ := newSessionStore(t)
			api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession("opaque-token"), nil).Once()
			repo.On("Save", mock.Anything, mock.Anything).Return(nil)
			require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret1"))

			api.On("UpdateProfile", mock.Anything, models.ProfileUpdate{Name: tt.user, Bio: tt.bio}).
				Return(&models.User{UserID: "u1", Name: tt.user, Bio: tt.bio}, nil).Once()

			require.NoError(t, store.UpdateProfile(context.Background(), models.ProfileUpdate{Name: tt.user, Bio: tt.bio}))

			assert.Equal(t, tt.user, store.Current().Name)
			assert.Equal(t, tt.bio, store.Current().Bio)
			api.AssertExpectations(t)
		})
	}
}

func TestUpdateProfile_NotLoggedIn(t *testing.T) {
	store, api, _, _, _ := newSessionStore(t)

	err := store.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "Ada"})

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func storedFor(t *testing.T, token string) *models.StoredSession {
	t.Helper()
	snapshot, err := json.Marshal(adaSession(token))
	require.NoError(t, err)
	return &models.StoredSession{SessionKey: repository.CurrentSessionKey, Token: token, UserJSON: string(snapshot)}
}

func TestRestore(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		store, _, repo, _, _ := newSessionStore(t)
		repo.On("Load", mock.Anything, repository.CurrentSessionKey).Return(nil, repository.ErrNoSession).Once()

		require.NoError(t, store.Restore(context.Background()))
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("valid credential is refreshed", func(t *testing.T) {
		store, api, repo, cred, _ := newSessionStore(t)
		token := signedToken(t, time.Now().Add(time.Hour))
		repo.On("Load", mock.Anything, repository.CurrentSessionKey).Return(storedFor(t, token), nil).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		api.On("Me", mock.Anything).Return(&models.User{
			UserID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", FollowingIDs: models.NewIDSet("u2", "u3"),
		}, nil).Once()

		require.NoError(t, store.Restore(context.Background()))

		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, token, cred.Token())
		assert.Equal(t, "Ada Lovelace", store.Current().Name)
		assert.Equal(t, 2, store.Current().FollowingIDs.Len())
	})

	t.Run("expired credential is discarded", func(t *testing.T) {
		store, api, repo, cred, _ := newSessionStore(t)
		token := signedToken(t, time.Now().Add(-time.Hour))
		repo.On("Load", mock.Anything, repository.CurrentSessionKey).Return(storedFor(t, token), nil).Once()
		repo.On("Delete", mock.Anything, repository.CurrentSessionKey).Return(nil).Once()

		require.NoError(t, store.Restore(context.Background()))

		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, cred.Token())
		api.AssertNotCalled(t, "Me", mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("server rejects credential", func(t *testing.T) {
		store, api, repo, cred, _ := newSessionStore(t)
		repo.On("Load", mock.Anything, repository.CurrentSessionKey).Return(storedFor(t, "opaque-token"), nil).Once()
		repo.On("Delete", mock.Anything, repository.CurrentSessionKey).Return(nil).Once()
		api.On("Me", mock.Anything).Return(nil, apperr.NewAPIError(http.StatusUnauthorized, "Token is not valid", apperr.ErrUnauthorized)).Once()

		require.NoError(t, store.Restore(context.Background()))

		assert.False(t, store.IsAuthenticated())
		assert.Empty(t, cred.Token())
		repo.AssertExpectations(t)
	})

	t.Run("unreachable server keeps snapshot", func(t *testing.T) {
		store, api, repo, _, _ := newSessionStore(t)
		repo.On("Load", mock.Anything, repository.CurrentSessionKey).Return(storedFor(t, "opaque-token"), nil).Once()
		api.On("Me", mock.Anything).Return(nil, apperr.ErrNetwork).Once()

		require.NoError(t, store.Restore(context.Background()))

		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "Ada", store.Current().Name)
	})
}

func TestSetFollowing(t *testing.T) {
	store, api, repo, _, _ := newSessionStore(t)

	assert.ErrorIs(t, store.SetFollowing(context.Background(), "u2", true), apperr.ErrUnauthorized)

	api.On("Login", mock.Anything, "ada@example.com", "secret1").Return(adaSession("opaque-token"), nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret1"))

	require.NoError(t, store.SetFollowing(context.Background(), "u3", true))
	require.NoError(t, store.SetFollowing(context.Background(), "u2", false))

	assert.Equal(t, []string{"u3"}, store.Current().FollowingIDs.Slice())
}

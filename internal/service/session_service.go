package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"communityClient/internal/apperr"
	"communityClient/internal/middleware"
	"communityClient/internal/models"
	"communityClient/internal/repository"
)

type SessionStore interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	// Restore loads the persisted credential, if any, and refreshes the account from the server.
	Restore(ctx context.Context) error
	IsAuthenticated() bool
	// Current returns a copy of the session, or nil when not authenticated.
	Current() *models.Session
	SetFollowing(ctx context.Context, userID string, following bool) error
}

type sessionStore struct {
	mu      sync.RWMutex
	session *models.Session

	api      AuthAPI
	repo     repository.SessionRepository
	cred     *middleware.Credential
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

func NewSessionStore(api AuthAPI, repo repository.SessionRepository, cred *middleware.Credential, notifier Notifier) SessionStore {
	if cred == nil {
		cred = middleware.NewCredential()
	}

	return &sessionStore{
		api:      api,
		repo:     repo,
		cred:     cred,
		notifier: orNop(notifier),
		validate: newValidator(),
		now:      time.Now,
	}
}

func (s *sessionStore) Login(ctx context.Context, email, password string) error {
	form := loginForm{Email: strings.TrimSpace(email), Password: password}
	if err := validateForm(s.validate, form); err != nil {
		return err
	}

	session, err := s.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return fail(s.notifier, "login", errorMessage(err, "Login failed"), err)
	}

	s.establish(ctx, session)
	s.notifier.Success("Login successful!")
	return nil
}

func (s *sessionStore) Register(ctx context.Context, name, email, password string) error {
	form := registerForm{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password}
	if err := validateForm(s.validate, form); err != nil {
		return err
	}

	session, err := s.api.Register(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		return fail(s.notifier, "register", errorMessage(err, "Registration failed"), err)
	}

	s.establish(ctx, session)
	s.notifier.Success("Registration successful!")
	return nil
}

func (s *sessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.cred.Clear()

	if s.repo != nil {
		if err := s.repo.Delete(ctx, repository.CurrentSessionKey); err != nil {
			log.Printf("logout: %v", err)
			return fmt.Errorf("failed to forget stored session: %w", err)
		}
	}

	return nil
}

func (s *sessionStore) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	// the bio limit applies to the text as typed, only the request is trimmed
	form := profileForm{Name: strings.TrimSpace(update.Name), Bio: update.Bio}
	if err := validateForm(s.validate, form); err != nil {
		return err
	}

	if !s.IsAuthenticated() {
		return fail(s.notifier, "update profile", "Please login to edit your profile", errNotLoggedIn)
	}

	user, err := s.api.UpdateProfile(ctx, models.ProfileUpdate{Name: form.Name, Bio: strings.TrimSpace(form.Bio)})
	if err != nil {
		return fail(s.notifier, "update profile", errorMessage(err, "Failed to update profile"), err)
	}

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return apperr.ErrUnauthorized
	}
	s.session.Name = user.Name
	s.session.Bio = user.Bio
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.notifier.Success("Profile updated successfully!")
	return nil
}

func (s *sessionStore) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	stored, err := s.repo.Load(ctx, repository.CurrentSessionKey)
	if err != nil {
		if errors.Is(err, repository.ErrNoSession) {
			return nil
		}
		return err
	}

	if stored.Token == "" || s.expired(stored.Token) {
		log.Printf("stored session expired, discarding it")
		return s.repo.Delete(ctx, repository.CurrentSessionKey)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(stored.UserJSON), &session); err != nil {
		log.Printf("stored session is unreadable: %v", err)
		return s.repo.Delete(ctx, repository.CurrentSessionKey)
	}
	session.AuthToken = stored.Token

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	s.cred.Set(stored.Token)

	user, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			log.Printf("stored session rejected by server")
			return s.Logout(ctx)
		}
		// keep the snapshot, the server may just be unreachable
		log.Printf("failed to refresh stored session: %v", err)
		return nil
	}

	s.mu.Lock()
	if s.session != nil {
		applyUser(s.session, user)
	}
	snapshot := s.session.Clone()
	s.mu.Unlock()

	if snapshot != nil {
		s.persist(ctx, snapshot)
	}
	return nil
}

func (s *sessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.valid()
}

func (s *sessionStore) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.valid() {
		return nil
	}
	return s.session.Clone()
}

func (s *sessionStore) SetFollowing(ctx context.Context, userID string, following bool) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return apperr.ErrUnauthorized
	}

	if s.session.FollowingIDs == nil {
		s.session.FollowingIDs = models.NewIDSet()
	}
	if following {
		s.session.FollowingIDs.Add(userID)
	} else {
		s.session.FollowingIDs.Remove(userID)
	}
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

// valid must be called with mu held.
func (s *sessionStore) valid() bool {
	return s.session != nil && s.session.AuthToken != "" && !s.expired(s.session.AuthToken)
}

// expired reports whether token is a JWT whose exp claim has passed. Tokens that are not
// JWTs are opaque to the client and never expire here.
func (s *sessionStore) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return !exp.After(s.now())
}

func (s *sessionStore) establish(ctx context.Context, session *models.Session) {
	s.mu.Lock()
	s.session = session.Clone()
	s.mu.Unlock()

	s.cred.Set(session.AuthToken)
	s.persist(ctx, session)
}

// persist stores the credential and session snapshot. A failure only costs the restore on
// the next start, so it is logged and not returned.
func (s *sessionStore) persist(ctx context.Context, session *models.Session) {
	if s.repo == nil || session == nil {
		return
	}

	userJSON, err := json.Marshal(session)
	if err != nil {
		log.Printf("failed to encode session: %v", err)
		return
	}

	stored := &models.StoredSession{
		SessionKey: repository.CurrentSessionKey,
		Token:      session.AuthToken,
		UserJSON:   string(userJSON),
		UpdatedAt:  s.now().UTC(),
	}

	if err := s.repo.Save(ctx, stored); err != nil {
		log.Printf("failed to persist session: %v", err)
	}
}

func applyUser(session *models.Session, user *models.User) {
	session.UserID = user.UserID
	session.Name = user.Name
	session.Email = user.Email
	session.Bio = user.Bio
	session.ProfilePictureURL = user.ProfilePictureURL
	if user.FollowerIDs != nil {
		session.FollowerIDs = user.FollowerIDs
	}
	if user.FollowingIDs != nil {
		session.FollowingIDs = user.FollowingIDs
	}
}

// errorMessage prefers the server's explanation over the generic fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *apperr.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

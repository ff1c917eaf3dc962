package devserver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"communityClient/internal/models"
)

var (
	errUserExists     = errors.New("user already exists")
	errBadCredentials = errors.New("invalid credentials")
	errUserNotFound   = errors.New("user not found")
	errPostNotFound   = errors.New("post not found")
	errNotAuthor      = errors.New("not the author")
	errSelfFollow     = errors.New("self follow")
)

type account struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Bio            string
	ProfilePicture string
	Followers      models.IDSet
	Following      models.IDSet
	CreatedAt      time.Time
}

type storedComment struct {
	UserID    string
	Content   string
	CreatedAt time.Time
}

type storedPost struct {
	ID        string
	AuthorID  string
	Content   string
	Likes     models.IDSet
	Comments  []storedComment
	CreatedAt time.Time
}

// Store keeps accounts and posts in memory. Posts are held newest first.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*account
	byEmail  map[string]string
	posts    []*storedPost
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		now:      time.Now,
	}
}

func (s *Store) CreateUser(name, email, password string) (userJSON, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return userJSON{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.byEmail[key]; exists {
		return userJSON{}, errUserExists
	}

	acc := &account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Followers:    models.NewIDSet(),
		Following:    models.NewIDSet(),
		CreatedAt:    s.now().UTC(),
	}
	s.accounts[acc.ID] = acc
	s.byEmail[key] = acc.ID

	return acc.private(), nil
}

func (s *Store) VerifyPassword(email, password string) (userJSON, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return userJSON{}, errBadCredentials
	}
	acc := s.accounts[id]

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return userJSON{}, errBadCredentials
	}

	return acc.private(), nil
}

func (s *Store) Me(userID string) (userJSON, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return userJSON{}, errUserNotFound
	}
	return acc.private(), nil
}

func (s *Store) GetUser(userID string) (userJSON, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return userJSON{}, errUserNotFound
	}
	return acc.public(), nil
}

func (s *Store) UpdateProfile(userID, name, bio string) (userJSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return userJSON{}, errUserNotFound
	}
	acc.Name = name
	acc.Bio = bio

	return acc.private(), nil
}

func (s *Store) ToggleFollow(userID, targetID string) (bool, error) {
	if userID == targetID {
		return false, errSelfFollow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return false, errUserNotFound
	}
	target, ok := s.accounts[targetID]
	if !ok {
		return false, errUserNotFound
	}

	if acc.Following.Has(targetID) {
		acc.Following.Remove(targetID)
		target.Followers.Remove(userID)
		return false, nil
	}

	acc.Following.Add(targetID)
	target.Followers.Add(userID)
	return true, nil
}

// ListPosts returns one page and the page count, pages are 1-based.
func (s *Store) ListPosts(page, limit int) ([]postJSON, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.posts)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start >= total {
		return []postJSON{}, totalPages
	}
	end := start + limit
	if end > total {
		end = total
	}

	posts := make([]postJSON, 0, end-start)
	for _, p := range s.posts[start:end] {
		posts = append(posts, s.render(p))
	}
	return posts, totalPages
}

func (s *Store) UserPosts(userID string) ([]postJSON, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[userID]; !ok {
		return nil, errUserNotFound
	}

	posts := []postJSON{}
	for _, p := range s.posts {
		if p.AuthorID == userID {
			posts = append(posts, s.render(p))
		}
	}
	return posts, nil
}

func (s *Store) CreatePost(userID, content string) (postJSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[userID]; !ok {
		return postJSON{}, errUserNotFound
	}

	p := &storedPost{
		ID:        uuid.New().String(),
		AuthorID:  userID,
		Content:   content,
		Likes:     models.NewIDSet(),
		CreatedAt: s.now().UTC(),
	}
	s.posts = append([]*storedPost{p}, s.posts...)

	return s.render(p), nil
}

func (s *Store) ToggleLike(userID, postID string) (postJSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(postID)
	if p == nil {
		return postJSON{}, errPostNotFound
	}

	if p.Likes.Has(userID) {
		p.Likes.Remove(userID)
	} else {
		p.Likes.Add(userID)
	}
	return s.render(p), nil
}

func (s *Store) AddComment(userID, postID, content string) (postJSON, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(postID)
	if p == nil {
		return postJSON{}, errPostNotFound
	}

	p.Comments = append(p.Comments, storedComment{UserID: userID, Content: content, CreatedAt: s.now().UTC()})
	return s.render(p), nil
}

func (s *Store) DeletePost(userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID != postID {
			continue
		}
		if p.AuthorID != userID {
			return errNotAuthor
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		return nil
	}
	return errPostNotFound
}

// find must be called with mu held.
func (s *Store) find(postID string) *storedPost {
	for _, p := range s.posts {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

// render must be called with mu held.
func (s *Store) render(p *storedPost) postJSON {
	comments := make([]commentJSON, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentJSON{
			User:      s.ref(c.UserID),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	return postJSON{
		ID:        p.ID,
		Author:    s.ref(p.AuthorID),
		Content:   p.Content,
		Likes:     p.Likes.Slice(),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func (s *Store) ref(userID string) userRefJSON {
	acc, ok := s.accounts[userID]
	if !ok {
		return userRefJSON{ID: userID, Name: "Deleted user"}
	}
	return userRefJSON{ID: acc.ID, Name: acc.Name, ProfilePicture: acc.ProfilePicture}
}

func (a *account) public() userJSON {
	return userJSON{
		ID:             a.ID,
		Name:           a.Name,
		Bio:            a.Bio,
		ProfilePicture: a.ProfilePicture,
		Followers:      a.Followers.Slice(),
		Following:      a.Following.Slice(),
		CreatedAt:      a.CreatedAt,
	}
}

func (a *account) private() userJSON {
	u := a.public()
	u.Email = a.Email
	return u
}

// sortedByNewest orders seeded posts the way CreatePost would have.
func (s *Store) sortedByNewest() {
	sort.SliceStable(s.posts, func(i, j int) bool {
		return s.posts[i].CreatedAt.After(s.posts[j].CreatedAt)
	})
}

package models

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	PageSize         = 10
	MaxPostLength    = 1000
	MaxBioLength     = 500
	MinNameLength    = 2
	MinPasswordChars = 6
)

// IDSet is an unordered set of user ids, encoded as a sorted JSON array.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id string) {
	delete(s, id)
}

func (s IDSet) Len() int {
	return len(s)
}

func (s IDSet) Slice() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s IDSet) Clone() IDSet {
	if s == nil {
		return nil
	}
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

// Session is the authenticated identity held by the client.
type Session struct {
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	FollowerIDs       IDSet  `json:"followerIds"`
	FollowingIDs      IDSet  `json:"followingIds"`
	AuthToken         string `json:"-"`
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.FollowerIDs = s.FollowerIDs.Clone()
	c.FollowingIDs = s.FollowingIDs.Clone()
	return &c
}

// User is the public profile projection of an account. A nil FollowerIDs means the
// server did not report followers.
type User struct {
	UserID            string `json:"userId"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	FollowerIDs       IDSet  `json:"followerIds"`
	FollowingIDs      IDSet  `json:"followingIds"`
}

type Comment struct {
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	AuthorPicture string    `json:"authorPicture"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Post struct {
	PostID        string    `json:"postId"`
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	AuthorPicture string    `json:"authorPicture"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	LikerIDs      IDSet     `json:"likerIds"`
	Comments      []Comment `json:"comments"`
}

func (p *Post) LikeCount() int {
	return p.LikerIDs.Len()
}

func (p *Post) LikedBy(userID string) bool {
	return userID != "" && p.LikerIDs.Has(userID)
}

func (p Post) Clone() Post {
	p.LikerIDs = p.LikerIDs.Clone()
	p.Comments = append([]Comment(nil), p.Comments...)
	return p
}

// PostPage is one page of the feed as reported by the server.
type PostPage struct {
	Posts      []Post
	Page       int
	TotalPages int
}

// FeedState is a snapshot of the home feed.
type FeedState struct {
	Items      []Post
	PageNumber int
	HasMore    bool
	Loading    bool
}

// ProfileState is a snapshot of the profile view.
type ProfileState struct {
	User        *User
	Posts       []Post
	IsFollowing bool
	Loaded      bool
}

type ProfileUpdate struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type FollowResult struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}

// StoredSession is the persisted credential plus the session snapshot needed to restore it.
type StoredSession struct {
	SessionKey string    `db:"session_key"`
	Token      string    `db:"token"`
	UserJSON   string    `db:"user_json"`
	UpdatedAt  time.Time `db:"updated_at"`
}

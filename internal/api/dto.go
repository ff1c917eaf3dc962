package api

import (
	"bytes"
	"encoding/json"
	"time"

	"communityClient/internal/models"
)

// userRef is an embedded user: either a bare id string or a populated document.
type userRef struct {
	ID             string
	Name           string
	ProfilePicture string
}

func (r *userRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var doc struct {
		MongoID        string `json:"_id"`
		ID             string `json:"id"`
		Name           string `json:"name"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	r.ID = doc.MongoID
	if r.ID == "" {
		r.ID = doc.ID
	}
	r.Name = doc.Name
	r.ProfilePicture = doc.ProfilePicture
	return nil
}

type refList []userRef

// ids is nil when the field was absent from the document
func (l refList) ids() models.IDSet {
	if l == nil {
		return nil
	}
	s := make(models.IDSet, len(l))
	for _, r := range l {
		if r.ID != "" {
			s.Add(r.ID)
		}
	}
	return s
}

type userDTO struct {
	MongoID        string  `json:"_id"`
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Bio            string  `json:"bio"`
	ProfilePicture string  `json:"profilePicture"`
	Followers      refList `json:"followers"`
	Following      refList `json:"following"`
}

func (u *userDTO) toModel() *models.User {
	id := u.MongoID
	if id == "" {
		id = u.ID
	}
	return &models.User{
		UserID:            id,
		Name:              u.Name,
		Email:             u.Email,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePicture,
		FollowerIDs:       u.Followers.ids(),
		FollowingIDs:      u.Following.ids(),
	}
}

type commentDTO struct {
	User      userRef   `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type postDTO struct {
	MongoID   string       `json:"_id"`
	ID        string       `json:"id"`
	Author    userRef      `json:"author"`
	Content   string       `json:"content"`
	Likes     refList      `json:"likes"`
	Comments  []commentDTO `json:"comments"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (p *postDTO) toModel() models.Post {
	id := p.MongoID
	if id == "" {
		id = p.ID
	}

	comments := make([]models.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, models.Comment{
			AuthorID:      c.User.ID,
			AuthorName:    c.User.Name,
			AuthorPicture: c.User.ProfilePicture,
			Content:       c.Content,
			CreatedAt:     c.CreatedAt,
		})
	}

	return models.Post{
		PostID:        id,
		AuthorID:      p.Author.ID,
		AuthorName:    p.Author.Name,
		AuthorPicture: p.Author.ProfilePicture,
		Content:       p.Content,
		CreatedAt:     p.CreatedAt,
		LikerIDs:      p.Likes.ids(),
		Comments:      comments,
	}
}

func postsToModels(dtos []postDTO) []models.Post {
	posts := make([]models.Post, 0, len(dtos))
	for i := range dtos {
		posts = append(posts, dtos[i].toModel())
	}
	return posts
}

type postListDTO struct {
	Posts       []postDTO `json:"posts"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
}

type authDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (a *authDTO) toSession() *models.Session {
	u := a.User.toModel()
	return &models.Session{
		UserID:            u.UserID,
		Name:              u.Name,
		Email:             u.Email,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		FollowerIDs:       u.FollowerIDs,
		FollowingIDs:      u.FollowingIDs,
		AuthToken:         a.Token,
	}
}

type contentRequest struct {
	Content string `json:"content"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

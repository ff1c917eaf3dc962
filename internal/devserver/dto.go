package devserver

import "time"

type userRefJSON struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

type userJSON struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profilePicture"`
	Followers      []string  `json:"followers"`
	Following      []string  `json:"following"`
	CreatedAt      time.Time `json:"createdAt"`
}

type commentJSON struct {
	User      userRefJSON `json:"user"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

type postJSON struct {
	ID        string        `json:"_id"`
	Author    userRefJSON   `json:"author"`
	Content   string        `json:"content"`
	Likes     []string      `json:"likes"`
	Comments  []commentJSON `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
}

type postListResponse struct {
	Posts       []postJSON `json:"posts"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

type userPostsResponse struct {
	Posts []postJSON `json:"posts"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type followResponse struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Bio  string `json:"bio" validate:"max=500"`
}

type ContentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

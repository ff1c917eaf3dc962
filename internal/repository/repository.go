package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"communityClient/internal/models"
)

// CurrentSessionKey is the row holding the signed-in account.
const CurrentSessionKey = "current"

type SessionRepository interface {
	Save(ctx context.Context, stored *models.StoredSession) error
	Load(ctx context.Context, key string) (*models.StoredSession, error)
	Delete(ctx context.Context, key string) error
}

type Repository struct {
	Session SessionRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Session: NewSessionRepository(db),
	}
}

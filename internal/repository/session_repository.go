package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"communityClient/internal/models"
)

// ErrNoSession is returned by Load when nothing was persisted.
var ErrNoSession = errors.New("no stored session")

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Save(ctx context.Context, stored *models.StoredSession) error {
	if stored.SessionKey == "" {
		stored.SessionKey = CurrentSessionKey
	}

	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sessions (session_key, token, user_json, updated_at)
		VALUES (:session_key, :token, :user_json, :updated_at)
		ON CONFLICT (session_key) DO UPDATE
		SET token = excluded.token, user_json = excluded.user_json, updated_at = excluded.updated_at
	`

	_, err := r.db.NamedExecContext(ctx, query, stored)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context, key string) (*models.StoredSession, error) {
	var stored models.StoredSession

	query := r.db.Rebind(`SELECT session_key, token, user_json, updated_at FROM sessions WHERE session_key = ?`)

	err := r.db.GetContext(ctx, &stored, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &stored, nil
}

func (r *sessionRepository) Delete(ctx context.Context, key string) error {
	query := r.db.Rebind(`DELETE FROM sessions WHERE session_key = ?`)

	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

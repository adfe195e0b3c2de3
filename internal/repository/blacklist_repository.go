package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// BlacklistRepository records emails of removed accounts. Append-only.
type BlacklistRepository interface {
	Add(ctx context.Context, email string) error
	Contains(ctx context.Context, email string) (bool, error)
}

type postgresBlacklistRepository struct {
	db *sqlx.DB
}

func NewPostgresBlacklistRepository(db *sqlx.DB) BlacklistRepository {
	return &postgresBlacklistRepository{db: db}
}

func (r *postgresBlacklistRepository) Add(ctx context.Context, email string) error {
	// ON CONFLICT keeps the entry unique even if a cascade is retried.
	query := `INSERT INTO email_blacklist (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}

func (r *postgresBlacklistRepository) Contains(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM email_blacklist WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, err
	}
	return exists, nil
}

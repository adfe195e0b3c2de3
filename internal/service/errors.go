package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy surfaced to handlers. Validation errors are returned
// before any side effect; persistence errors are translated here so the
// store's error types never leak past the service boundary.
var (
	ErrMissingField       = errors.New("missing field")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidName        = errors.New("invalid name")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("this account already exists")
	ErrInvalidUpdate      = errors.New("invalid update")
	ErrEmailNotConfirmed  = errors.New("you need to confirm your email address")
	ErrIncompleteProfile  = errors.New("you need to fill in all fields")
	ErrNoLocation         = errors.New("user does not have localisation")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailBlacklisted   = errors.New("this email can no longer be used")
	ErrNotGuide           = errors.New("user is not a guide")
	ErrGuideUnavailable   = errors.New("guide is not taking visits")
	ErrTransport          = errors.New("notification transport failure")
)

func missingField(name string) error {
	return fmt.Errorf("%w: we need your %s", ErrMissingField, name)
}

// translateFind maps store lookup errors into the taxonomy.
func translateFind(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// translateSave maps store write errors: unique-constraint violations mean
// the email is taken, anything else is an invalid update.
func translateSave(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
}

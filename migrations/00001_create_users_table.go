package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsersTable, downCreateUsersTable)
}

func upCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE users (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  email TEXT UNIQUE NOT NULL,
	  password_hash TEXT NOT NULL,
	  session_token TEXT,
	  email_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	  reset_password_token TEXT,
	  payment_id TEXT,
	  last_login TIMESTAMP WITH TIME ZONE,
	  first_name TEXT NOT NULL,
	  last_name TEXT NOT NULL,
	  city TEXT,
	  country TEXT,
	  phone TEXT,
	  description TEXT,
	  interests JSONB NOT NULL DEFAULT '[]',
	  birthdate TIMESTAMP WITH TIME ZONE,
	  rating DOUBLE PRECISION,
	  latitude DOUBLE PRECISION,
	  longitude DOUBLE PRECISION,
	  avatar_key TEXT,
	  is_guide BOOLEAN NOT NULL DEFAULT FALSE,
	  is_blocking BOOLEAN NOT NULL DEFAULT FALSE,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS users;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

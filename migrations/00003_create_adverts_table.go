package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAdvertsTable, downCreateAdvertsTable)
}

func upCreateAdvertsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE adverts (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  title TEXT NOT NULL,
	  description TEXT NOT NULL,
	  city TEXT,
	  hourly DOUBLE PRECISION,
	  active BOOLEAN NOT NULL DEFAULT TRUE,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_adverts_owner_id ON adverts(owner_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateAdvertsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS adverts;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

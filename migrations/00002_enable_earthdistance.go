package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upEnableEarthdistance, downEnableEarthdistance)
}

func upEnableEarthdistance(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS cube;
	CREATE EXTENSION IF NOT EXISTS earthdistance;
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downEnableEarthdistance(ctx context.Context, tx *sql.Tx) error {
	query := `
	DROP EXTENSION IF EXISTS earthdistance;
	DROP EXTENSION IF EXISTS cube;
	`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateVisitsTable, downCreateVisitsTable)
}

func upCreateVisitsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE visits (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  advert_id UUID NOT NULL REFERENCES adverts(id) ON DELETE CASCADE,
	  visitor_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  status TEXT NOT NULL DEFAULT 'pending',
	  scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
	  visitor_rate DOUBLE PRECISION,
	  guide_rate DOUBLE PRECISION,
	  system_rate DOUBLE PRECISION,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_visits_advert_id ON visits(advert_id);
	CREATE INDEX idx_visits_visitor_id ON visits(visitor_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateVisitsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS visits;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

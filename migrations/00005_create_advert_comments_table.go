package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateAdvertCommentsTable, downCreateAdvertCommentsTable)
}

func upCreateAdvertCommentsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE advert_comments (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  advert_id UUID NOT NULL REFERENCES adverts(id) ON DELETE CASCADE,
	  owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  content TEXT NOT NULL,
	  liked_by JSONB NOT NULL DEFAULT '[]',
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_advert_comments_advert_id ON advert_comments(advert_id);
	`)
	return err
}

func downCreateAdvertCommentsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS advert_comments;`)
	return err
}

package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateEmailBlacklistTable, downCreateEmailBlacklistTable)
}

func upCreateEmailBlacklistTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE email_blacklist (
	  email TEXT PRIMARY KEY,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`)
	return err
}

func downCreateEmailBlacklistTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS email_blacklist;`)
	return err
}

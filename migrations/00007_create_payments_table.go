package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreatePaymentsTable, downCreatePaymentsTable)
}

func upCreatePaymentsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE payments (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  payer_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  payee_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	  amount DOUBLE PRECISION NOT NULL,
	  status TEXT NOT NULL DEFAULT 'created',
	  provider_payment_id TEXT,
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE INDEX idx_payments_payer_id ON payments(payer_id);
	`)
	return err
}

func downCreatePaymentsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS payments;`)
	return err
}

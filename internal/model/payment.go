package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusCreated  = "created"
	PaymentStatusPayed    = "payed"
	PaymentStatusRefunded = "refunded"
)

// Payment is the local record of a provider transaction. The provider's
// identifiers are stored opaquely; the core never interprets them.
type Payment struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PayerID           uuid.UUID `db:"payer_id" json:"payer_id"`
	PayeeID           uuid.UUID `db:"payee_id" json:"payee_id"`
	Amount            float64   `db:"amount" json:"amount"`
	Status            string    `db:"status" json:"status"`
	ProviderPaymentID *string   `db:"provider_payment_id" json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

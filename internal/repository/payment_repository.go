package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	FindByPayer(ctx context.Context, payerID uuid.UUID) ([]model.Payment, error)
	MarkPayed(ctx context.Context, id uuid.UUID, providerPaymentID string) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}

type postgresPaymentRepository struct {
	db *sqlx.DB
}

func NewPostgresPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (payer_id, payee_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, payment.PayerID, payment.PayeeID, payment.Amount, payment.Status)
	if err := row.Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *postgresPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.GetContext(ctx, &payment, `SELECT * FROM payments WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *postgresPaymentRepository) FindByPayer(ctx context.Context, payerID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	query := `SELECT * FROM payments WHERE payer_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &payments, query, payerID); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}

func (r *postgresPaymentRepository) MarkPayed(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	query := `UPDATE payments SET status = $1, provider_payment_id = $2, updated_at = now() WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, model.PaymentStatusPayed, providerPaymentID, id)
	return err
}

func (r *postgresPaymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE payments SET status = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, model.PaymentStatusRefunded, id)
	return err
}

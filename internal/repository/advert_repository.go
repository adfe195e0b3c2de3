package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type AdvertRepository interface {
	Create(ctx context.Context, advert *model.Advert) (*model.Advert, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Advert, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Advert, error)
	FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	ListActive(ctx context.Context) ([]model.Advert, error)
	Update(ctx context.Context, advert *model.Advert) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeactivateAllForOwner(ctx context.Context, ownerID uuid.UUID) error
	DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresAdvertRepository struct {
	db *sqlx.DB
}

func NewPostgresAdvertRepository(db *sqlx.DB) AdvertRepository {
	return &postgresAdvertRepository{db: db}
}

func (r *postgresAdvertRepository) Create(ctx context.Context, advert *model.Advert) (*model.Advert, error) {
	query := `
		INSERT INTO adverts (owner_id, title, description, city, hourly, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		advert.OwnerID, advert.Title, advert.Description, advert.City, advert.Hourly, advert.Active)
	if err := row.Scan(&advert.ID, &advert.CreatedAt, &advert.UpdatedAt); err != nil {
		return nil, err
	}
	return advert, nil
}

func (r *postgresAdvertRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Advert, error) {
	var advert model.Advert
	query := `SELECT * FROM adverts WHERE id = $1`
	if err := r.db.GetContext(ctx, &advert, query, id); err != nil {
		return nil, err
	}
	return &advert, nil
}

func (r *postgresAdvertRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Advert, error) {
	var adverts []model.Advert
	query := `SELECT * FROM adverts WHERE owner_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &adverts, query, ownerID); err != nil {
		return nil, err
	}
	return adverts, nil
}

func (r *postgresAdvertRepository) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT id FROM adverts WHERE owner_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, ownerID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresAdvertRepository) ListActive(ctx context.Context) ([]model.Advert, error) {
	var adverts []model.Advert
	query := `SELECT * FROM adverts WHERE active = TRUE ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &adverts, query); err != nil {
		return nil, err
	}
	if adverts == nil {
		adverts = []model.Advert{}
	}
	return adverts, nil
}

func (r *postgresAdvertRepository) Update(ctx context.Context, advert *model.Advert) error {
	query := `
		UPDATE adverts SET title = $1, description = $2, city = $3, hourly = $4, active = $5, updated_at = now()
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		advert.Title, advert.Description, advert.City, advert.Hourly, advert.Active, advert.ID)
	return err
}

func (r *postgresAdvertRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE adverts SET active = $1, updated_at = now() WHERE id = $2`, active, id)
	return err
}

func (r *postgresAdvertRepository) DeactivateAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE adverts SET active = FALSE, updated_at = now() WHERE owner_id = $1`, ownerID)
	return err
}

func (r *postgresAdvertRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM adverts WHERE owner_id = $1`, ownerID)
	return err
}

func (r *postgresAdvertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM adverts WHERE id = $1`, id)
	return err
}

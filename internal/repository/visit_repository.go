package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *model.Visit) (*model.Visit, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Visit, error)
	FindByVisitor(ctx context.Context, visitorID uuid.UUID) ([]model.Visit, error)
	FindByGuide(ctx context.Context, guideID uuid.UUID) ([]model.Visit, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	SetVisitorRate(ctx context.Context, id uuid.UUID, rate float64) error
	SetGuideRate(ctx context.Context, id uuid.UUID, rate float64) error
	DenyPendingForGuide(ctx context.Context, guideID uuid.UUID) error
	CancelAllForVisitor(ctx context.Context, visitorID uuid.UUID) error
	// FindRated returns visits contributing to a user's aggregate rating:
	// visits about the given adverts carrying a visitor rating, plus visits
	// by the user carrying a guide rating.
	FindRated(ctx context.Context, userID uuid.UUID, advertIDs []uuid.UUID) ([]model.RatedVisit, error)
}

type postgresVisitRepository struct {
	db *sqlx.DB
}

func NewPostgresVisitRepository(db *sqlx.DB) VisitRepository {
	return &postgresVisitRepository{db: db}
}

func (r *postgresVisitRepository) Create(ctx context.Context, visit *model.Visit) (*model.Visit, error) {
	query := `
		INSERT INTO visits (advert_id, visitor_id, status, scheduled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, visit.AdvertID, visit.VisitorID, visit.Status, visit.When)
	if err := row.Scan(&visit.ID, &visit.CreatedAt, &visit.UpdatedAt); err != nil {
		return nil, err
	}
	return visit, nil
}

func (r *postgresVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	var visit model.Visit
	query := `SELECT * FROM visits WHERE id = $1`
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *postgresVisitRepository) FindByVisitor(ctx context.Context, visitorID uuid.UUID) ([]model.Visit, error) {
	var visits []model.Visit
	query := `SELECT * FROM visits WHERE visitor_id = $1 ORDER BY scheduled_at DESC`
	if err := r.db.SelectContext(ctx, &visits, query, visitorID); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *postgresVisitRepository) FindByGuide(ctx context.Context, guideID uuid.UUID) ([]model.Visit, error) {
	var visits []model.Visit
	query := `
		SELECT v.* FROM visits v
		JOIN adverts a ON v.advert_id = a.id
		WHERE a.owner_id = $1
		ORDER BY v.scheduled_at DESC
	`
	if err := r.db.SelectContext(ctx, &visits, query, guideID); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *postgresVisitRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE visits SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

func (r *postgresVisitRepository) SetVisitorRate(ctx context.Context, id uuid.UUID, rate float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE visits SET visitor_rate = $1, updated_at = now() WHERE id = $2`, rate, id)
	return err
}

func (r *postgresVisitRepository) SetGuideRate(ctx context.Context, id uuid.UUID, rate float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE visits SET guide_rate = $1, updated_at = now() WHERE id = $2`, rate, id)
	return err
}

func (r *postgresVisitRepository) DenyPendingForGuide(ctx context.Context, guideID uuid.UUID) error {
	query := `
		UPDATE visits SET status = $1, updated_at = now()
		WHERE status = $2
			AND advert_id IN (SELECT id FROM adverts WHERE owner_id = $3)
	`
	_, err := r.db.ExecContext(ctx, query, model.VisitStatusDenied, model.VisitStatusPending, guideID)
	return err
}

func (r *postgresVisitRepository) CancelAllForVisitor(ctx context.Context, visitorID uuid.UUID) error {
	query := `
		UPDATE visits SET status = $1, updated_at = now()
		WHERE visitor_id = $2 AND status IN ($3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		model.VisitStatusCancelled, visitorID, model.VisitStatusPending, model.VisitStatusAccepted)
	return err
}

func (r *postgresVisitRepository) FindRated(ctx context.Context, userID uuid.UUID, advertIDs []uuid.UUID) ([]model.RatedVisit, error) {
	const base = `SELECT id, visitor_id, visitor_rate, guide_rate, system_rate FROM visits`

	var visits []model.RatedVisit
	if len(advertIDs) == 0 {
		query := base + ` WHERE visitor_id = ? AND guide_rate IS NOT NULL`
		query = r.db.Rebind(query)
		if err := r.db.SelectContext(ctx, &visits, query, userID); err != nil {
			return nil, err
		}
		return visits, nil
	}

	query, args, err := sqlx.In(
		base+` WHERE (advert_id IN (?) AND visitor_rate IS NOT NULL) OR (visitor_id = ? AND guide_rate IS NOT NULL)`,
		advertIDs, userID,
	)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &visits, query, args...); err != nil {
		return nil, err
	}
	return visits, nil
}

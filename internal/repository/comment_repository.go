package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]model.Comment, error)
	SetLikedBy(ctx context.Context, id uuid.UUID, likedBy model.StringList) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllForAdvert(ctx context.Context, advertID uuid.UUID) error
}

type postgresCommentRepository struct {
	db *sqlx.DB
}

func NewPostgresCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	query := `
		INSERT INTO advert_comments (advert_id, owner_id, content, liked_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if comment.LikedBy == nil {
		comment.LikedBy = model.StringList{}
	}
	row := r.db.QueryRowxContext(ctx, query, comment.AdvertID, comment.OwnerID, comment.Content, comment.LikedBy)
	if err := row.Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT * FROM advert_comments WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postgresCommentRepository) FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	query := `SELECT * FROM advert_comments WHERE advert_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &comments, query, advertID); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func (r *postgresCommentRepository) SetLikedBy(ctx context.Context, id uuid.UUID, likedBy model.StringList) error {
	if likedBy == nil {
		likedBy = model.StringList{}
	}
	_, err := r.db.ExecContext(ctx, `UPDATE advert_comments SET liked_by = $1 WHERE id = $2`, likedBy, id)
	return err
}

func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM advert_comments WHERE id = $1`, id)
	return err
}

func (r *postgresCommentRepository) DeleteAllForAdvert(ctx context.Context, advertID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM advert_comments WHERE advert_id = $1`, advertID)
	return err
}

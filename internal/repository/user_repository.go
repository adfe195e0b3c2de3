package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	// Save writes the whole record back. Callers follow the read-merge-save
	// pattern; concurrent saves resolve last-write-wins.
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error
	SetRating(ctx context.Context, id uuid.UUID, rating *float64) error
	SetBlocking(ctx context.Context, id uuid.UUID, blocking bool) error
	SetGuide(ctx context.Context, id uuid.UUID, guide bool) error
	FindNear(ctx context.Context, lat, lng, maxDistance float64) ([]model.GuideProfile, error)
	SearchConfirmed(ctx context.Context, tokens []string) ([]model.User, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// userRow is the flat table image of model.User. The nested account/profile
// sub-records exist only on the Go side.
type userRow struct {
	ID                 uuid.UUID        `db:"id"`
	Email              string           `db:"email"`
	PasswordHash       string           `db:"password_hash"`
	SessionToken       *string          `db:"session_token"`
	EmailConfirmed     bool             `db:"email_confirmed"`
	ResetPasswordToken *string          `db:"reset_password_token"`
	PaymentID          *string          `db:"payment_id"`
	LastLogin          *time.Time       `db:"last_login"`
	FirstName          string           `db:"first_name"`
	LastName           string           `db:"last_name"`
	City               *string          `db:"city"`
	Country            *string          `db:"country"`
	Phone              *string          `db:"phone"`
	Description        *string          `db:"description"`
	Interests          model.StringList `db:"interests"`
	Birthdate          *time.Time       `db:"birthdate"`
	Rating             *float64         `db:"rating"`
	Latitude           *float64         `db:"latitude"`
	Longitude          *float64         `db:"longitude"`
	AvatarKey          *string          `db:"avatar_key"`
	IsGuide            bool             `db:"is_guide"`
	IsBlocking         bool             `db:"is_blocking"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}

const userColumns = `id, email, password_hash, session_token, email_confirmed, reset_password_token,
	payment_id, last_login, first_name, last_name, city, country, phone, description, interests,
	birthdate, rating, latitude, longitude, avatar_key, is_guide, is_blocking, created_at, updated_at`

func (r *userRow) toModel() *model.User {
	return &model.User{
		ID: r.ID,
		Account: model.Account{
			Email:              r.Email,
			PasswordHash:       r.PasswordHash,
			SessionToken:       r.SessionToken,
			EmailConfirmed:     r.EmailConfirmed,
			ResetPasswordToken: r.ResetPasswordToken,
			PaymentID:          r.PaymentID,
			LastLogin:          r.LastLogin,
		},
		Profile: model.Profile{
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			City:        r.City,
			Country:     r.Country,
			Phone:       r.Phone,
			Description: r.Description,
			Interests:   r.Interests,
			Birthdate:   r.Birthdate,
			Rating:      r.Rating,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			AvatarKey:   r.AvatarKey,
		},
		IsGuide:    r.IsGuide,
		IsBlocking: r.IsBlocking,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (email, password_hash, session_token, first_name, last_name, city, country, interests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query,
		user.Account.Email,
		user.Account.PasswordHash,
		user.Account.SessionToken,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.City,
		user.Profile.Country,
		user.Profile.Interests,
	).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *postgresUserRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_password_token = $1`
	if err := r.db.GetContext(ctx, &row, query, token); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (r *postgresUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var rows []userRow
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return users, nil
}

func (r *postgresUserRepository) Save(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			email = $1, password_hash = $2, session_token = $3, email_confirmed = $4,
			reset_password_token = $5, payment_id = $6, last_login = $7,
			first_name = $8, last_name = $9, city = $10, country = $11, phone = $12,
			description = $13, interests = $14, birthdate = $15, rating = $16,
			latitude = $17, longitude = $18, avatar_key = $19,
			is_guide = $20, is_blocking = $21, updated_at = now()
		WHERE id = $22
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Account.Email,
		user.Account.PasswordHash,
		user.Account.SessionToken,
		user.Account.EmailConfirmed,
		user.Account.ResetPasswordToken,
		user.Account.PaymentID,
		user.Account.LastLogin,
		user.Profile.FirstName,
		user.Profile.LastName,
		user.Profile.City,
		user.Profile.Country,
		user.Profile.Phone,
		user.Profile.Description,
		user.Profile.Interests,
		user.Profile.Birthdate,
		user.Profile.Rating,
		user.Profile.Latitude,
		user.Profile.Longitude,
		user.Profile.AvatarKey,
		user.IsGuide,
		user.IsBlocking,
		user.ID,
	)
	return err
}

func (r *postgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *postgresUserRepository) SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET session_token = $1, updated_at = now() WHERE id = $2`, token, id)
	return err
}

func (r *postgresUserRepository) SetRating(ctx context.Context, id uuid.UUID, rating *float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET rating = $1, updated_at = now() WHERE id = $2`, rating, id)
	return err
}

func (r *postgresUserRepository) SetBlocking(ctx context.Context, id uuid.UUID, blocking bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_blocking = $1, updated_at = now() WHERE id = $2`, blocking, id)
	return err
}

func (r *postgresUserRepository) SetGuide(ctx context.Context, id uuid.UUID, guide bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET is_guide = $1, updated_at = now() WHERE id = $2`, guide, id)
	return err
}

// FindNear runs a spherical nearest-neighbor query over guides with a known
// location, ordered by distance ascending. Distances are in meters
// (earthdistance operates on a spherical earth model).
func (r *postgresUserRepository) FindNear(ctx context.Context, lat, lng, maxDistance float64) ([]model.GuideProfile, error) {
	query := `
		SELECT id, first_name, description, rating, latitude, longitude,
			earth_distance(ll_to_earth(latitude, longitude), ll_to_earth($1, $2)) AS distance
		FROM users
		WHERE is_guide = TRUE
			AND latitude IS NOT NULL AND longitude IS NOT NULL
			AND earth_distance(ll_to_earth(latitude, longitude), ll_to_earth($1, $2)) <= $3
		ORDER BY distance ASC
	`
	var guides []model.GuideProfile
	if err := r.db.SelectContext(ctx, &guides, query, lat, lng, maxDistance); err != nil {
		return nil, err
	}
	if guides == nil {
		guides = []model.GuideProfile{}
	}
	return guides, nil
}

// SearchConfirmed matches any token as a case-insensitive substring of the
// first name, last name, description or interests of email-confirmed users.
func (r *postgresUserRepository) SearchConfirmed(ctx context.Context, tokens []string) ([]model.User, error) {
	if len(tokens) == 0 {
		return []model.User{}, nil
	}

	var conditions []string
	var args []interface{}
	argID := 1
	for _, token := range tokens {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR description ILIKE $%d OR interests::text ILIKE $%d)",
			argID, argID, argID, argID,
		))
		args = append(args, "%"+token+"%")
		argID++
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email_confirmed = TRUE AND (` +
		strings.Join(conditions, " OR ") + `)`

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return users, nil
}

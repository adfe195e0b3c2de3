package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Bozotek/pickaguide-api/internal/model"
	repo "github.com/Bozotek/pickaguide-api/internal/repository"
)

func TestPostgresAdvertRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdvertRepository(sqlxDB)

	id := uuid.New()
	ownerID := uuid.New()
	now := time.Now()
	city := "Paris"
	hourly := 25.0

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO adverts (owner_id, title, description, city, hourly, active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`)).
		WithArgs(ownerID, "Montmartre walk", "Two hours around the butte", "Paris", 25.0, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	advert, err := r.Create(context.Background(), &model.Advert{
		OwnerID:     ownerID,
		Title:       "Montmartre walk",
		Description: "Two hours around the butte",
		City:        &city,
		Hourly:      &hourly,
		Active:      true,
	})
	require.NoError(t, err)
	require.Equal(t, id, advert.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdvertRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdvertRepository(sqlxDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "city", "hourly", "active", "created_at", "updated_at"}).
		AddRow(uuid.New(), uuid.New(), "Montmartre walk", "Two hours around the butte", "Paris", 25.0, true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM adverts WHERE active = TRUE ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	adverts, err := r.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, adverts, 1)
	require.Equal(t, "Montmartre walk", adverts[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdvertRepository_ListActive_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdvertRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM adverts WHERE active = TRUE ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "city", "hourly", "active", "created_at", "updated_at"}))

	adverts, err := r.ListActive(context.Background())
	require.NoError(t, err)
	require.NotNil(t, adverts)
	require.Empty(t, adverts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdvertRepository_DeactivateAllForOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdvertRepository(sqlxDB)

	ownerID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE adverts SET active = FALSE, updated_at = now() WHERE owner_id = $1`)).
		WithArgs(ownerID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, r.DeactivateAllForOwner(context.Background(), ownerID))
	require.NoError(t, mock.ExpectationsWereMet())
}

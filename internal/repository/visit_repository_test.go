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

func TestPostgresVisitRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresVisitRepository(sqlxDB)

	id := uuid.New()
	advertID := uuid.New()
	visitorID := uuid.New()
	when := time.Now().Add(48 * time.Hour)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO visits (advert_id, visitor_id, status, scheduled_at) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`)).
		WithArgs(advertID, visitorID, model.VisitStatusPending, when).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	visit, err := r.Create(context.Background(), &model.Visit{
		AdvertID:  advertID,
		VisitorID: visitorID,
		Status:    model.VisitStatusPending,
		When:      when,
	})
	require.NoError(t, err)
	require.Equal(t, id, visit.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVisitRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresVisitRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE visits SET status = $1, updated_at = now() WHERE id = $2`)).
		WithArgs(model.VisitStatusAccepted, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.SetStatus(context.Background(), id, model.VisitStatusAccepted))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVisitRepository_DenyPendingForGuide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresVisitRepository(sqlxDB)

	guideID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE visits SET status = $1, updated_at = now() WHERE status = $2 AND advert_id IN (SELECT id FROM adverts WHERE owner_id = $3)`)).
		WithArgs(model.VisitStatusDenied, model.VisitStatusPending, guideID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, r.DenyPendingForGuide(context.Background(), guideID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVisitRepository_FindRated_NoAdverts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// FindRated rebinds ? placeholders, so the driver name has to be one
	// sqlx maps to $N.
	sqlxDB := sqlx.NewDb(db, "postgres")
	r := repo.NewPostgresVisitRepository(sqlxDB)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "visitor_id", "visitor_rate", "guide_rate", "system_rate"}).
		AddRow(uuid.New(), userID, nil, 4.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, visitor_id, visitor_rate, guide_rate, system_rate FROM visits WHERE visitor_id = $1 AND guide_rate IS NOT NULL`)).
		WithArgs(userID).
		WillReturnRows(rows)

	visits, err := r.FindRated(context.Background(), userID, nil)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	require.NotNil(t, visits[0].GuideRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresVisitRepository_FindRated_WithAdverts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "postgres")
	r := repo.NewPostgresVisitRepository(sqlxDB)

	userID := uuid.New()
	advertID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "visitor_id", "visitor_rate", "guide_rate", "system_rate"}).
		AddRow(uuid.New(), uuid.New(), 5.0, nil, nil).
		AddRow(uuid.New(), userID, nil, 3.0, 1.0)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, visitor_id, visitor_rate, guide_rate, system_rate FROM visits WHERE (advert_id IN ($1) AND visitor_rate IS NOT NULL) OR (visitor_id = $2 AND guide_rate IS NOT NULL)`)).
		WithArgs(advertID, userID).
		WillReturnRows(rows)

	visits, err := r.FindRated(context.Background(), userID, []uuid.UUID{advertID})
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func newTestActivityRepo(t *testing.T) (ActivityRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestPostgresDB(t)
	return NewActivityRepository(db, logger.Nop()), mock
}

func activityRows(activities ...models.Activity) *sqlmock.Rows {
	rows := sqlmock.NewRows(activityColumns)
	for _, a := range activities {
		rows.AddRow(
			a.ID, a.LeadID, a.UserID, a.ActivityType, a.Title, nullable(a.Notes),
			nullable(a.Duration), a.ActivityDate.String(), a.CreatedAt, a.UserName,
		)
	}
	return rows
}

func sampleActivity(id, leadID int64, now time.Time) models.Activity {
	return models.Activity{
		ID:           id,
		LeadID:       leadID,
		UserID:       1,
		ActivityType: "call",
		Title:        "Intro call",
		ActivityDate: models.NewDate(2024, time.March, 9),
		CreatedAt:    now,
		UserName:     "John Doe",
	}
}

// ── AddActivities ───────────────────────────────────────────────────────────

func TestAddActivities_IncrementsAndInserts(t *testing.T) {
	repo, mock := newTestActivityRepo(t)
	now := time.Now().UTC()

	first := sampleActivity(0, 0, now)
	second := sampleActivity(0, 0, now)
	second.ActivityType = "email"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE leads SET activity_count = activity_count + $1 WHERE id = $2 AND is_active = $3 RETURNING id")).
		WithArgs(int64(2), int64(5), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activities")).
		WithArgs(int64(5), int64(1), "call", "Intro call", nil, nil, "2024-03-09", now, "John Doe").
		WillReturnRows(activityRows(sampleActivity(10, 5, now)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activities")).
		WithArgs(int64(5), int64(1), "email", "Intro call", nil, nil, "2024-03-09", now, "John Doe").
		WillReturnRows(activityRows(sampleActivity(11, 5, now)))
	mock.ExpectCommit()

	saved, err := repo.AddActivities(testContext(), 5, []models.Activity{first, second})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, int64(10), saved[0].ID)
	assert.Equal(t, int64(5), saved[0].LeadID)
	assert.Equal(t, models.NewDate(2024, time.March, 9), saved[0].ActivityDate)
	assert.Equal(t, int64(11), saved[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddActivities_LeadNotFound(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE leads").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.AddActivities(testContext(), 5, []models.Activity{sampleActivity(0, 0, time.Now())})
	assert.ErrorIs(t, err, ErrLeadNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddActivities_InsertFailureRollsBack(t *testing.T) {
	repo, mock := newTestActivityRepo(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE leads").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery("INSERT INTO activities").WillReturnRows(activityRows(sampleActivity(10, 5, now)))
	mock.ExpectQuery("INSERT INTO activities").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	mock.ExpectRollback()

	_, err := repo.AddActivities(testContext(), 5, []models.Activity{sampleActivity(0, 0, now), sampleActivity(0, 0, now)})
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddActivities_IncrementError(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE leads").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.AddActivities(testContext(), 5, []models.Activity{sampleActivity(0, 0, time.Now())})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

// ── ListActivities ──────────────────────────────────────────────────────────

func TestListActivities_Success(t *testing.T) {
	repo, mock := newTestActivityRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM leads WHERE id = $1 AND is_active = $2")).
		WithArgs(int64(5), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM activities WHERE lead_id = $1 ORDER BY activity_date DESC, created_at DESC")).
		WithArgs(int64(5)).
		WillReturnRows(activityRows(sampleActivity(2, 5, now), sampleActivity(1, 5, now)))

	activities, err := repo.ListActivities(testContext(), 5)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, int64(2), activities[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListActivities_EmptyListForExistingLead(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectQuery("SELECT id FROM leads").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery("FROM activities").WillReturnRows(activityRows())

	activities, err := repo.ListActivities(testContext(), 5)
	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}

func TestListActivities_LeadNotFound(t *testing.T) {
	repo, mock := newTestActivityRepo(t)

	mock.ExpectQuery("SELECT id FROM leads").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ListActivities(testContext(), 5)
	assert.ErrorIs(t, err, ErrLeadNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

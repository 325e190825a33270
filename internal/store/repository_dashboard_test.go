package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func newTestDashboardRepo(t *testing.T) (DashboardRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestPostgresDB(t)
	return NewDashboardRepository(db, logger.Nop()), mock
}

func countRow(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestGetDashboardStats_Success(t *testing.T) {
	repo, mock := newTestDashboardRepo(t)

	now := time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)
	weekAgo := time.Date(2024, time.May, 8, 10, 30, 0, 0, time.UTC)
	monthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads WHERE is_active = $1")).
		WithArgs(true).
		WillReturnRows(countRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads WHERE is_active = $1 AND created_at >= $2")).
		WithArgs(true, weekAgo).
		WillReturnRows(countRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads WHERE status = $1 AND created_at >= $2")).
		WithArgs(models.LeadStatusClosed, monthStart).
		WillReturnRows(countRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM activities")).
		WillReturnRows(countRow(40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count FROM leads")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("closed", int64(2)).
			AddRow("new", int64(10)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM activities ORDER BY activity_date DESC, created_at DESC LIMIT 10")).
		WillReturnRows(activityRows(sampleActivity(40, 1, now)))
	mock.ExpectCommit()

	stats, err := repo.GetDashboardStats(testContext(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalLeads)
	assert.Equal(t, int64(3), stats.NewLeadsThisWeek)
	assert.Equal(t, int64(2), stats.ClosedLeadsThisMonth)
	assert.Equal(t, int64(40), stats.TotalActivities)
	assert.Equal(t, []models.StatusCount{{Status: "closed", Count: 2}, {Status: "new", Count: 10}}, stats.LeadsByStatus)
	require.Len(t, stats.RecentActivities, 1)
	assert.Equal(t, int64(40), stats.RecentActivities[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDashboardStats_EmptyDatabase(t *testing.T) {
	repo, mock := newTestDashboardRepo(t)

	mock.ExpectBegin()
	for range 4 {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(countRow(0))
	}
	mock.ExpectQuery("SELECT status").WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
	mock.ExpectQuery("FROM activities").WillReturnRows(activityRows())
	mock.ExpectCommit()

	stats, err := repo.GetDashboardStats(testContext(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, stats.LeadsByStatus)
	assert.NotNil(t, stats.RecentActivities)
	assert.Empty(t, stats.LeadsByStatus)
	assert.Empty(t, stats.RecentActivities)
}

func TestGetDashboardStats_CounterFails(t *testing.T) {
	repo, mock := newTestDashboardRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.GetDashboardStats(testContext(), time.Now())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

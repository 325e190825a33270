package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

const newLeadsWindow = 7 * 24 * time.Hour

// dashboardRepository is the SQL implementation of [DashboardRepository].
type dashboardRepository struct {
	*DB
	logger *logger.Logger
}

// NewDashboardRepository constructs a [DashboardRepository] backed by db.
func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	logger.Debug().Msg("creating dashboard repository")
	return &dashboardRepository{
		DB:     db,
		logger: logger,
	}
}

// GetDashboardStats computes the dashboard relative to now:
//   - total_leads: active leads
//   - new_leads_this_week: active leads created in the last 7 days
//   - closed_leads_this_month: leads with status "closed" created since the
//     first day of the current UTC month, active or not
//   - total_activities: every activity row
//   - leads_by_status: active leads grouped by status
//   - recent_activities: the 10 latest activities
//
// All reads share one transaction so the counters are consistent.
func (d *dashboardRepository) GetDashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	log := logger.FromContext(ctx)

	now = now.UTC()
	weekAgo := now.Add(-newLeadsWindow)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "dashboardRepository.GetDashboardStats").Msg("failed to begin transaction")
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stats := models.DashboardStats{
		LeadsByStatus:    make([]models.StatusCount, 0),
		RecentActivities: make([]models.Activity, 0),
	}

	counters := []struct {
		name  string
		dest  *int64
		build func() (string, []any, error)
	}{
		{
			name: "total_leads",
			dest: &stats.TotalLeads,
			build: func() (string, []any, error) {
				return buildCountLeadsQuery(d.builder, sq.Eq{"is_active": true})
			},
		},
		{
			name: "new_leads_this_week",
			dest: &stats.NewLeadsThisWeek,
			build: func() (string, []any, error) {
				return buildCountLeadsQuery(d.builder, sq.Eq{"is_active": true}, sq.GtOrEq{"created_at": weekAgo})
			},
		},
		{
			name: "closed_leads_this_month",
			dest: &stats.ClosedLeadsThisMonth,
			build: func() (string, []any, error) {
				return buildCountLeadsQuery(d.builder, sq.Eq{"status": models.LeadStatusClosed}, sq.GtOrEq{"created_at": monthStart})
			},
		},
		{
			name: "total_activities",
			dest: &stats.TotalActivities,
			build: func() (string, []any, error) {
				return buildCountActivitiesQuery(d.builder)
			},
		},
	}

	for _, counter := range counters {
		query, args, buildErr := counter.build()
		if buildErr != nil {
			log.Err(buildErr).Str("func", "dashboardRepository.GetDashboardStats").Str("counter", counter.name).Msg("failed to build query")
			return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if err = tx.GetContext(ctx, counter.dest, query, args...); err != nil {
			log.Err(err).Str("func", "dashboardRepository.GetDashboardStats").Str("counter", counter.name).Msg("failed to count")
			return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	query, args, err := buildLeadsByStatusQuery(d.builder)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = tx.SelectContext(ctx, &stats.LeadsByStatus, query, args...); err != nil {
		log.Err(err).Str("func", "dashboardRepository.GetDashboardStats").Msg("failed to group leads by status")
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err = buildRecentActivitiesQuery(d.builder)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = tx.SelectContext(ctx, &stats.RecentActivities, query, args...); err != nil {
		log.Err(err).Str("func", "dashboardRepository.GetDashboardStats").Msg("failed to load recent activities")
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return stats, nil
}

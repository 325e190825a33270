package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// activityRepository is the SQL implementation of [ActivityRepository] over
// the "activities" table. It also owns the leads.activity_count counter.
type activityRepository struct {
	*DB
	logger *logger.Logger
}

// NewActivityRepository constructs an [ActivityRepository] backed by db.
func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	logger.Debug().Msg("creating activity repository")
	return &activityRepository{
		DB:     db,
		logger: logger,
	}
}

// AddActivities attaches activities to an active lead in one transaction.
//
// The counter is bumped first with an in-place "activity_count + N" update.
// It locks the lead row, so concurrent additions to the same lead are
// serialized and no increment is lost. An empty RETURNING result means the
// lead is missing or inactive and yields [ErrLeadNotFound].
func (a *activityRepository) AddActivities(ctx context.Context, leadID int64, activities []models.Activity) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	tx, err := a.BeginTxx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "activityRepository.AddActivities").
			Int64("lead_id", leadID).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildIncrementActivityCountQuery(a.builder, leadID, len(activities))
	if err != nil {
		log.Err(err).Str("func", "activityRepository.AddActivities").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lockedLeadID int64
	if err = tx.QueryRowxContext(ctx, query, args...).Scan(&lockedLeadID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		log.Err(err).
			Str("func", "activityRepository.AddActivities").
			Int64("lead_id", leadID).
			Msg("failed to increment activity count")
		return nil, a.writeError(err)
	}

	saved := make([]models.Activity, 0, len(activities))
	for idx, activity := range activities {
		activity.LeadID = lockedLeadID

		insertQuery, insertArgs, buildErr := buildInsertActivityQuery(a.builder, activity)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "activityRepository.AddActivities").
				Int("iteration", idx+1).
				Msg("failed to build query")
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		var stored models.Activity
		if scanErr := tx.QueryRowxContext(ctx, insertQuery, insertArgs...).StructScan(&stored); scanErr != nil {
			log.Err(scanErr).
				Str("func", "activityRepository.AddActivities").
				Int("iteration", idx+1).
				Int("total", len(activities)).
				Int64("lead_id", leadID).
				Msg("failed to insert activity in transaction")
			return nil, a.writeError(scanErr)
		}

		saved = append(saved, stored)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "activityRepository.AddActivities").
			Int64("lead_id", leadID).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, nil
}

// ListActivities returns the activities of an active lead ordered by
// activity_date and then created_at, newest first.
func (a *activityRepository) ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	existsQuery, existsArgs, err := buildLeadExistsQuery(a.builder, leadID)
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListActivities").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundID int64
	if err = a.GetContext(ctx, &foundID, existsQuery, existsArgs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		log.Err(err).Str("func", "activityRepository.ListActivities").Int64("lead_id", leadID).Msg("failed to check lead")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListActivitiesQuery(a.builder, leadID)
	if err != nil {
		log.Err(err).Str("func", "activityRepository.ListActivities").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	activities := make([]models.Activity, 0)
	if err = a.SelectContext(ctx, &activities, query, args...); err != nil {
		log.Err(err).Str("func", "activityRepository.ListActivities").Int64("lead_id", leadID).Msg("failed to list activities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return activities, nil
}

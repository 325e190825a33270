package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/cache"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

type activityService struct {
	activityRepository store.ActivityRepository
	leadRepository     store.LeadRepository
	dashboardCache     cache.DashboardCache
	now                func() time.Time
	logger             *logger.Logger
}

func NewActivityService(activityRepository store.ActivityRepository, leadRepository store.LeadRepository, dashboardCache cache.DashboardCache, logger *logger.Logger) ActivityService {
	return &activityService{
		activityRepository: activityRepository,
		leadRepository:     leadRepository,
		dashboardCache:     dashboardCache,
		now:                time.Now,
		logger:             logger,
	}
}

// AddActivities stamps every activity with the lead, the actor and the
// creation time and stores them together with the activity_count increment.
//
// The lead is resolved before the batch is checked, so an empty list for a
// missing lead yields store.ErrLeadNotFound rather than ErrEmptyBatch.
func (s *activityService) AddActivities(ctx context.Context, leadID int64, actor models.User, batch models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	if batch.Len() == 0 {
		if _, err := s.leadRepository.GetLead(ctx, leadID); err != nil {
			return nil, err
		}
		return nil, ErrEmptyBatch
	}

	now := s.now().UTC()
	activities := make([]models.Activity, 0, batch.Len())
	for _, item := range batch.Items {
		activities = append(activities, models.NewActivity(item, leadID, actor, now))
	}

	saved, err := s.activityRepository.AddActivities(ctx, leadID, activities)
	if err != nil {
		if errors.Is(err, store.ErrLeadNotFound) {
			return nil, err
		}
		log.Err(err).Int64("lead_id", leadID).Int("count", batch.Len()).Bool("many", batch.Many).Msg("activity creation failed")
		if batch.Many {
			return nil, fmt.Errorf("%w: %v", ErrBulkInsertFailed, err)
		}
		return nil, err
	}

	s.dashboardCache.Invalidate(ctx)
	return saved, nil
}

func (s *activityService) ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error) {
	return s.activityRepository.ListActivities(ctx, leadID)
}

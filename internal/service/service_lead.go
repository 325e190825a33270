package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/cache"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

type leadService struct {
	leadRepository store.LeadRepository
	dashboardCache cache.DashboardCache
	now            func() time.Time
	logger         *logger.Logger
}

func NewLeadService(leadRepository store.LeadRepository, dashboardCache cache.DashboardCache, logger *logger.Logger) LeadService {
	return &leadService{
		leadRepository: leadRepository,
		dashboardCache: dashboardCache,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *leadService) SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	return s.leadRepository.SearchLeads(ctx, filter)
}

// CreateLeads stores every lead of the batch or none of them.
//
// An explicit empty list yields ErrEmptyBatch. A failed list insert is
// reported as ErrBulkInsertFailed carrying the cause; a failed single insert
// returns the storage error unchanged.
func (s *leadService) CreateLeads(ctx context.Context, batch models.Batch[models.LeadCreate]) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	if batch.Len() == 0 {
		return nil, ErrEmptyBatch
	}

	leads, err := s.leadRepository.CreateLeads(ctx, batch.Items, s.now().UTC())
	if err != nil {
		log.Err(err).Int("count", batch.Len()).Bool("many", batch.Many).Msg("lead creation failed")
		if batch.Many {
			return nil, fmt.Errorf("%w: %v", ErrBulkInsertFailed, err)
		}
		return nil, err
	}

	s.dashboardCache.Invalidate(ctx)
	return leads, nil
}

func (s *leadService) GetLead(ctx context.Context, leadID int64) (models.Lead, error) {
	return s.leadRepository.GetLead(ctx, leadID)
}

func (s *leadService) UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate) (models.Lead, error) {
	lead, err := s.leadRepository.UpdateLead(ctx, leadID, update, s.now().UTC())
	if err != nil {
		return models.Lead{}, err
	}

	s.dashboardCache.Invalidate(ctx)
	return lead, nil
}

func (s *leadService) DeleteLead(ctx context.Context, leadID int64) error {
	if err := s.leadRepository.DeleteLead(ctx, leadID); err != nil {
		return err
	}

	s.dashboardCache.Invalidate(ctx)
	return nil
}

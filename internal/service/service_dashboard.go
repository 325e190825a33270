package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/cache"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

type dashboardService struct {
	dashboardRepository store.DashboardRepository
	dashboardCache      cache.DashboardCache
	now                 func() time.Time
	logger              *logger.Logger
}

func NewDashboardService(dashboardRepository store.DashboardRepository, dashboardCache cache.DashboardCache, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepository: dashboardRepository,
		dashboardCache:      dashboardCache,
		now:                 time.Now,
		logger:              logger,
	}
}

// GetDashboard serves the cached stats when present and otherwise computes
// and caches them. The store is tied to the generation seen on the miss, so
// a write that invalidates the cache meanwhile discards the result.
func (s *dashboardService) GetDashboard(ctx context.Context) (models.DashboardStats, error) {
	stats, generation, ok := s.dashboardCache.GetDashboard(ctx)
	if ok {
		return stats, nil
	}

	stats, err := s.dashboardRepository.GetDashboardStats(ctx, s.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "dashboardService.GetDashboard").Msg("computing dashboard failed")
		return models.DashboardStats{}, err
	}

	s.dashboardCache.SetDashboard(ctx, generation, stats)
	return stats, nil
}

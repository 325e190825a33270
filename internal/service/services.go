package service

import (
	"fmt"

	"github.com/MKhiriev/go-lead-keeper/internal/cache"
	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/crypto"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/internal/validators"
)

type Services struct {
	AuthService      AuthService
	LeadService      LeadService
	ActivityService  ActivityService
	DashboardService DashboardService
	AppInfoService   AppInfoService
}

// NewServices wires the services over repos. Mutating services are wrapped
// with request validation.
func NewServices(repos *store.Repositories, dashboardCache cache.DashboardCache, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	tokenService, err := crypto.NewTokenService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator()

	return &Services{
		AuthService: NewAuthValidationService(validator).Wrap(
			NewAuthService(repos.UserRepository, crypto.NewPasswordPolicy(), tokenService, logger),
		),
		LeadService: NewLeadValidationService(validator).Wrap(
			NewLeadService(repos.LeadRepository, dashboardCache, logger),
		),
		ActivityService: NewActivityValidationService(validator).Wrap(
			NewActivityService(repos.ActivityRepository, repos.LeadRepository, dashboardCache, logger),
		),
		DashboardService: NewDashboardService(repos.DashboardRepository, dashboardCache, logger),
		AppInfoService:   appInfoService,
	}, nil
}

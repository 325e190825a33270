package service

import (
	"context"

	"github.com/MKhiriev/go-lead-keeper/models"
)

// AuthService owns registration, login and the bearer-token auth gate.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.UserCreate) (models.User, error)

	// Login verifies credentials and upgrades a weak stored hash in place.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (models.User, error)
}

type LeadService interface {
	SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	CreateLeads(ctx context.Context, leads models.Batch[models.LeadCreate]) ([]models.Lead, error)
	GetLead(ctx context.Context, leadID int64) (models.Lead, error)
	UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate) (models.Lead, error)
	DeleteLead(ctx context.Context, leadID int64) error
}

type ActivityService interface {
	// AddActivities attaches activities to a lead on behalf of actor.
	AddActivities(ctx context.Context, leadID int64, actor models.User, activities models.Batch[models.ActivityCreate]) ([]models.Activity, error)
	ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (models.DashboardStats, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// LeadServiceWrapper defines middleware composition for LeadService.
type LeadServiceWrapper interface {
	Wrap(LeadService) LeadService
}

// ActivityServiceWrapper defines middleware composition for ActivityService.
type ActivityServiceWrapper interface {
	Wrap(ActivityService) ActivityService
}

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-lead-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store.
type UserRepository interface {
	// CreateUser inserts user and returns it with its id. A taken username
	// or email yields [ErrUserAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns [ErrUserNotFound] when no user matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdatePasswordHash replaces the stored hash of the user with userID.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// LeadRepository stores leads. Inactive (soft-deleted) leads are invisible
// to every method.
type LeadRepository interface {
	SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)

	// CreateLeads inserts all leads in one transaction: either every lead is
	// stored or none is.
	CreateLeads(ctx context.Context, leads []models.LeadCreate, now time.Time) ([]models.Lead, error)

	GetLead(ctx context.Context, leadID int64) (models.Lead, error)

	// UpdateLead applies the present fields of update and stamps updated_at.
	UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate, now time.Time) (models.Lead, error)

	// DeleteLead sets is_active to false.
	DeleteLead(ctx context.Context, leadID int64) error
}

// ActivityRepository stores activities and keeps the activity_count of
// their lead in sync.
type ActivityRepository interface {
	// AddActivities increments the lead's activity_count by len(activities)
	// and inserts the activities in the same transaction.
	AddActivities(ctx context.Context, leadID int64, activities []models.Activity) ([]models.Activity, error)

	// ListActivities returns the activities of an active lead, newest
	// activity_date first.
	ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error)
}

// DashboardRepository computes aggregate statistics.
type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

package store

import "github.com/MKhiriev/go-lead-keeper/internal/logger"

// Repositories groups every repository built on one [DB].
type Repositories struct {
	UserRepository      UserRepository
	LeadRepository      LeadRepository
	ActivityRepository  ActivityRepository
	DashboardRepository DashboardRepository
}

// NewRepositories constructs all repositories on top of db.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db, log),
		LeadRepository:      NewLeadRepository(db, log),
		ActivityRepository:  NewActivityRepository(db, log),
		DashboardRepository: NewDashboardRepository(db, log),
	}
}

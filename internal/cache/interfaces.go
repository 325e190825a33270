// Package cache holds the Redis-backed read-through cache of dashboard
// statistics. Every Redis failure is treated as a cache miss, so the cache
// never turns a working request into a failed one.
package cache

import (
	"context"

	"github.com/MKhiriev/go-lead-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_mock.go -package=mock

// DashboardCache stores the latest computed [models.DashboardStats].
type DashboardCache interface {
	// GetDashboard returns the cached stats and true on a hit. It also
	// returns the current generation, to be passed to SetDashboard on a miss.
	GetDashboard(ctx context.Context) (models.DashboardStats, int64, bool)
	// SetDashboard stores stats for the configured TTL unless the cache was
	// invalidated after generation was read.
	SetDashboard(ctx context.Context, generation int64, stats models.DashboardStats)
	// Invalidate drops the cached stats after a write and starts a new
	// generation.
	Invalidate(ctx context.Context)
	// Close releases the underlying connection pool.
	Close() error
}

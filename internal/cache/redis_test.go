package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// unreachableAddress has nothing listening, so every command fails fast.
const unreachableAddress = "127.0.0.1:1"

func TestNewDashboardCache_DisabledWithoutAddress(t *testing.T) {
	c := NewDashboardCache(config.Cache{}, logger.Nop())
	assert.IsType(t, nopCache{}, c)

	c.SetDashboard(context.Background(), 0, models.DashboardStats{TotalLeads: 5})
	_, generation, ok := c.GetDashboard(context.Background())
	assert.False(t, ok)
	assert.Zero(t, generation)
	c.Invalidate(context.Background())
	assert.NoError(t, c.Close())
}

func TestRedisDashboardCache_FailsSafe(t *testing.T) {
	c := NewDashboardCache(config.Cache{Address: unreachableAddress, TTL: time.Minute}, logger.Nop())
	require.IsType(t, &redisDashboardCache{}, c)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NotPanics(t, func() {
		c.SetDashboard(ctx, 0, models.DashboardStats{TotalLeads: 5})
	})

	stats, generation, ok := c.GetDashboard(ctx)
	assert.False(t, ok)
	assert.Zero(t, generation)
	assert.Equal(t, models.DashboardStats{}, stats)

	assert.NotPanics(t, func() { c.Invalidate(ctx) })
}

func TestParseGeneration(t *testing.T) {
	assert.Equal(t, int64(7), parseGeneration("7"))
	assert.Zero(t, parseGeneration(nil))
	assert.Zero(t, parseGeneration("garbage"))
	assert.Zero(t, parseGeneration(int64(3)))
}

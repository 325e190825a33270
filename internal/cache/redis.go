package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

const (
	dashboardKey  = "crm:dashboard:stats"
	generationKey = "crm:dashboard:generation"
	dialTimeout   = 2 * time.Second
)

var errStaleGeneration = errors.New("dashboard cache invalidated during computation")

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewDashboardCache returns a Redis cache for cfg.Address, or a no-op cache
// when no address is configured.
func NewDashboardCache(cfg config.Cache, log *logger.Logger) DashboardCache {
	if cfg.Address == "" {
		log.Info().Msg("dashboard cache disabled")
		return nopCache{}
	}

	log.Info().Str("address", cfg.Address).Dur("ttl", cfg.TTL).Msg("dashboard cache enabled")
	return &redisDashboardCache{
		client: redis.NewClient(&redis.Options{
			Addr:        cfg.Address,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: dialTimeout,
		}),
		ttl:    cfg.TTL,
		logger: log,
	}
}

func (c *redisDashboardCache) GetDashboard(ctx context.Context) (models.DashboardStats, int64, bool) {
	log := logger.FromContext(ctx)

	values, err := c.client.MGet(ctx, dashboardKey, generationKey).Result()
	if err != nil || len(values) != 2 {
		log.Warn().Err(err).Str("func", "redisDashboardCache.GetDashboard").Msg("cache unavailable, treating as miss")
		return models.DashboardStats{}, 0, false
	}

	generation := parseGeneration(values[1])
	raw, ok := values[0].(string)
	if !ok {
		return models.DashboardStats{}, generation, false
	}

	var stats models.DashboardStats
	if err = json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Warn().Err(err).Str("func", "redisDashboardCache.GetDashboard").Msg("dropping undecodable cache entry")
		c.Invalidate(ctx)
		return models.DashboardStats{}, generation + 1, false
	}

	return stats, generation, true
}

// SetDashboard writes stats under WATCH of the generation key. A write that
// raced with Invalidate is dropped, so stale stats never outlive it.
func (c *redisDashboardCache) SetDashboard(ctx context.Context, generation int64, stats models.DashboardStats) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, getErr := tx.Get(ctx, generationKey).Int64()
		if getErr != nil && !errors.Is(getErr, redis.Nil) {
			return getErr
		}
		if current != generation {
			return errStaleGeneration
		}

		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dashboardKey, raw, c.ttl)
			return nil
		})
		return pipeErr
	}, generationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.Debug().Int64("generation", generation).Str("func", "redisDashboardCache.SetDashboard").Msg("skipping stale dashboard stats")
	default:
		log.Warn().Err(err).Str("func", "redisDashboardCache.SetDashboard").Msg("failed to store dashboard stats")
	}
}

func (c *redisDashboardCache) Invalidate(ctx context.Context) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, dashboardKey)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "redisDashboardCache.Invalidate").Msg("failed to invalidate dashboard stats")
	}
}

// parseGeneration reads the MGET value of the generation key. A missing
// key is generation zero.
func parseGeneration(value any) int64 {
	s, ok := value.(string)
	if !ok {
		return 0
	}
	generation, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return generation
}

func (c *redisDashboardCache) Close() error {
	return c.client.Close()
}

// nopCache always misses.
type nopCache struct{}

func (nopCache) GetDashboard(context.Context) (models.DashboardStats, int64, bool) {
	return models.DashboardStats{}, 0, false
}

func (nopCache) SetDashboard(context.Context, int64, models.DashboardStats) {}

func (nopCache) Invalidate(context.Context) {}

func (nopCache) Close() error { return nil }

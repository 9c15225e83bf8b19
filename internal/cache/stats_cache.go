// Package cache provides best-effort Redis caching for assembled
// statistics responses. Every failure degrades to a miss; callers never
// depend on the cache for correctness.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stratforsr-sys/bokningsstatistik/internal/config"
	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/port"
)

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a Redis-backed StatsCache. With an empty address it
// returns a no-op cache, so deployments without Redis work unchanged.
func NewStatsCache(cfg *config.RedisConfig) port.StatsCache {
	if cfg.Addr == "" {
		return noopCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &statsCache{client: client, ttl: cfg.OverviewTTL}
}

func (c *statsCache) GetOverview(ctx context.Context, key string) (*domain.StatsOverview, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("stats cache get %s: %v", key, err)
		}
		return nil, false
	}
	var overview domain.StatsOverview
	if err := json.Unmarshal(data, &overview); err != nil {
		log.Printf("stats cache decode %s: %v", key, err)
		return nil, false
	}
	return &overview, true
}

func (c *statsCache) SetOverview(ctx context.Context, key string, overview *domain.StatsOverview) {
	data, err := json.Marshal(overview)
	if err != nil {
		log.Printf("stats cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("stats cache set %s: %v", key, err)
	}
}

type noopCache struct{}

func (noopCache) GetOverview(context.Context, string) (*domain.StatsOverview, bool) { return nil, false }
func (noopCache) SetOverview(context.Context, string, *domain.StatsOverview)       {}

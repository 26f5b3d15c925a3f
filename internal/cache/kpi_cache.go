package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"backend/internal/config"
	"backend/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	kpiKeyPrefix  = "kpi:snapshot"
	defaultKPITTL = time.Minute
)

// KPISnapshotCache is a read-through TTL cache for dashboard KPI snapshots,
// keyed by organization. Stale reads up to the TTL are accepted; there is
// no invalidation beyond expiry.
type KPISnapshotCache interface {
	Get(ctx context.Context, orgID string) (*model.OrganizationKPISnapshot, bool, error)
	Set(ctx context.Context, orgID string, snapshot *model.OrganizationKPISnapshot) error
}

type redisKPICache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopKPICache struct{}

// NewKPICache returns a redis-backed cache when caching is enabled, or a
// no-op cache otherwise so callers never branch on configuration.
func NewKPICache(cfg config.CacheConfig) (KPISnapshotCache, error) {
	if !cfg.Enabled {
		return &noopKPICache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.KPITTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultKPITTL
	}

	return &redisKPICache{client: client, ttl: ttl}, nil
}

func NewNoopKPICache() KPISnapshotCache {
	return &noopKPICache{}
}

func (c *redisKPICache) Get(ctx context.Context, orgID string) (*model.OrganizationKPISnapshot, bool, error) {
	payload, err := c.client.Get(ctx, kpiKey(orgID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var snapshot model.OrganizationKPISnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode kpi snapshot cache: %w", err)
	}

	return &snapshot, true, nil
}

func (c *redisKPICache) Set(ctx context.Context, orgID string, snapshot *model.OrganizationKPISnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode kpi snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, kpiKey(orgID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (n *noopKPICache) Get(ctx context.Context, orgID string) (*model.OrganizationKPISnapshot, bool, error) {
	return nil, false, nil
}

func (n *noopKPICache) Set(ctx context.Context, orgID string, snapshot *model.OrganizationKPISnapshot) error {
	return nil
}

func kpiKey(orgID string) string {
	return kpiKeyPrefix + ":" + orgID
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

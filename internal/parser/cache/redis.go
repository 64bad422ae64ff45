package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrail-utils/internal/config"
	"jobtrail-utils/pkg/models"
)

const redisKeyPrefix = "parser:result:"

// RedisStore shares parse results across instances. Entries are JSON
// documents keyed by normalized URL with the configured TTL; Redis handles
// expiry, so there is no reaper here.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedisStore connects to Redis using the configured URL and verifies
// the connection before returning.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	timeout := cfg.Redis.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl, timeout: timeout}, nil
}

func (r *RedisStore) Get(ctx context.Context, rawURL string) (*models.ParsedJobData, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.client.Get(ctx, redisKeyPrefix+NormalizeURL(rawURL)).Result()
	if err != nil {
		// redis.Nil and transport errors both read as a miss; the
		// pipeline just re-parses.
		r.misses.Add(1)
		return nil, false
	}

	var data models.ParsedJobData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		r.misses.Add(1)
		return nil, false
	}

	r.hits.Add(1)
	return &data, true
}

func (r *RedisStore) Set(ctx context.Context, rawURL string, data *models.ParsedJobData) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	r.client.Set(ctx, redisKeyPrefix+NormalizeURL(rawURL), payload, r.ttl)
}

func (r *RedisStore) Delete(ctx context.Context, rawURL string) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	r.client.Del(ctx, redisKeyPrefix+NormalizeURL(rawURL))
}

func (r *RedisStore) Stats(ctx context.Context) Stats {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entries := 0
	keys, err := r.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err == nil {
		entries = len(keys)
	}

	return Stats{
		Backend: "redis",
		Entries: entries,
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
	}
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

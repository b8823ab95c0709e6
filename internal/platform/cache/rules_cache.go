// Package cache keeps the ledger rules close to the request path.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const rulesKey = "ledger:rules"

// ErrMiss is returned when the rules are not cached.
var ErrMiss = errors.New("cache miss")

// RulesCache stores the ledger rules document.
type RulesCache interface {
	GetRules(ctx context.Context) (*domain.LedgerRules, error)
	SetRules(ctx context.Context, rules domain.LedgerRules) error
	InvalidateRules(ctx context.Context) error
}

// RedisRulesCache implements RulesCache using Redis.
type RedisRulesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRulesCache connects to the Redis server at url and verifies the connection.
func NewRedisRulesCache(ctx context.Context, url string, ttl time.Duration) (*RedisRulesCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for rules cache: %w", err)
	}
	return &RedisRulesCache{client: client, ttl: ttl}, nil
}

func (c *RedisRulesCache) GetRules(ctx context.Context) (*domain.LedgerRules, error) {
	raw, err := c.client.Get(ctx, rulesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to read cached rules: %w", err)
	}
	var rules domain.LedgerRules
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("cached rules are not valid JSON: %w", err)
	}
	return &rules, nil
}

func (c *RedisRulesCache) SetRules(ctx context.Context, rules domain.LedgerRules) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := c.client.Set(ctx, rulesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rules: %w", err)
	}
	return nil
}

func (c *RedisRulesCache) InvalidateRules(ctx context.Context) error {
	if err := c.client.Del(ctx, rulesKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached rules: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *RedisRulesCache) Close() error {
	return c.client.Close()
}

// NoopRulesCache never holds anything. It is used when Redis is not configured.
type NoopRulesCache struct{}

func (NoopRulesCache) GetRules(context.Context) (*domain.LedgerRules, error) { return nil, ErrMiss }
func (NoopRulesCache) SetRules(context.Context, domain.LedgerRules) error     { return nil }
func (NoopRulesCache) InvalidateRules(context.Context) error                  { return nil }

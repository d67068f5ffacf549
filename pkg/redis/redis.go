package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/freefind/freefind-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace   = "ff"
	estimatePrefix = "co2_estimate"
	revokedPrefix  = "revoked_session"
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("redis: key not found")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Exists(context.Context, ...string) *redis.IntCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection helpers needed by the service. A nil
// *Client is valid everywhere and behaves as a disabled cache.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Ping verifies connectivity. Nil clients report an error so readiness checks
// can distinguish "disabled" upstream.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// EstimateKey builds the cache key for a remote CO2 estimate.
func EstimateKey(category, condition string) string {
	return strings.Join([]string{keyNamespace, estimatePrefix, category, condition}, ":")
}

// GetCachedEstimate returns a cached estimate payload, ErrNotFound when absent.
func (c *Client) GetCachedEstimate(ctx context.Context, key string) (string, error) {
	if c == nil || c.store == nil {
		return "", ErrNotFound
	}
	value, err := c.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetCachedEstimate stores an estimate payload with a TTL. Nil clients no-op.
func (c *Client) SetCachedEstimate(ctx context.Context, key, value string, ttl time.Duration) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// RevokeSession marks a token id as logged out until its natural expiry.
func (c *Client) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || c.store == nil {
		return nil
	}
	key := strings.Join([]string{keyNamespace, revokedPrefix, jti}, ":")
	return c.store.Set(ctx, key, "1", ttl).Err()
}

// IsSessionRevoked reports whether the token id was revoked. Nil clients
// report false; revocation is best-effort without Redis.
func (c *Client) IsSessionRevoked(ctx context.Context, jti string) (bool, error) {
	if c == nil || c.store == nil {
		return false, nil
	}
	key := strings.Join([]string{keyNamespace, revokedPrefix, jti}, ":")
	n, err := c.store.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

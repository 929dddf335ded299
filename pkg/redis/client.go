package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/kv"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "steakaway"

// Client wraps the redis connection and exposes it as the engine's kv.Store.
type Client struct {
	raw *redis.Client
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
	return &Client{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Configured() {
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
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return opts, nil
}

// Get fetches a namespaced key, mapping redis.Nil onto kv.ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.raw.Get(ctx, namespaced(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set stores the value without expiry; engine snapshots survive restarts.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	return c.raw.Set(ctx, namespaced(key), value, 0).Err()
}

// Remove deletes the key; deleting a missing key is a no-op.
func (c *Client) Remove(ctx context.Context, key string) error {
	return c.raw.Del(ctx, namespaced(key)).Err()
}

// Ping verifies connectivity for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.raw.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.raw.Close()
}

func namespaced(key string) string {
	return keyNamespace + ":" + key
}

var _ kv.Store = (*Client)(nil)

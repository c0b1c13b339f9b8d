package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vmsuarez/usermap/pkg/config"
	"github.com/vmsuarez/usermap/pkg/logger"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	HGetAll(context.Context, string) *redis.MapStringStringCmd
}

// Client reads the realtime record store: a Redis hash holding the full
// record set (field = record id, value = record JSON) and a pub/sub
// channel that fires whenever the hash changes.
type Client struct {
	store   cmdable
	raw     *redis.Client
	key     string
	channel string
	logg    *logger.Logger
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// Snapshot is one full push of the record set, keyed by opaque id.
type Snapshot map[string]json.RawMessage

// New bootstraps the store client and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping record store: %w", err)
	}
	return &Client{
		store:   raw,
		raw:     raw,
		key:     cfg.UsersKey,
		channel: cfg.ChangeChannel,
		logg:    logg,
	}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("record store url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing record store url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
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

// Fetch reads the current record set.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	if c.store == nil {
		return nil, errors.New("record store client not initialized")
	}
	raw, err := c.store.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch record snapshot: %w", err)
	}
	snap := make(Snapshot, len(raw))
	for id, value := range raw {
		snap[id] = json.RawMessage(value)
	}
	return snap, nil
}

// Watch delivers the current snapshot, then re-fetches and delivers again
// on every change signal until ctx is cancelled. The pub/sub registration
// is released on return.
func (c *Client) Watch(ctx context.Context, fn func(Snapshot)) error {
	if c.raw == nil {
		return errors.New("record store client not initialized")
	}
	if fn == nil {
		return errors.New("watch callback is required")
	}

	snap, err := c.Fetch(ctx)
	if err != nil {
		return err
	}
	fn(snap)

	sub := c.raw.Subscribe(ctx, c.channel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			snap, err := c.Fetch(ctx)
			if err != nil {
				if c.logg != nil {
					c.logg.Error(ctx, "record snapshot refresh failed", err)
				}
				continue
			}
			fn(snap)
		}
	}
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("record store client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// Package rds provides a redis client for shared TTL state
package rds

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotOpen is returned when a nil or unopened client is used
var ErrNotOpen = errors.New("rds: client not open")

// Config configures redis connectivity
type Config struct {
	Addr     string
	DB       int
	Password string
}

// RDS wraps a go-redis client. Connections are established lazily
type RDS struct {
	cl *redis.Client
}

// Open builds the client without dialing; call Ping to verify reachability
func Open(_ context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	cl := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &RDS{cl: cl}, nil
}

// SetNX sets key to value with a TTL only if it does not exist.
// Returns true when the key was set, false when it already existed
func (r *RDS) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if r == nil || r.cl == nil {
		return false, ErrNotOpen
	}
	return r.cl.SetNX(ctx, key, value, ttl).Result()
}

// Ping verifies server reachability
func (r *RDS) Ping(ctx context.Context) error {
	if r == nil || r.cl == nil {
		return ErrNotOpen
	}
	return r.cl.Ping(ctx).Err()
}

// Close closes the client
func (r *RDS) Close() error {
	if r == nil || r.cl == nil {
		return nil
	}
	return r.cl.Close()
}

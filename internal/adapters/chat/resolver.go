package chat

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	resolveTTL     = 15 * time.Minute
	resolveCleanup = 30 * time.Minute
)

// Resolver caches username lookups in front of the gateway
// resolution misses are not cached so a user created later is found
type Resolver struct {
	c     *Client
	cache *gocache.Cache
}

// NewResolver builds a Resolver over an existing client
func NewResolver(c *Client) *Resolver {
	return &Resolver{
		c:     c,
		cache: gocache.New(resolveTTL, resolveCleanup),
	}
}

// Resolve returns the user for username, hitting the cache first
func (r *Resolver) Resolve(ctx context.Context, username string) (User, error) {
	if v, ok := r.cache.Get(username); ok {
		if u, ok := v.(User); ok {
			return u, nil
		}
	}
	u, err := r.c.UserByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	r.cache.Set(username, u, gocache.DefaultExpiration)
	return u, nil
}

// Invalidate drops a cached username
func (r *Resolver) Invalidate(username string) { r.cache.Delete(username) }

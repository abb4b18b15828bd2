package query

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Refetcher is a mounted query that can be refreshed
type Refetcher interface {
	Resource() string
	Refetch(ctx context.Context) error
}

// Client tracks mounted lists by resource so writes can invalidate them
type Client struct {
	mu      sync.RWMutex
	mounted map[string]map[Refetcher]struct{}
	log     *zap.Logger
}

// NewClient creates an empty registry
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{mounted: map[string]map[Refetcher]struct{}{}, log: log}
}

// Mount registers r until the returned func is called
func (c *Client) Mount(r Refetcher) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.mounted[r.Resource()]
	if !ok {
		set = map[Refetcher]struct{}{}
		c.mounted[r.Resource()] = set
	}
	set[r] = struct{}{}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.mounted[r.Resource()], r)
	}
}

// Mounted counts the queries mounted for a resource
func (c *Client) Mounted(resource string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mounted[resource])
}

// Invalidate refetches every mounted query of the given resources.
// Superseded and closed queries are not failures.
func (c *Client) Invalidate(ctx context.Context, resources ...string) error {
	c.mu.RLock()
	var targets []Refetcher
	for _, res := range resources {
		for r := range c.mounted[res] {
			targets = append(targets, r)
		}
	}
	c.mu.RUnlock()

	var errs []error
	for _, r := range targets {
		err := r.Refetch(ctx)
		if err == nil || errors.Is(err, ErrSuperseded) || errors.Is(err, ErrClosed) {
			continue
		}
		c.log.Warn("Refetch after invalidation failed", zap.String("resource", r.Resource()), zap.Error(err))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

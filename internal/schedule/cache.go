package schedule

import (
	"context"
	"sync"
)

// Cache memoizes resolved calendars per employee for the duration of one
// request or job. It must be created fresh for each unit of work; schedule
// edits made by other requests are not visible through a live Cache.
type Cache struct {
	resolver Resolver

	mu       sync.Mutex
	resolved map[string]Resolved
}

func NewCache(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		resolved: make(map[string]Resolved),
	}
}

func (c *Cache) Resolve(ctx context.Context, companyID, employeeID string) (Resolved, error) {
	c.mu.Lock()
	if res, ok := c.resolved[employeeID]; ok {
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	res, err := c.resolver.Resolve(ctx, companyID, employeeID)
	if err != nil {
		return Resolved{}, err
	}

	c.mu.Lock()
	c.resolved[employeeID] = res
	c.mu.Unlock()
	return res, nil
}

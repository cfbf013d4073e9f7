package keyword

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wichananm65/meli-optimizer/internal/meli"
)

// TrendSource fetches trending searches for a category.
type TrendSource interface {
	GetTrends(ctx context.Context, token, siteID, categoryID string) ([]meli.Trend, error)
}

// fetchTimeout bounds a shared fetch, which outlives the caller that started it.
const fetchTimeout = 30 * time.Second

type entry struct {
	trends    []meli.Trend
	fetchedAt time.Time
}

// Cache keeps the trending searches of each category for a TTL. Expired
// entries are refreshed on read; if the refresh fails the stale entry is
// served. Concurrent refreshes of one category share a single fetch, which
// keeps running when the caller that started it goes away.
type Cache struct {
	source TrendSource
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func NewCache(source TrendSource, ttl time.Duration) *Cache {
	return &Cache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *Cache) Trending(ctx context.Context, token, categoryID string) ([]meli.Trend, error) {
	c.mu.RLock()
	cached, ok := c.entries[categoryID]
	c.mu.RUnlock()
	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		return cached.trends, nil
	}

	ch := c.group.DoChan(categoryID, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		trends, err := c.source.GetTrends(fetchCtx, token, meli.SiteID(categoryID), categoryID)
		if err != nil {
			return nil, err
		}
		if trends == nil {
			trends = []meli.Trend{}
		}
		c.mu.Lock()
		c.entries[categoryID] = entry{trends: trends, fetchedAt: c.now()}
		c.mu.Unlock()
		return trends, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	v, err := res.Val, res.Err
	if err != nil {
		if ok {
			zap.L().Warn("serving stale trends", zap.String("category_id", categoryID), zap.Error(err))
			return cached.trends, nil
		}
		return nil, err
	}
	return v.([]meli.Trend), nil
}

// Invalidate drops the cached trends of a category.
func (c *Cache) Invalidate(categoryID string) {
	c.mu.Lock()
	delete(c.entries, categoryID)
	c.mu.Unlock()
}

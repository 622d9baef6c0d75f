package loader

import (
	"context"
	"sync"
	"time"

	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

// DefaultTTL bounds how stale the normalized table may get between reloads.
const DefaultTTL = 5 * time.Minute

// CachedLoader memoizes one loader's table for a bounded TTL. The cached
// table is immutable; consumers within the validity window all see the same
// value. Invalidate forces the next Get to reload; the approval workflow
// calls it after mutating the spreadsheet.
type CachedLoader struct {
	loader    *Loader
	ttl       time.Duration
	logger    logger.Logger
	telemetry *telemetry.Provider

	mu      sync.Mutex
	table   *domain.Table
	expires time.Time
	now     func() time.Time // test seam
}

// NewCached wraps a loader with a TTL cache. ttl <= 0 uses DefaultTTL.
func NewCached(l *Loader, ttl time.Duration, log logger.Logger, tp *telemetry.Provider) *CachedLoader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedLoader{
		loader:    l,
		ttl:       ttl,
		logger:    log,
		telemetry: tp,
		now:       time.Now,
	}
}

// Get returns the cached table, reloading if expired or invalidated.
// Failed loads are not cached, so the next Get retries.
func (c *CachedLoader) Get(ctx context.Context) (*domain.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.now().Before(c.expires) {
		if c.telemetry != nil {
			c.telemetry.Metrics.CacheHits.Inc()
		}
		return c.table, nil
	}

	if c.telemetry != nil {
		c.telemetry.Metrics.CacheMisses.Inc()
	}

	table, err := c.loader.Load(ctx)
	if err != nil {
		return table, err
	}

	c.table = table
	c.expires = c.now().Add(c.ttl)
	return table, nil
}

// Invalidate discards the cached table; the next Get reloads.
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = nil
	c.logger.Debug("voc table cache invalidated")
}

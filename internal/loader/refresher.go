package loader

import (
	"context"
	"sync"
	"time"

	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/telemetry"
)

const defaultRefreshInterval = 10 * time.Minute

// Refresher keeps the cached table warm by reloading it in the background
// so the first dashboard hit after a quiet period does not pay the full
// spreadsheet round-trip. It is one-shot: once stopped it stays stopped.
type Refresher struct {
	cache     *CachedLoader
	interval  time.Duration
	logger    logger.Logger
	telemetry *telemetry.Provider

	mu       sync.Mutex
	running  bool
	stopped  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewRefresher creates a refresher. interval <= 0 uses the default.
func NewRefresher(cache *CachedLoader, interval time.Duration, log logger.Logger, tp *telemetry.Provider) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		cache:     cache,
		interval:  interval,
		logger:    log,
		telemetry: tp,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the refresh loop goroutine. A second Start, or a Start
// after Stop, is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running || r.stopped {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.logger.Info("cache refresher started", logger.Duration("interval", r.interval))

	go r.run(ctx)
}

// Stop signals the refresh loop to exit and waits for it to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running || r.stopped {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.stopped = true
	close(r.stopChan)
	r.mu.Unlock()

	<-r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("cache refresher stopped", logger.String("reason", "context cancelled"))
			return
		case <-r.stopChan:
			r.logger.Info("cache refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	r.cache.Invalidate()
	if _, err := r.cache.Get(ctx); err != nil {
		// Recoverable; the cache will retry on the next read.
		r.logger.Warn("background refresh failed", logger.Error(err))
		return
	}
	if r.telemetry != nil {
		r.telemetry.Metrics.CacheRefreshes.Inc()
	}
}

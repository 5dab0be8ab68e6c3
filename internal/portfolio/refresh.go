package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/asubedar/profit-ladder/internal/logger"
)

// Refresher re-runs Load on a recurring timer. At most one timer is ever
// armed: applying a new interval cancels the previous one first, and an
// interval of zero disables auto-refresh entirely.
type Refresher struct {
	manager *Manager

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRefresher creates a Refresher for the given manager. No timer is
// armed until Apply is called.
func NewRefresher(manager *Manager) *Refresher {
	return &Refresher{manager: manager}
}

// Apply cancels any armed timer and, for a positive interval, arms a new
// one firing every that many seconds.
func (r *Refresher) Apply(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	if seconds <= 0 {
		logger.Get().Info("auto-refresh disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go r.run(ctx, time.Duration(seconds)*time.Second)
	logger.Get().Infow("auto-refresh armed", "interval_seconds", seconds)
}

// Stop cancels any armed timer.
func (r *Refresher) Stop() {
	r.Apply(0)
}

func (r *Refresher) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Get().Debug("auto-refreshing prices")
			r.manager.Load(ctx)
		}
	}
}

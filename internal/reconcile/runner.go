package reconcile

import (
	"context"
	"time"

	"nabta/internal/middleware"
)

// Runner triggers a full reconciliation on a fixed interval. Start returns
// immediately; the loop stops when the context is cancelled.
type Runner struct {
	reconciler *Reconciler
	interval   time.Duration
}

// NewRunner creates a Runner. The interval is clamped to at least one hour.
func NewRunner(reconciler *Reconciler, interval time.Duration) *Runner {
	if interval < time.Hour {
		interval = time.Hour
	}
	return &Runner{reconciler: reconciler, interval: interval}
}

// Start launches the periodic loop. The first run happens after one full
// interval, not at startup, so a crash-looping process doesn't hammer the
// database with recounts.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		middleware.Logger.Info("circle reconciliation scheduled", "interval", r.interval.String())
		for {
			select {
			case <-ctx.Done():
				middleware.Logger.Info("circle reconciliation stopped")
				return
			case <-ticker.C:
				if _, err := r.reconciler.ReconcileAll(ctx); err != nil {
					middleware.Logger.Error("circle reconciliation failed", "error", err)
				}
			}
		}
	}()
}

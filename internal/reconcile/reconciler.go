package reconcile

import (
	"context"
	"time"

	"nabta/internal/middleware"
	"nabta/internal/observability"
	"nabta/internal/repository"
)

const (
	// scanBatchSize is how many circle IDs one keyset page loads.
	scanBatchSize = 500
	// writeBatchSize caps corrective writes per batch so a badly drifted
	// database doesn't hold a single long transaction's worth of work.
	writeBatchSize = 500
)

// Reconciler repairs the denormalized member counters on circles by
// recounting the membership rows. Running it twice in a row is safe: the
// second run finds nothing to correct.
type Reconciler struct {
	circleRepo repository.CircleRepository
	batchSize  int
}

// NewReconciler creates a new Reconciler.
func NewReconciler(circleRepo repository.CircleRepository) *Reconciler {
	return &Reconciler{circleRepo: circleRepo, batchSize: writeBatchSize}
}

// RunStats summarizes one full reconciliation pass.
type RunStats struct {
	Scanned   int           `json:"scanned"`
	Corrected int           `json:"corrected"`
	Duration  time.Duration `json:"-"`
}

// CircleResult is the outcome of reconciling a single circle.
type CircleResult struct {
	CircleID uint  `json:"circle_id"`
	Before   int64 `json:"before"`
	After    int64 `json:"after"`
	Changed  bool  `json:"changed"`
}

// ReconcileAll walks every circle, recounts membership rows page by page,
// and stages a correction for each drifted counter. Staged corrections are
// flushed in single transactions of at most writeBatchSize rewrites; a
// failed flush leaves earlier batches applied and the next run picks the
// remainder up again.
func (r *Reconciler) ReconcileAll(ctx context.Context) (*RunStats, error) {
	start := time.Now()
	stats := &RunStats{}

	batch := make([]repository.MemberCorrection, 0, r.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.circleRepo.SetMemberCounts(ctx, batch); err != nil {
			return err
		}
		stats.Corrected += len(batch)
		observability.ReconcileCorrected.Add(float64(len(batch)))
		middleware.Logger.InfoContext(ctx, "reconcile correction batch applied",
			"writes", len(batch), "scanned", stats.Scanned)
		batch = batch[:0]
		return nil
	}

	var afterID uint
	for {
		if err := ctx.Err(); err != nil {
			observability.ReconcileRuns.WithLabelValues("error").Inc()
			return nil, err
		}

		ids, err := r.circleRepo.ListIDs(ctx, afterID, scanBatchSize)
		if err != nil {
			observability.ReconcileRuns.WithLabelValues("error").Inc()
			return nil, err
		}
		if len(ids) == 0 {
			break
		}

		stored, err := r.circleRepo.MemberCounters(ctx, ids)
		if err != nil {
			observability.ReconcileRuns.WithLabelValues("error").Inc()
			return nil, err
		}
		actual, err := r.circleRepo.CountMembersBatch(ctx, ids)
		if err != nil {
			observability.ReconcileRuns.WithLabelValues("error").Inc()
			return nil, err
		}

		for _, id := range ids {
			counter, ok := stored[id]
			if !ok {
				// Circle vanished between the ID page and the counter read.
				continue
			}
			stats.Scanned++
			if int64(counter) == actual[id] {
				continue
			}
			batch = append(batch, repository.MemberCorrection{CircleID: id, Members: int(actual[id])})
			if len(batch) >= r.batchSize {
				if err := flush(); err != nil {
					observability.ReconcileRuns.WithLabelValues("error").Inc()
					return nil, err
				}
			}
		}
		afterID = ids[len(ids)-1]
	}

	if err := flush(); err != nil {
		observability.ReconcileRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	stats.Duration = time.Since(start)
	observability.ReconcileRuns.WithLabelValues("ok").Inc()
	observability.ReconcileDuration.Observe(stats.Duration.Seconds())

	middleware.Logger.InfoContext(ctx, "circle reconciliation finished",
		"scanned", stats.Scanned,
		"corrected", stats.Corrected,
		"duration", stats.Duration.String())
	return stats, nil
}

// ReconcileCircle recounts one circle's members and rewrites the counter
// only when it drifted.
func (r *Reconciler) ReconcileCircle(ctx context.Context, circleID uint) (*CircleResult, error) {
	circle, err := r.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}

	actual, err := r.circleRepo.CountMembers(ctx, circleID)
	if err != nil {
		return nil, err
	}

	res := &CircleResult{
		CircleID: circleID,
		Before:   int64(circle.Members),
		After:    actual,
	}
	if int64(circle.Members) == actual {
		return res, nil
	}

	if err := r.circleRepo.SetMemberCount(ctx, circleID, int(actual)); err != nil {
		return nil, err
	}
	res.Changed = true
	observability.ReconcileCorrected.Inc()
	middleware.Logger.InfoContext(ctx, "corrected circle member count",
		"circle_id", circleID, "before", res.Before, "after", res.After)
	return res, nil
}

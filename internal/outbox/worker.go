package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nabta/internal/middleware"
	"nabta/internal/models"
	"nabta/internal/observability"
	"nabta/internal/repository"
)

const (
	claimBatchSize = 100
	pollInterval   = 5 * time.Second
	baseBackoff    = time.Minute
	maxBackoff     = time.Hour
)

// Worker drains the outbox: counter bookkeeping enqueued alongside primary
// writes. Tasks retry with exponential backoff; a persistently failing task
// stays in the table with its last error instead of being discarded.
type Worker struct {
	outboxRepo repository.OutboxRepository
	userRepo   repository.UserRepository
	circleRepo repository.CircleRepository
}

// NewWorker creates a new Worker.
func NewWorker(
	outboxRepo repository.OutboxRepository,
	userRepo repository.UserRepository,
	circleRepo repository.CircleRepository,
) *Worker {
	return &Worker{
		outboxRepo: outboxRepo,
		userRepo:   userRepo,
		circleRepo: circleRepo,
	}
}

// Start launches the polling loop. It returns immediately; the loop stops
// when the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		middleware.Logger.Info("outbox worker started", "poll_interval", pollInterval.String())
		for {
			select {
			case <-ctx.Done():
				middleware.Logger.Info("outbox worker stopped")
				return
			case <-ticker.C:
				if _, err := w.DrainOnce(ctx); err != nil {
					middleware.Logger.Error("outbox drain failed", "error", err)
				}
			}
		}
	}()
}

// DrainOnce claims one batch of due tasks and executes them. It returns the
// number of tasks that succeeded.
func (w *Worker) DrainOnce(ctx context.Context) (int, error) {
	tasks, err := w.outboxRepo.ClaimDue(ctx, claimBatchSize)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := w.execute(ctx, task); err != nil {
			observability.OutboxProcessed.WithLabelValues(task.Kind, "error").Inc()
			backoff := backoffFor(task.Attempts)
			middleware.Logger.WarnContext(ctx, "outbox task failed",
				"task_id", task.ID, "kind", task.Kind, "attempts", task.Attempts,
				"backoff", backoff.String(), "error", err)
			if merr := w.outboxRepo.MarkFailed(ctx, task.ID, err, backoff); merr != nil {
				middleware.Logger.ErrorContext(ctx, "failed to record outbox failure", "task_id", task.ID, "error", merr)
			}
			continue
		}
		if err := w.outboxRepo.MarkDone(ctx, task.ID); err != nil {
			return done, err
		}
		observability.OutboxProcessed.WithLabelValues(task.Kind, "ok").Inc()
		done++
	}

	if pending, err := w.outboxRepo.CountPending(ctx); err == nil {
		observability.OutboxPending.Set(float64(pending))
	}
	return done, nil
}

func (w *Worker) execute(ctx context.Context, task models.OutboxTask) error {
	switch task.Kind {
	case models.TaskIncrementUserPostCount:
		var p repository.UserPostCountPayload
		if err := json.Unmarshal([]byte(task.Payload), &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return w.userRepo.AdjustPostCount(ctx, p.UserID, 1)
	case models.TaskDecrementUserPostCount:
		var p repository.UserPostCountPayload
		if err := json.Unmarshal([]byte(task.Payload), &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return w.userRepo.AdjustPostCount(ctx, p.UserID, -1)
	case models.TaskAdjustCirclePostCount:
		var p repository.CirclePostCountPayload
		if err := json.Unmarshal([]byte(task.Payload), &p); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return w.circleRepo.AdjustPostCount(ctx, p.CircleID, p.Delta)
	default:
		return fmt.Errorf("unknown task kind %q", task.Kind)
	}
}

// backoffFor doubles the delay per attempt, capped at maxBackoff.
func backoffFor(attempts int) time.Duration {
	backoff := baseBackoff
	for i := 1; i < attempts && backoff < maxBackoff; i++ {
		backoff *= 2
	}
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"nabta/internal/models"

	"gorm.io/gorm"
)

// Outbox task payloads. Kept as plain structs so both the enqueuing
// repositories and the worker agree on the JSON shape.
type (
	// UserPostCountPayload targets the cached post_count on a user.
	UserPostCountPayload struct {
		UserID uint `json:"user_id"`
	}
	// CirclePostCountPayload shifts the cached post tally on a circle.
	CirclePostCountPayload struct {
		CircleID uint `json:"circle_id"`
		Delta    int  `json:"delta"`
	}
)

// OutboxRepository manages deferred bookkeeping tasks.
type OutboxRepository interface {
	Enqueue(ctx context.Context, kind string, payload interface{}) error
	ClaimDue(ctx context.Context, limit int) ([]models.OutboxTask, error)
	MarkDone(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, taskErr error, backoff time.Duration) error
	CountPending(ctx context.Context) (int64, error)
}

type outboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository returns a new OutboxRepository implementation.
func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// enqueueTask inserts an outbox row on the given handle, which may be a
// transaction. Repositories call this inside the same transaction as the
// primary write so the task exists iff the write committed.
func enqueueTask(db *gorm.DB, kind string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := models.OutboxTask{
		Kind:          kind,
		Payload:       string(data),
		NextAttemptAt: time.Now(),
	}
	return db.Create(&task).Error
}

func (r *outboxRepository) Enqueue(ctx context.Context, kind string, payload interface{}) error {
	if err := enqueueTask(r.db.WithContext(ctx), kind, payload); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ClaimDue returns up to limit unfinished tasks whose next attempt time has
// passed, bumping their attempt counter and pushing next_attempt_at forward
// so a crashed worker does not leave them claimed forever.
func (r *outboxRepository) ClaimDue(ctx context.Context, limit int) ([]models.OutboxTask, error) {
	var tasks []models.OutboxTask
	now := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("done_at IS NULL AND next_attempt_at <= ?", now).
			Order("next_attempt_at").
			Limit(limit).
			Find(&tasks).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		ids := make([]uint, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}
		return tx.Model(&models.OutboxTask{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"attempts":        gorm.Expr("attempts + 1"),
				"next_attempt_at": now.Add(time.Minute),
			}).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tasks, nil
}

func (r *outboxRepository) MarkDone(ctx context.Context, id uint) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"done_at": &now, "last_error": ""}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uint, taskErr error, backoff time.Duration) error {
	err := r.db.WithContext(ctx).Model(&models.OutboxTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_error":      taskErr.Error(),
			"next_attempt_at": time.Now().Add(backoff),
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *outboxRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.OutboxTask{}).
		Where("done_at IS NULL").
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

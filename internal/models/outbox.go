package models

import "time"

// Outbox task kinds.
const (
	TaskDecrementUserPostCount = "decrement_user_post_count"
	TaskIncrementUserPostCount = "increment_user_post_count"
	TaskAdjustCirclePostCount  = "adjust_circle_post_count"
)

// OutboxTask is a deferred bookkeeping update enqueued inside the
// transaction of the primary operation it belongs to. A polling worker
// executes tasks with retry and backoff; a task that keeps failing stays
// visible here instead of disappearing into a log line.
type OutboxTask struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Kind          string     `gorm:"size:48;not null;index" json:"kind"`
	Payload       string     `gorm:"type:text;not null" json:"payload"`
	Attempts      int        `gorm:"not null;default:0" json:"attempts"`
	NextAttemptAt time.Time  `gorm:"not null;index" json:"next_attempt_at"`
	DoneAt        *time.Time `gorm:"index" json:"done_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

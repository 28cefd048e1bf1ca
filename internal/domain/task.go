package domain

import (
	"context"
	"time"
)

// MaxDescriptionLength is the hard limit on task description text.
const MaxDescriptionLength = 140

type Task struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Header      string    `db:"header" json:"header"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TaskRepository defines persistence operations for tasks. Update and Delete
// are scoped to the owning user: a task id that exists but belongs to someone
// else behaves as ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	ListByOwner(ctx context.Context, userID int64) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id, userID int64) error
}

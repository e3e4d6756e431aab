package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/followup-tasks/internal/models"
)

// ErrApplicationNotFound is returned when the referenced application cannot
// be read, whether it is missing or the lookup itself failed.
var ErrApplicationNotFound = errors.New("application not found")

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateForApplication copies the tenant of task.ApplicationID onto task
	// and inserts it as pending. Lookup and insert share one transaction.
	CreateForApplication(ctx context.Context, task *models.Task) error

	// ListDueBetween returns tasks that are not completed and have
	// from <= due_at < to, earliest first.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)

	// MarkCompleted sets status to completed and reports the rows matched.
	// Completing an already completed task is not an error.
	MarkCompleted(ctx context.Context, id string) (int64, error)
}

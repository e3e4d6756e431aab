package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/followup-tasks/internal/database"
	"github.com/yukikurage/followup-tasks/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTaskRepository creates a new TaskRepository. A positive timeout bounds
// every call; zero leaves calls bounded only by the caller's context.
func NewTaskRepository(db *gorm.DB, timeout time.Duration) *GormTaskRepository {
	return &GormTaskRepository{db: db, timeout: timeout}
}

func (r *GormTaskRepository) withContext(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		return r.db.WithContext(ctx), cancel
	}
	return r.db.WithContext(ctx), func() {}
}

// CreateForApplication resolves the tenant and inserts the task
func (r *GormTaskRepository) CreateForApplication(ctx context.Context, task *models.Task) error {
	db, cancel := r.withContext(ctx)
	defer cancel()

	return db.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Select("tenant_id").Where("id = ?", task.ApplicationID).Take(&app).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrApplicationNotFound, err)
		}

		task.TenantID = app.TenantID
		task.Status = models.TaskStatusPending
		task.DueAt = task.DueAt.UTC()

		return tx.Create(task).Error
	})
}

// ListDueBetween lists open tasks inside the due window
func (r *GormTaskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	db, cancel := r.withContext(ctx)
	defer cancel()

	tasks := []models.Task{}
	err := db.Model(&models.Task{}).
		Select("id", "type", "application_id", "due_at", "status").
		Scopes(database.NotCompleted(), database.DueBetween(from.UTC(), to.UTC())).
		Order("tasks.due_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// MarkCompleted marks a task as completed
func (r *GormTaskRepository) MarkCompleted(ctx context.Context, id string) (int64, error) {
	db, cancel := r.withContext(ctx)
	defer cancel()

	result := db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("status", models.TaskStatusCompleted)
	return result.RowsAffected, result.Error
}

package database

import (
	"time"

	"github.com/yukikurage/followup-tasks/internal/models"
	"gorm.io/gorm"
)

// NotCompleted excludes completed tasks.
func NotCompleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.status <> ?", models.TaskStatusCompleted)
	}
}

// DueBetween keeps tasks with from <= due_at < to.
func DueBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_at >= ? AND tasks.due_at < ?", from, to)
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskType string

const (
	TaskTypeCall   TaskType = "call"
	TaskTypeEmail  TaskType = "email"
	TaskTypeReview TaskType = "review"
)

// ValidTaskTypes returns the accepted task types in display order.
func ValidTaskTypes() []TaskType {
	return []TaskType{TaskTypeCall, TaskTypeEmail, TaskTypeReview}
}

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeCall, TaskTypeEmail, TaskTypeReview:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

type Task struct {
	ID            string     `gorm:"primarykey;type:varchar(64)" json:"id"`
	ApplicationID string     `gorm:"type:varchar(64);not null" json:"application_id"`
	TenantID      string     `gorm:"type:varchar(64);not null" json:"tenant_id"`
	Type          TaskType   `gorm:"type:varchar(20);not null" json:"type"`
	DueAt         time.Time  `gorm:"not null" json:"due_at"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the identifier and initial status on insert.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}

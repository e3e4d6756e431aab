package models

import "time"

// Application is the parent record a Task is attached to. It is owned by
// another part of the system; this module only reads it.
type Application struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	TenantID  string    `gorm:"type:varchar(64);not null" json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ApplicationID" json:"tasks,omitempty"`
}

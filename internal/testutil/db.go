// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/followup-tasks/internal/database"
	"github.com/yukikurage/followup-tasks/internal/logging"
	"github.com/yukikurage/followup-tasks/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory SQLite database. The pool is pinned
// to one connection so every query sees the same memory database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, logging.Discard()))
	return db
}

// NewMockDB returns a gorm handle speaking the postgres dialect over sqlmock.
func NewMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// CreateApplication inserts an application row.
func CreateApplication(t testing.TB, db *gorm.DB, id, tenantID string) *models.Application {
	t.Helper()
	app := &models.Application{ID: id, TenantID: tenantID}
	require.NoError(t, db.Create(app).Error)
	return app
}

// CreateTask inserts a task row directly, bypassing validation.
func CreateTask(t testing.TB, db *gorm.DB, applicationID string, taskType models.TaskType, dueAt time.Time, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		ApplicationID: applicationID,
		TenantID:      "T-" + applicationID,
		Type:          taskType,
		DueAt:         dueAt.UTC(),
		Status:        status,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// FindTask reads a task row by id.
func FindTask(t testing.TB, db *gorm.DB, id string) *models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, db.Where("id = ?", id).First(&task).Error)
	return &task
}

// CountTasks returns the number of rows in tasks.
func CountTasks(t testing.TB, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	return count
}

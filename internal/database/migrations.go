package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/followup-tasks/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables and the indexes the queries rely on.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(&models.Application{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// AddIndexes adds the indexes used by task creation and the today query.
// Existing indexes are left alone.
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Today query: status <> completed AND due_at in window
		{"tasks", "idx_tasks_status_due_at", "status, due_at"},
		{"tasks", "idx_tasks_application_id", "application_id"},
		{"tasks", "idx_tasks_tenant_id", "tenant_id"},
		{"applications", "idx_applications_tenant_id", "tenant_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

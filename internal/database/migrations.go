package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddPostgresIndexes adds performance-critical indexes to the database. It
// relies on pg_indexes and is only run when the postgres driver is selected.
func AddPostgresIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for per-user listing and alert scans
		{"tasks", "idx_tasks_user_id_due_date", "user_id, due_date"},
		{"tasks", "idx_tasks_done", "done"},
		{"tasks", "idx_tasks_alarm_enabled", "alarm_enabled"},

		// User lookup by name at login
		{"users", "idx_users_name", "name"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

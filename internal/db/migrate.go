package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		id           TEXT PRIMARY KEY,
		parent_id    TEXT REFERENCES resources(id),
		path         TEXT NOT NULL,
		type         TEXT NOT NULL DEFAULT 'item',
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','completed','archived')),
		metadata     TEXT NOT NULL DEFAULT '{}',
		scheduled_at TEXT,
		owner_id     TEXT NOT NULL DEFAULT '',
		creator_id   TEXT NOT NULL DEFAULT '',
		is_shared    INTEGER NOT NULL DEFAULT 0,
		is_deleted   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_parent ON resources(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_path ON resources(path)`,
	`CREATE INDEX IF NOT EXISTS idx_resources_owner ON resources(owner_id)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		owner_id     TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		locale       TEXT NOT NULL DEFAULT 'en-US',
		currency     TEXT NOT NULL DEFAULT 'USD',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
}

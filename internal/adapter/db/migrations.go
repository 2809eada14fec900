package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Migration is one schema change, written once per dialect.
type Migration struct {
	Version     int
	Description string
	MySQL       string
	SQLite      string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "create tasks table",
		MySQL:       migration001MySQL,
		SQLite:      migration001SQLite,
	},
}

const migration001MySQL = `
CREATE TABLE IF NOT EXISTS tasks (
  id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  title              VARCHAR(100) NOT NULL,
  description        VARCHAR(500) NULL,
  priority           VARCHAR(16) NOT NULL DEFAULT 'medium',
  status             VARCHAR(16) NOT NULL DEFAULT 'pending',
  category           VARCHAR(50) NULL,
  due_date           DATE NULL,
  estimated_duration INT UNSIGNED NULL,
  tags               TEXT NOT NULL,
  ai_suggestions     TEXT NULL,
  created_at         DATETIME(6) NOT NULL,
  updated_at         DATETIME(6) NOT NULL,
  INDEX idx_tasks_status (status),
  INDEX idx_tasks_priority (priority),
  INDEX idx_tasks_created_at (created_at)
) CHARACTER SET utf8mb4;
`

const migration001SQLite = `
CREATE TABLE IF NOT EXISTS tasks (
  id                 INTEGER PRIMARY KEY AUTOINCREMENT,
  title              TEXT NOT NULL,
  description        TEXT,
  priority           TEXT NOT NULL DEFAULT 'medium',
  status             TEXT NOT NULL DEFAULT 'pending',
  category           TEXT,
  due_date           DATE,
  estimated_duration INTEGER,
  tags               TEXT NOT NULL DEFAULT '[]',
  ai_suggestions     TEXT,
  created_at         DATETIME NOT NULL,
  updated_at         DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
`

const createSchemaVersionSQL = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL PRIMARY KEY, applied_at VARCHAR(64) NOT NULL)`

// Migrate applies pending migrations in order and records each version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, createSchemaVersionSQL); err != nil {
		return fmt.Errorf("creating schema_version: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, migration); err != nil {
			return fmt.Errorf("migration %d (%s): %w", migration.Version, migration.Description, err)
		}
		zap.L().Info("applied migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description),
		)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, migration Migration) error {
	script := migration.MySQL
	if db.DriverName() == DriverSQLite {
		script = migration.SQLite
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, statement := range splitStatements(script) {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		migration.Version, nowUTC().Format("2006-01-02T15:04:05.000000Z07:00"),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

package db

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"invite-app-go/pkg/logger"
)

//go:embed migrations
var migrationFiles embed.FS

// Migrate applies the embedded SQL files for the connection's dialect in
// filename order. Applied files are recorded in schema_migrations and skipped
// on later runs.
func Migrate(gormDB *gorm.DB, log logger.Logger) (int, error) {
	dialect := gormDB.Dialector.Name()
	dir := path.Join("migrations", dialect)

	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return 0, fmt.Errorf("no migrations for dialect %s: %w", dialect, err)
	}

	if err := ensureSchemaMigrations(gormDB); err != nil {
		return 0, fmt.Errorf("schema_migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	applied := 0
	for _, name := range files {
		done, err := isMigrationApplied(gormDB, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		contents, err := migrationFiles.ReadFile(path.Join(dir, name))
		if err != nil {
			return applied, err
		}

		err = gormDB.Transaction(func(tx *gorm.DB) error {
			for _, statement := range splitStatements(string(contents)) {
				if err := tx.Exec(statement).Error; err != nil {
					return err
				}
			}
			return recordMigration(tx, name)
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}

		log.Info("db: migration applied", "dialect", dialect, "file", name)
		applied++
	}

	return applied, nil
}

func ensureSchemaMigrations(gormDB *gorm.DB) error {
	return gormDB.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)
	`).Error
}

func isMigrationApplied(gormDB *gorm.DB, name string) (bool, error) {
	var count int64
	if err := gormDB.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordMigration(gormDB *gorm.DB, name string) error {
	return gormDB.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
}

// splitStatements breaks a migration file on semicolons. Migrations must not
// contain semicolons inside literals.
func splitStatements(contents string) []string {
	parts := strings.Split(contents, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		statement := strings.TrimSpace(part)
		if statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kdimtricp/videogrid/internal/database/migrations"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/pressly/goose/v3"
)

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

type gooseLogger struct {
	log logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (db *DB) dialect() string {
	if db.dbType == TypePostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (db *DB) withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: db.logger})
	if err := goose.SetDialect(db.dialect()); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return fn()
}

// Migrate applies every pending migration.
func (db *DB) Migrate(ctx context.Context) error {
	return db.withGoose(func() error {
		if err := goose.UpContext(ctx, db.conn, "."); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown(ctx context.Context) error {
	return db.withGoose(func() error {
		if err := goose.DownContext(ctx, db.conn, "."); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return nil
	})
}

// ResetMigrations rolls back every applied migration.
func (db *DB) ResetMigrations(ctx context.Context) error {
	return db.withGoose(func() error {
		if err := goose.ResetContext(ctx, db.conn, "."); err != nil {
			return fmt.Errorf("failed to reset migrations: %w", err)
		}
		return nil
	})
}

// MigrationStatus logs the applied/pending state of each migration.
func (db *DB) MigrationStatus(ctx context.Context) error {
	return db.withGoose(func() error {
		if err := goose.StatusContext(ctx, db.conn, "."); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		return nil
	})
}

// SchemaVersion returns the version of the latest applied migration.
func (db *DB) SchemaVersion(ctx context.Context) (int64, error) {
	var version int64
	err := db.withGoose(func() error {
		v, err := goose.GetDBVersionContext(ctx, db.conn)
		version = v
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

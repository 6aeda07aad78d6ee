package database

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/retry"
	_ "github.com/mattn/go-sqlite3"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DB holds the connection to the catalog database. For postgres both a
// pgx pool and a database/sql view of the same pool are kept: the pool
// serves queries, the *sql.DB serves goose.
type DB struct {
	conn   *sql.DB
	pool   *pgxpool.Pool
	dbType string
	logger logger.Logger
}

type Config struct {
	Type       string
	SQLitePath string
	// DSN is the postgres connection URL.
	DSN   string
	Retry retry.Config
}

// ConfigFrom maps the application config onto a database Config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Type:       cfg.Database.Type,
		SQLitePath: cfg.Database.Path,
		DSN:        cfg.DSN(),
		Retry:      retry.DefaultConfig(),
	}
}

// NewDB opens the database and waits for it to answer a ping.
func NewDB(ctx context.Context, config Config, log logger.Logger) (*DB, error) {
	log = log.WithComponent("Database")
	db := &DB{dbType: config.Type, logger: log}

	switch config.Type {
	case TypeSQLite:
		conn, err := sql.Open("sqlite3", config.SQLitePath+"?_foreign_keys=on&_busy_timeout=5000")
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// One writer at a time keeps sqlite from returning SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
		db.conn = conn
	case TypePostgres:
		pool, err := pgxpool.New(ctx, config.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		db.pool = pool
		db.conn = stdlib.OpenDBFromPool(pool)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if config.Retry.MaxRetries == 0 && config.Retry.InitialInterval == 0 {
		config.Retry = retry.DefaultConfig()
	}
	if err := retry.Do(ctx, log, "ping database", func() error {
		return db.conn.PingContext(ctx)
	}, config.Retry); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Connected to database", "type", config.Type)
	return db, nil
}

func (db *DB) Close() error {
	err := db.conn.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Pool is nil unless the database is postgres.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Type() string {
	return db.dbType
}

// Builder returns a squirrel builder using the placeholder style of the
// underlying database.
func (db *DB) Builder() sq.StatementBuilderType {
	if db.dbType == TypePostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

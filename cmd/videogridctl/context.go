package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/database"
	"github.com/kdimtricp/videogrid/internal/logger"
)

// commandContext opens the catalog lazily, once per invocation.
type commandContext struct {
	logLevel *string

	once     sync.Once
	cfg      *config.Config
	db       *database.DB
	client   *catalog.Client
	location *time.Location
	err      error
}

func newCommandContext(logLevel *string) *commandContext {
	return &commandContext{logLevel: logLevel}
}

func (c *commandContext) open(ctx context.Context) error {
	c.once.Do(func() {
		cfg, err := config.New()
		if err != nil {
			c.err = err
			return
		}
		loc, err := cfg.Location()
		if err != nil {
			c.err = err
			return
		}

		log := logger.New(logger.Opts{Env: cfg.App.Env, Level: *c.logLevel, Output: os.Stderr})
		db, err := database.NewDB(ctx, database.ConfigFrom(cfg), log)
		if err != nil {
			c.err = fmt.Errorf("open catalog: %w", err)
			return
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			c.err = err
			return
		}

		c.cfg = cfg
		c.db = db
		c.location = loc
		c.client = catalog.NewClient(database.NewVideoStore(db), log)
	})
	return c.err
}

func (c *commandContext) withCatalog(ctx context.Context, fn func(*catalog.Client) error) error {
	if err := c.open(ctx); err != nil {
		return err
	}
	defer c.close()
	return fn(c.client)
}

func (c *commandContext) close() {
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
}

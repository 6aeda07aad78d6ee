package database

import (
	"context"
	"time"

	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

const connectTimeout = 30 * time.Second

// New opens the database for the fx graph. Migrations run on start and the
// connection is closed on stop.
func New(opts Opts) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := NewDB(ctx, ConfigFrom(opts.Config), opts.Logger)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Migrate(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

var Module = fx.Module("database",
	fx.Provide(
		New,
		NewVideoStore,
	),
)

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/database"
	"github.com/kdimtricp/videogrid/internal/logger"
)

const usage = `Usage: migrate [command]

Commands:
  up       apply all pending migrations (default)
  down     roll back the latest migration
  status   show applied and pending migrations
  reset    roll back every migration
  version  print the current schema version

The database is configured from the same DB_* environment variables as the server.
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logr := logger.New(logger.Opts{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, database.ConfigFrom(cfg), logr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	switch command {
	case "up":
		err = db.Migrate(ctx)
	case "down":
		err = db.MigrateDown(ctx)
	case "status":
		err = db.MigrationStatus(ctx)
	case "reset":
		err = db.ResetMigrations(ctx)
	case "version":
		var version int64
		version, err = db.SchemaVersion(ctx)
		if err == nil {
			fmt.Println(version)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		db.Close()
		log.Fatalf("migrate %s: %v", command, err)
	}
}

package app

import (
	"github.com/kdimtricp/videogrid/internal/admin"
	"github.com/kdimtricp/videogrid/internal/api"
	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/database"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/notify"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Core is everything that talks to the catalog, without the HTTP server.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	database.Module,
	catalog.Module,
	notify.Module,
)

var App = fx.Options(
	Core,
	auth.Module,
	admin.Module,
	api.Module,
)

// WithLogger routes fx's own events through the application logger.
var WithLogger = fx.WithLogger(func(log logger.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: log.WithComponent("fx").Slog()}
})

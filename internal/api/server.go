package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kdimtricp/videogrid/internal/admin"
	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/database"
	"github.com/kdimtricp/videogrid/internal/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Catalog  *catalog.Client
	Admin    *admin.Controller
	Sessions *auth.Provider
	Limiter  *auth.LoginLimiter
	DB       *database.DB
}

func NewApp(opts Opts) (*App, error) {
	loc, err := opts.Config.Location()
	if err != nil {
		return nil, err
	}
	proxies, err := opts.Config.TrustedProxyPrefixes()
	if err != nil {
		return nil, err
	}
	return &App{
		Catalog:      opts.Catalog,
		Admin:        opts.Admin,
		Sessions:     opts.Sessions,
		Limiter:      opts.Limiter,
		DB:           opts.DB.Conn(),
		Location:     loc,
		CookieSecure: opts.Config.Admin.CookieSecure,
		Logger:       opts.Logger,

		TrustedProxies: proxies,
	}, nil
}

// NewServer builds the HTTP server and ties its listener to the fx
// lifecycle.
func NewServer(lc fx.Lifecycle, cfg *config.Config, app *App, log logger.Logger) *http.Server {
	log = log.WithComponent("Server")
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Cancelled on shutdown so open session streams end.
	baseCtx, cancel := context.WithCancel(context.Background())
	srv.BaseContext = func(net.Listener) context.Context { return baseCtx }
	srv.RegisterOnShutdown(cancel)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info(fmt.Sprintf("Starting server on %s", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

var Module = fx.Module("api",
	fx.Provide(NewApp, NewServer),
	fx.Invoke(func(*http.Server) {}),
)

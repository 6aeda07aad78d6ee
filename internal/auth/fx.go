package auth

import (
	"context"

	"github.com/kdimtricp/videogrid/internal/config"
	"github.com/kdimtricp/videogrid/internal/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(
		func(cfg *config.Config, log logger.Logger) *Provider {
			return NewProvider(Credentials{
				User:         cfg.Admin.User,
				PasswordHash: cfg.Admin.PasswordHash,
				SessionTTL:   cfg.Admin.SessionTTL,
			}, log)
		},
		func(cfg *config.Config) *LoginLimiter {
			return NewLoginLimiter(cfg.Admin.LoginPerMinute, cfg.Admin.LoginBurst)
		},
		func(cfg *config.Config, p *Provider, l *LoginLimiter, log logger.Logger) (*Sweeper, error) {
			return NewSweeper(p, l, cfg.Admin.SweepInterval, log)
		},
	),
	fx.Invoke(func(lc fx.Lifecycle, s *Sweeper) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				s.Start()
				return nil
			},
			OnStop: func(context.Context) error {
				return s.Shutdown()
			},
		})
	}),
)

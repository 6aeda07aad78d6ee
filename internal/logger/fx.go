package logger

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kdimtricp/videogrid/internal/config"
	"go.uber.org/fx"
)

var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) (*Impl, error) {
		sentryEnabled := cfg.App.SentryDSN != ""
		if sentryEnabled {
			err := sentry.Init(sentry.ClientOptions{
				Dsn:         cfg.App.SentryDSN,
				Environment: cfg.App.Env,
			})
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					sentry.Flush(2 * time.Second)
					return nil
				},
			})
		}

		return New(
			Opts{
				Env:    cfg.App.Env,
				Level:  cfg.App.LogLevel,
				Sentry: sentryEnabled,
			},
		), nil
	},
	fx.As(new(Logger)),
)

package admin

import (
	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/notify"
	"go.uber.org/fx"
)

var Module = fx.Module("admin",
	fx.Provide(
		func(c *catalog.Client, p *auth.Provider, n notify.Notifier, log logger.Logger) *Controller {
			return NewController(c, p, n, log)
		},
	),
)

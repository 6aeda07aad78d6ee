package catalog

import (
	"github.com/kdimtricp/videogrid/internal/logger"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog",
	fx.Provide(
		func(store Store, log logger.Logger) *Client {
			return NewClient(store, log)
		},
	),
)

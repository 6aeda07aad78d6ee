package main

import (
	"github.com/kdimtricp/videogrid/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.App, app.WithLogger).Run()
}

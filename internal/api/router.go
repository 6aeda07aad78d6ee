package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RealIPFrom(app.TrustedProxies))
	r.Use(RequestLogger(app.Logger))
	r.Use(ErrorBoundary(app.Logger))

	r.Get("/", app.GalleryHandler)
	r.Get("/ping", PingHandler)
	r.Get("/healthz", app.HealthHandler)
	r.Get("/api/videos", app.VideosJSONHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", app.AdminHandler)
		r.Post("/login", app.LoginHandler)
		r.Post("/logout", app.LogoutHandler)
		r.Post("/videos", app.AddVideoHandler)
		r.Post("/videos/{id}/delete", app.DeleteVideoHandler)
		r.Get("/session/events", app.SessionEventsHandler)
	})

	return r
}

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdimtricp/videogrid/internal/admin"
	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/grouping"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/models"
)

const SessionCookie = "videogrid_session"

// Catalog is the read side the public pages need.
type Catalog interface {
	FetchAll(ctx context.Context) ([]models.Video, error)
}

type Sessions interface {
	SignIn(ctx context.Context, user, password string) (auth.Session, error)
	Current(token string) (auth.Session, bool)
	ObserveSession(token string, fn func(active bool)) (unsubscribe func())
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type App struct {
	Catalog      Catalog
	Admin        *admin.Controller
	Sessions     Sessions
	Limiter      *auth.LoginLimiter
	DB           Pinger
	Location     *time.Location
	CookieSecure bool
	Logger       logger.Logger

	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if app.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.DB.PingContext(ctx); err != nil {
			app.Logger.Warn("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

type galleryPage struct {
	Groups     []grouping.Group
	FetchError string
}

func (app *App) fetchGroups(ctx context.Context) ([]grouping.Group, string) {
	videos, err := app.Catalog.FetchAll(ctx)
	if err != nil {
		var fetchErr *catalog.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr.UserMessage()
		}
		return nil, catalog.FetchMessage
	}
	return grouping.GroupByDay(videos, app.Location), ""
}

func (app *App) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	var page galleryPage
	page.Groups, page.FetchError = app.fetchGroups(r.Context())

	body, err := render("gallery.html", page)
	if err != nil {
		app.fail(w, r, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if page.FetchError == "" && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

type adminView struct {
	admin.Page
	LoginError string
}

func (app *App) AdminHandler(w http.ResponseWriter, r *http.Request) {
	page := app.Admin.View(r.Context(), sessionToken(r))
	app.renderAdmin(w, r, http.StatusOK, adminView{Page: page})
}

func (app *App) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if app.Limiter != nil && !app.Limiter.Allow(clientIP(r)) {
		app.Logger.Warn("Login rate limited", "ip", clientIP(r))
		app.renderAdmin(w, r, http.StatusTooManyRequests, adminView{LoginError: "Too many sign-in attempts. Try again in a minute."})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sess, err := app.Sessions.SignIn(r.Context(), r.PostForm.Get("user"), r.PostForm.Get("password"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		app.renderAdmin(w, r, status, adminView{LoginError: "Invalid user or password."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/admin",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   app.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *App) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Admin.Logout(r.Context(), sessionToken(r)); err != nil {
		app.Logger.Error("Error signing out", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   app.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *App) AddVideoHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	page := app.Admin.Submit(r.Context(), sessionToken(r), admin.FormFromValues(r.PostForm))
	if mutationDone(page) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	app.renderAdmin(w, r, adminStatus(page), adminView{Page: page})
}

func (app *App) DeleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		http.NotFound(w, r)
		return
	}

	page := app.Admin.Delete(r.Context(), sessionToken(r), videoID)
	if mutationDone(page) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	app.renderAdmin(w, r, adminStatus(page), adminView{Page: page})
}

// SessionEventsHandler streams "active" or "ended" for the caller's session
// and closes once it ends or the client goes away.
func (app *App) SessionEventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Holds only the latest state so the provider never blocks on us.
	states := make(chan bool, 1)
	unsubscribe := app.Sessions.ObserveSession(sessionToken(r), func(active bool) {
		for {
			select {
			case states <- active:
				return
			default:
				select {
				case <-states:
				default:
				}
			}
		}
	})
	defer unsubscribe()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			w.Write([]byte(": keep-alive\n\n"))
			flusher.Flush()
		case active := <-states:
			data := "ended"
			if active {
				data = "active"
			}
			w.Write([]byte("event: session\ndata: " + data + "\n\n"))
			flusher.Flush()
			if !active {
				return
			}
		}
	}
}

func (app *App) renderAdmin(w http.ResponseWriter, r *http.Request, status int, view adminView) {
	body, err := render("admin.html", view)
	if err != nil {
		app.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(body)
}

// fail is the render-time half of the error boundary.
func (app *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	app.Logger.Error("Error rendering page",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeFailure(w)
}

// mutationDone reports a successful add or delete. Those answer with a
// redirect so reloading the page does not repeat the POST; failures render
// in place to keep the form.
func mutationDone(page admin.Page) bool {
	return page.Authenticated() && !page.WriteFailed && !page.DeleteFailed && len(page.Missing) == 0
}

func adminStatus(page admin.Page) int {
	if !page.Authenticated() {
		return http.StatusUnauthorized
	}
	return http.StatusOK
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

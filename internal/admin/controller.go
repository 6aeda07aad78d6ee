package admin

import (
	"context"
	"errors"

	"github.com/kdimtricp/videogrid/internal/auth"
	"github.com/kdimtricp/videogrid/internal/catalog"
	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/models"
	"github.com/kdimtricp/videogrid/internal/notify"
)

//go:generate go run go.uber.org/mock/mockgen -source=controller.go -destination=mocks/mock.go
type Catalog interface {
	FetchAll(ctx context.Context) ([]models.Video, error)
	Add(ctx context.Context, draft models.Draft) (models.Video, error)
	Remove(ctx context.Context, id string) error
}

type Sessions interface {
	Current(token string) (auth.Session, bool)
	SignOut(ctx context.Context, token string) error
}

// Page is everything the admin template needs.
type Page struct {
	State   State
	User    string
	Form    Form
	Missing []string
	Videos  []models.Video

	// FetchError is the user-facing message when the list could not be read.
	FetchError   string
	WriteFailed  bool
	DeleteFailed bool
}

func (p Page) Authenticated() bool {
	return p.State == Authenticated
}

type Controller struct {
	catalog  Catalog
	sessions Sessions
	notifier notify.Notifier
	logger   logger.Logger
}

func NewController(c Catalog, s Sessions, n notify.Notifier, log logger.Logger) *Controller {
	if n == nil {
		n = notify.Noop{}
	}
	return &Controller{
		catalog:  c,
		sessions: s,
		notifier: n,
		logger:   log.WithComponent("AdminController"),
	}
}

func (c *Controller) page(token string) (Page, bool) {
	sess, ok := c.sessions.Current(token)
	p := Page{State: StateFor(sess, ok), User: sess.User}
	return p, ok
}

// View renders the login page for an unknown session and the form plus the
// full list otherwise.
func (c *Controller) View(ctx context.Context, token string) Page {
	p, ok := c.page(token)
	if !ok {
		return p
	}
	c.load(ctx, &p)
	return p
}

// Submit adds the form's draft, resets the form and re-fetches. A failed
// write keeps the form so the input can be retried.
func (c *Controller) Submit(ctx context.Context, token string, form Form) Page {
	p, ok := c.page(token)
	if !ok {
		return p
	}
	p.Form = form

	if missing := form.Missing(); len(missing) > 0 {
		p.Missing = missing
		c.load(ctx, &p)
		return p
	}

	video, err := c.catalog.Add(ctx, form.Draft())
	if err != nil {
		c.logger.Error("Add failed, keeping form", "error", err)
		p.WriteFailed = true
	} else {
		if err := c.notifier.VideoAdded(ctx, video); err != nil {
			c.logger.Warn("Notification failed", "error", err)
		}
		p.Form.Reset()
	}

	c.load(ctx, &p)
	return p
}

// Delete removes id and re-fetches.
func (c *Controller) Delete(ctx context.Context, token, id string) Page {
	p, ok := c.page(token)
	if !ok {
		return p
	}

	if err := c.catalog.Remove(ctx, id); err != nil {
		c.logger.Error("Delete failed", "error", err, "id", id)
		p.DeleteFailed = true
	}

	c.load(ctx, &p)
	return p
}

// Logout ends the session. The next View sees no session and so renders
// the login page.
func (c *Controller) Logout(ctx context.Context, token string) error {
	return c.sessions.SignOut(ctx, token)
}

func (c *Controller) load(ctx context.Context, p *Page) {
	videos, err := c.catalog.FetchAll(ctx)
	if err != nil {
		var fetchErr *catalog.FetchError
		if errors.As(err, &fetchErr) {
			p.FetchError = fetchErr.UserMessage()
		} else {
			p.FetchError = catalog.FetchMessage
		}
		p.Videos = nil
		return
	}
	p.Videos = videos
}

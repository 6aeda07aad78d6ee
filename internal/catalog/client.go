package catalog

import (
	"context"
	"time"

	"github.com/kdimtricp/videogrid/internal/logger"
	"github.com/kdimtricp/videogrid/internal/models"
)

// Client is the typed front of the catalog store. It never caches: every
// read goes to the store, and callers re-fetch after a mutation.
type Client struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

type Option func(*Client)

// WithClock replaces time.Now as the source of submission dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(store Store, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		store:  store,
		logger: log.WithComponent("CatalogClient"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll returns the whole catalog ordered by date, most recent first.
func (c *Client) FetchAll(ctx context.Context) ([]models.Video, error) {
	records, err := c.store.ListByDateDesc(ctx)
	if err != nil {
		c.logger.Error("Error fetching videos", "error", err)
		return nil, &FetchError{Err: err}
	}

	videos := make([]models.Video, 0, len(records))
	for _, rec := range records {
		videos = append(videos, toVideo(rec))
	}
	return videos, nil
}

// Add stores draft dated now and returns the stored video. The draft is
// expected to have passed Validate at the point where it was captured.
func (c *Client) Add(ctx context.Context, draft models.Draft) (models.Video, error) {
	d := draft.Normalize()
	rec := Record{
		Name:          d.Name,
		URL:           d.URL,
		Thumbnail:     d.Thumbnail,
		Category:      d.Category,
		Comment:       d.Comment,
		RecommendedBy: d.RecommendedBy,
		Date:          c.now().UTC(),
	}

	id, err := c.store.Insert(ctx, rec)
	if err != nil {
		c.logger.Error("Error adding video", "error", err, "name", d.Name)
		return models.Video{}, &WriteError{Err: err}
	}

	c.logger.Info("Video added", "id", id, "name", d.Name)
	return models.NewVideo(id, d, rec.Date), nil
}

// Remove deletes the video with the given id.
func (c *Client) Remove(ctx context.Context, id string) error {
	if err := c.store.DeleteByID(ctx, id); err != nil {
		c.logger.Error("Error deleting video", "error", err, "id", id)
		return &DeleteError{ID: id, Err: err}
	}

	c.logger.Info("Video deleted", "id", id)
	return nil
}

func toVideo(rec Record) models.Video {
	return models.NewVideo(rec.ID, models.Draft{
		Name:          rec.Name,
		URL:           rec.URL,
		Thumbnail:     rec.Thumbnail,
		Category:      rec.Category,
		Comment:       rec.Comment,
		RecommendedBy: rec.RecommendedBy,
	}, rec.Date)
}

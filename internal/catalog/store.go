package catalog

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("video not found")

// Record is the stored shape of a video.
type Record struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	URL           string    `db:"url"`
	Thumbnail     string    `db:"thumbnail"`
	Category      string    `db:"category"`
	Comment       string    `db:"comment"`
	RecommendedBy string    `db:"recommended_by"`
	Date          time.Time `db:"date"`
}

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock.go
type Store interface {
	// ListByDateDesc returns every record, most recent first.
	ListByDateDesc(ctx context.Context) ([]Record, error)

	// Insert stores rec and returns the id the store assigned to it.
	Insert(ctx context.Context, rec Record) (string, error)

	// DeleteByID removes the record with the given id. Returns ErrNotFound
	// if there is none.
	DeleteByID(ctx context.Context, id string) error
}

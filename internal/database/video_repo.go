package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	"github.com/kdimtricp/videogrid/internal/catalog"
)

const videosTable = "videos"

var videoColumns = []string{
	"id", "name", "url", "thumbnail", "category", "comment", "recommended_by", "date",
}

// VideoRepository stores videos through database/sql. It is the SQLite
// backend of catalog.Store.
type VideoRepository struct {
	db *DB
}

var _ catalog.Store = (*VideoRepository)(nil)

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// NewVideoStore picks the repository matching the database type.
func NewVideoStore(db *DB) catalog.Store {
	if db.Type() == TypePostgres {
		return NewPgxVideoRepository(db)
	}
	return NewVideoRepository(db)
}

func (r *VideoRepository) ListByDateDesc(ctx context.Context) ([]catalog.Record, error) {
	query, args, err := r.db.Builder().
		Select(videoColumns...).
		From(videosTable).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	var records []catalog.Record
	if err := sqlscan.Select(ctx, r.db.Conn(), &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return records, nil
}

func (r *VideoRepository) Insert(ctx context.Context, rec catalog.Record) (string, error) {
	rec.ID = uuid.New().String()
	rec.Date = rec.Date.UTC()

	query, args, err := insertQuery(r.db, rec)
	if err != nil {
		return "", err
	}
	if _, err := r.db.Conn().ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert video: %w", err)
	}
	return rec.ID, nil
}

func (r *VideoRepository) DeleteByID(ctx context.Context, id string) error {
	query, args, err := deleteQuery(r.db, id)
	if err != nil {
		return err
	}

	result, err := r.db.Conn().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func insertQuery(db *DB, rec catalog.Record) (string, []interface{}, error) {
	query, args, err := db.Builder().
		Insert(videosTable).
		Columns(videoColumns...).
		Values(rec.ID, rec.Name, rec.URL, rec.Thumbnail, rec.Category, rec.Comment, rec.RecommendedBy, rec.Date).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build insert query: %w", err)
	}
	return query, args, nil
}

func deleteQuery(db *DB, id string) (string, []interface{}, error) {
	query, args, err := db.Builder().
		Delete(videosTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build delete query: %w", err)
	}
	return query, args, nil
}

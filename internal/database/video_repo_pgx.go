package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kdimtricp/videogrid/internal/catalog"
)

// PgxVideoRepository is the PostgreSQL backend of catalog.Store. Queries go
// straight to the pgx pool.
type PgxVideoRepository struct {
	db *DB
}

var _ catalog.Store = (*PgxVideoRepository)(nil)

func NewPgxVideoRepository(db *DB) *PgxVideoRepository {
	return &PgxVideoRepository{db: db}
}

func (r *PgxVideoRepository) ListByDateDesc(ctx context.Context) ([]catalog.Record, error) {
	query, args, err := r.db.Builder().
		Select(videoColumns...).
		From(videosTable).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	var records []catalog.Record
	if err := pgxscan.Select(ctx, r.db.Pool(), &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", pgError(err))
	}
	return records, nil
}

func (r *PgxVideoRepository) Insert(ctx context.Context, rec catalog.Record) (string, error) {
	rec.ID = uuid.New().String()
	rec.Date = rec.Date.UTC()

	query, args, err := insertQuery(r.db, rec)
	if err != nil {
		return "", err
	}
	if _, err := r.db.Pool().Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert video: %w", pgError(err))
	}
	return rec.ID, nil
}

func (r *PgxVideoRepository) DeleteByID(ctx context.Context, id string) error {
	query, args, err := deleteQuery(r.db, id)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool().Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", pgError(err))
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// pgError adds the SQLSTATE code to server-side errors.
func pgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (SQLSTATE %s): %w", pgErr.Message, pgErr.Code, err)
	}
	return err
}

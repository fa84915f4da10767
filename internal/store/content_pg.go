package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
)

// PGContentRepository handles content persistence on Postgres.
type PGContentRepository struct {
	db *sql.DB
}

func NewPGContentRepository(db *sql.DB) *PGContentRepository {
	return &PGContentRepository{db: db}
}

const contentColumns = `id, user_id, type, title, content, status, created_at, updated_at`

func scanContentItem(row interface{ Scan(...any) error }) (types.ContentItem, error) {
	var item types.ContentItem
	var status string
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Type,
		&item.Title,
		&item.Content,
		&status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ContentItem{}, ErrNotFound
		}
		return types.ContentItem{}, err
	}
	item.Status = types.ContentStatus(status)
	return item, nil
}

func (r *PGContentRepository) Create(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `
		INSERT INTO content_items (id, user_id, type, title, content, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.Type,
		item.Title,
		item.Content,
		string(item.Status),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return types.ContentItem{}, err
	}
	return item, nil
}

func (r *PGContentRepository) GetByID(ctx context.Context, id string) (types.ContentItem, error) {
	const query = `
		SELECT ` + contentColumns + `
		FROM content_items
		WHERE id = $1`
	return scanContentItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *PGContentRepository) ListByUser(ctx context.Context, userID string) ([]types.ContentItem, error) {
	const query = `
		SELECT ` + contentColumns + `
		FROM content_items
		WHERE user_id = $1
		ORDER BY created_at`
	return r.queryContentItems(ctx, query, userID)
}

func (r *PGContentRepository) ListAll(ctx context.Context) ([]types.ContentItem, error) {
	const query = `
		SELECT ` + contentColumns + `
		FROM content_items
		ORDER BY created_at`
	return r.queryContentItems(ctx, query)
}

func (r *PGContentRepository) queryContentItems(ctx context.Context, query string, args ...any) ([]types.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]types.ContentItem, 0)
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

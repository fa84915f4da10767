package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
)

const contentFile = "content.json"

// FileContentRepository persists content items in a whole-file JSON
// collection.
type FileContentRepository struct {
	col *collection[types.ContentItem]
}

func NewFileContentRepository(dataDir string) (*FileContentRepository, error) {
	col, err := newCollection[types.ContentItem](filepath.Join(dataDir, contentFile))
	if err != nil {
		return nil, err
	}
	return &FileContentRepository{col: col}, nil
}

func (r *FileContentRepository) Create(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := r.col.Mutate(func(items []types.ContentItem) ([]types.ContentItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return types.ContentItem{}, err
	}
	return item, nil
}

func (r *FileContentRepository) GetByID(ctx context.Context, id string) (types.ContentItem, error) {
	items, err := r.col.List()
	if err != nil {
		return types.ContentItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return types.ContentItem{}, ErrNotFound
}

func (r *FileContentRepository) ListByUser(ctx context.Context, userID string) ([]types.ContentItem, error) {
	items, err := r.col.List()
	if err != nil {
		return nil, err
	}
	owned := make([]types.ContentItem, 0)
	for _, item := range items {
		if item.UserID == userID {
			owned = append(owned, item)
		}
	}
	return owned, nil
}

func (r *FileContentRepository) ListAll(ctx context.Context) ([]types.ContentItem, error) {
	return r.col.List()
}

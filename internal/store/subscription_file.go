package store

import (
	"context"
	"path/filepath"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
)

const subscriptionsFile = "subscriptions.json"

// FileSubscriptionRepository persists subscriptions in a whole-file JSON
// collection.
type FileSubscriptionRepository struct {
	col *collection[types.Subscription]
}

func NewFileSubscriptionRepository(dataDir string) (*FileSubscriptionRepository, error) {
	col, err := newCollection[types.Subscription](filepath.Join(dataDir, subscriptionsFile))
	if err != nil {
		return nil, err
	}
	return &FileSubscriptionRepository{col: col}, nil
}

// Create inserts the subscription and cancels any previously active
// subscription for the same account in the same mutation, so at most one
// active subscription exists per account.
func (r *FileSubscriptionRepository) Create(ctx context.Context, sub types.Subscription) (types.Subscription, error) {
	sub.ID = uuid.NewString()

	err := r.col.Mutate(func(subs []types.Subscription) ([]types.Subscription, error) {
		for i, existing := range subs {
			if existing.UserID == sub.UserID && existing.Status == types.SubscriptionActive {
				subs[i].Status = types.SubscriptionCancelled
			}
		}
		return append(subs, sub), nil
	})
	if err != nil {
		return types.Subscription{}, err
	}
	return sub, nil
}

func (r *FileSubscriptionRepository) GetActiveByUser(ctx context.Context, userID string) (types.Subscription, error) {
	subs, err := r.col.List()
	if err != nil {
		return types.Subscription{}, err
	}
	for _, sub := range subs {
		if sub.UserID == userID && sub.Status == types.SubscriptionActive {
			return sub, nil
		}
	}
	return types.Subscription{}, ErrNotFound
}

func (r *FileSubscriptionRepository) List(ctx context.Context) ([]types.Subscription, error) {
	return r.col.List()
}

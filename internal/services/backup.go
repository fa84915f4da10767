package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/copyforge/apiserver/internal/storage"
)

// BackupService writes point-in-time JSON snapshots of the three
// collections to object storage.
type BackupService struct {
	storage       *storage.Storage
	accounts      AccountRepository
	content       ContentRepository
	subscriptions SubscriptionRepository
}

func NewBackupService(
	store *storage.Storage,
	accounts AccountRepository,
	content ContentRepository,
	subscriptions SubscriptionRepository,
) *BackupService {
	return &BackupService{
		storage:       store,
		accounts:      accounts,
		content:       content,
		subscriptions: subscriptions,
	}
}

// Run snapshots all collections under a timestamped prefix and returns the
// prefix.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("backups/%s", time.Now().UTC().Format("20060102T150405Z"))

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return "", err
	}
	if err := s.putJSON(ctx, prefix+"/accounts.json", accounts); err != nil {
		return "", err
	}

	items, err := s.content.ListAll(ctx)
	if err != nil {
		return "", err
	}
	if err := s.putJSON(ctx, prefix+"/content.json", items); err != nil {
		return "", err
	}

	subs, err := s.subscriptions.List(ctx)
	if err != nil {
		return "", err
	}
	if err := s.putJSON(ctx, prefix+"/subscriptions.json", subs); err != nil {
		return "", err
	}

	return prefix, nil
}

func (s *BackupService) putJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json")
}

package services

import (
	"testing"
	"time"

	"github.com/copyforge/apiserver/internal/auth"
	"github.com/copyforge/apiserver/internal/generator"
	"github.com/copyforge/apiserver/internal/store"
)

// testEnv wires the services over file-backed repositories in a temp dir,
// the way the server does for the default backend.
type testEnv struct {
	accounts      *AccountService
	content       *ContentService
	subscriptions *SubscriptionService
	stats         *StatsService
	creds         *auth.Credentials
	accountRepo   *store.FileAccountRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	accountRepo, err := store.NewFileAccountRepository(dir)
	if err != nil {
		t.Fatalf("account repository: %v", err)
	}
	contentRepo, err := store.NewFileContentRepository(dir)
	if err != nil {
		t.Fatalf("content repository: %v", err)
	}
	subscriptionRepo, err := store.NewFileSubscriptionRepository(dir)
	if err != nil {
		t.Fatalf("subscription repository: %v", err)
	}

	creds := auth.NewCredentials("test-secret", auth.MinBcryptCost, time.Hour)
	return &testEnv{
		accounts:      NewAccountService(accountRepo, creds, nil),
		content:       NewContentService(contentRepo, accountRepo, generator.NewTemplateGenerator(), nil),
		subscriptions: NewSubscriptionService(subscriptionRepo, accountRepo, nil),
		stats:         NewStatsService(accountRepo, contentRepo, subscriptionRepo),
		creds:         creds,
		accountRepo:   accountRepo,
	}
}

func registerParams(email string) RegisterParams {
	return RegisterParams{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     email,
		Password:  "Passw0rd!",
	}
}

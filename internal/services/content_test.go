package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/copyforge/apiserver/internal/store"
	"github.com/copyforge/apiserver/types"
)

func TestCreateContentConsumesQuota(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// The free tier allows exactly 10 generations.
	for i := 1; i <= 10; i++ {
		_, err := env.content.Create(ctx, account.ID, CreateContentParams{Title: "Post", Content: "body"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err = env.content.Create(ctx, account.ID, CreateContentParams{Title: "Post", Content: "body"})
	var quotaErr *store.QuotaExceededError
	if !errors.As(err, &quotaErr) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if quotaErr.Used != 10 || quotaErr.Limit != 10 {
		t.Fatalf("quota error = %+v, want used 10 limit 10", quotaErr)
	}

	got, err := env.accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.GenerationsUsed != 10 {
		t.Fatalf("generationsUsed = %d after rejected create, want 10", got.GenerationsUsed)
	}

	items, err := env.content.ListByOwner(ctx, account.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("stored %d items, want 10", len(items))
	}
}

func TestCreateContentUnknownUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.content.Create(ctx, "no-such-user", CreateContentParams{Title: "Post", Content: "body"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateContentInvalidStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = env.content.Create(ctx, account.ID, CreateContentParams{Title: "Post", Status: "archived"})
	if !errors.Is(err, ErrInvalidContentStatus) {
		t.Fatalf("expected ErrInvalidContentStatus, got %v", err)
	}

	// Validation failures must not charge the quota.
	got, err := env.accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.GenerationsUsed != 0 {
		t.Fatalf("generationsUsed = %d after rejected status, want 0", got.GenerationsUsed)
	}
}

func TestCreateContentDefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	item, err := env.content.Create(ctx, account.ID, CreateContentParams{Title: "Post", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != types.ContentStatusDraft {
		t.Fatalf("status = %q, want draft", item.Status)
	}
}

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	item, err := env.content.Generate(ctx, account.ID, GenerateContentParams{
		Type:   "blog-post",
		Prompt: "our new analytics dashboard",
		Tone:   "professional",
		Length: "medium",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if item.Content == "" {
		t.Fatalf("generated item has empty content")
	}
	if !strings.Contains(item.Content, "our new analytics dashboard") {
		t.Fatalf("generated content does not mention the prompt: %q", item.Content)
	}
	// Without an explicit title, the prompt becomes the title.
	if item.Title != "our new analytics dashboard" {
		t.Fatalf("title = %q", item.Title)
	}

	got, err := env.accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.GenerationsUsed != 1 {
		t.Fatalf("generationsUsed = %d after generate, want 1", got.GenerationsUsed)
	}
}

func TestGenerateContentEmptyPrompt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := env.content.Generate(ctx, account.ID, GenerateContentParams{Prompt: " "}); err == nil {
		t.Fatalf("expected error for empty prompt")
	}

	got, err := env.accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.GenerationsUsed != 0 {
		t.Fatalf("failed generation charged the quota: used = %d", got.GenerationsUsed)
	}
}

func TestListByOwnerScoped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ann, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register ann: %v", err)
	}
	bob, _, err := env.accounts.Register(ctx, registerParams("bob@x.com"))
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if _, err := env.content.Create(ctx, ann.ID, CreateContentParams{Title: "Ann's post", Content: "body"}); err != nil {
		t.Fatalf("create for ann: %v", err)
	}
	if _, err := env.content.Create(ctx, bob.ID, CreateContentParams{Title: "Bob's post", Content: "body"}); err != nil {
		t.Fatalf("create for bob: %v", err)
	}

	items, err := env.content.ListByOwner(ctx, ann.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Ann's post" {
		t.Fatalf("owner listing leaked items: %+v", items)
	}
}

func TestUnlimitedPlanNeverBlocks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, RegisterParams{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Password:  "Passw0rd!",
		Plan:      types.PlanEnterprise,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.GenerationsLimit != types.UnlimitedGenerations {
		t.Fatalf("limit = %d, want unlimited", account.GenerationsLimit)
	}

	for i := 0; i < 100; i++ {
		if _, err := env.content.Create(ctx, account.ID, CreateContentParams{Title: "Post", Content: "body"}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	got, err := env.accounts.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.GenerationsUsed != 100 {
		t.Fatalf("generationsUsed = %d, want 100", got.GenerationsUsed)
	}
}

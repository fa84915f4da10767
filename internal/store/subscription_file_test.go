package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copyforge/apiserver/types"
)

func testSubscription(userID string, plan types.Plan) types.Subscription {
	now := time.Now().UTC()
	return types.Subscription{
		UserID:          userID,
		Plan:            plan,
		Status:          types.SubscriptionActive,
		BillingPeriod:   types.BillingMonthly,
		StartDate:       now,
		NextBillingDate: types.BillingMonthly.NextBillingDate(now),
	}
}

func TestSubscriptionCreateSupersedesActive(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileSubscriptionRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	first, err := repo.Create(ctx, testSubscription("user-1", types.PlanStarter))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := repo.Create(ctx, testSubscription("user-1", types.PlanProfessional))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	active, err := repo.GetActiveByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active subscription is %q, want %q", active.ID, second.ID)
	}

	subs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
	for _, sub := range subs {
		if sub.ID == first.ID && sub.Status != types.SubscriptionCancelled {
			t.Fatalf("superseded subscription status = %q, want cancelled", sub.Status)
		}
	}
}

func TestSubscriptionActivePerUser(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileSubscriptionRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	if _, err := repo.Create(ctx, testSubscription("user-1", types.PlanStarter)); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetActiveByUser(ctx, "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

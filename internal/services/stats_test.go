package services

import (
	"context"
	"testing"

	"github.com/copyforge/apiserver/types"
)

func TestStatsOverview(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ann, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register ann: %v", err)
	}
	if _, _, err := env.accounts.Register(ctx, registerParams("bob@x.com")); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if _, err := env.subscriptions.Create(ctx, ann.ID, CreateSubscriptionParams{Plan: types.PlanProfessional, BillingPeriod: types.BillingMonthly}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := env.content.Create(ctx, ann.ID, CreateContentParams{Title: "Post", Content: "body"}); err != nil {
		t.Fatalf("create content: %v", err)
	}

	stats, err := env.stats.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Fatalf("totalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalContent != 1 {
		t.Fatalf("totalContent = %d, want 1", stats.TotalContent)
	}
	if stats.ActiveSubscriptions != 1 {
		t.Fatalf("activeSubscriptions = %d, want 1", stats.ActiveSubscriptions)
	}
	if stats.UsersByPlan[types.PlanProfessional] != 1 || stats.UsersByPlan[types.PlanFree] != 1 {
		t.Fatalf("usersByPlan = %+v", stats.UsersByPlan)
	}
}

func TestStatsOverviewEmpty(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.stats.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.TotalUsers != 0 || stats.TotalContent != 0 || stats.ActiveSubscriptions != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

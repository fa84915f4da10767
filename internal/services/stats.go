package services

import (
	"context"

	"github.com/copyforge/apiserver/types"
)

// Stats is the administrative usage overview, computed on demand over all
// three collections.
type Stats struct {
	TotalUsers          int                `json:"totalUsers"`
	TotalContent        int                `json:"totalContent"`
	ActiveSubscriptions int                `json:"activeSubscriptions"`
	UsersByPlan         map[types.Plan]int `json:"usersByPlan"`
}

// StatsService aggregates across the account, content, and subscription
// repositories.
type StatsService struct {
	accounts      AccountRepository
	content       ContentRepository
	subscriptions SubscriptionRepository
}

func NewStatsService(accounts AccountRepository, content ContentRepository, subscriptions SubscriptionRepository) *StatsService {
	return &StatsService{
		accounts:      accounts,
		content:       content,
		subscriptions: subscriptions,
	}
}

// Overview computes the current totals. No caching.
func (s *StatsService) Overview(ctx context.Context) (Stats, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	items, err := s.content.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	subs, err := s.subscriptions.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalUsers:   len(accounts),
		TotalContent: len(items),
		UsersByPlan:  make(map[types.Plan]int),
	}
	for _, account := range accounts {
		stats.UsersByPlan[account.Plan]++
	}
	for _, sub := range subs {
		if sub.Status == types.SubscriptionActive {
			stats.ActiveSubscriptions++
		}
	}
	return stats, nil
}

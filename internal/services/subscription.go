package services

import (
	"context"
	"errors"
	"time"

	"github.com/copyforge/apiserver/internal/events"
	"github.com/copyforge/apiserver/types"
)

// ErrInvalidPlan is returned when a subscription names a non-purchasable
// tier.
var ErrInvalidPlan = errors.New("plan is not purchasable")

// ErrInvalidBillingPeriod is returned for an unknown billing period.
var ErrInvalidBillingPeriod = errors.New("invalid billing period")

// SubscriptionRepository defines persistence operations for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub types.Subscription) (types.Subscription, error)
	GetActiveByUser(ctx context.Context, userID string) (types.Subscription, error)
	List(ctx context.Context) ([]types.Subscription, error)
}

// CreateSubscriptionParams are the inputs for subscription creation.
type CreateSubscriptionParams struct {
	Plan          types.Plan
	BillingPeriod types.BillingPeriod
	Amount        float64
	PaymentMethod string
}

// SubscriptionService encapsulates billing use-cases. Creating a
// subscription is the only way an account's plan and quota change after
// registration.
type SubscriptionService struct {
	repo      SubscriptionRepository
	accounts  AccountRepository
	publisher *events.Publisher
}

func NewSubscriptionService(repo SubscriptionRepository, accounts AccountRepository, publisher *events.Publisher) *SubscriptionService {
	return &SubscriptionService{repo: repo, accounts: accounts, publisher: publisher}
}

// Create stores an active subscription, supersedes any prior active one,
// and synchronizes the owning account's plan and generation limit.
func (s *SubscriptionService) Create(ctx context.Context, userID string, params CreateSubscriptionParams) (types.Subscription, error) {
	if !params.Plan.Paid() {
		return types.Subscription{}, ErrInvalidPlan
	}
	if !params.BillingPeriod.Valid() {
		return types.Subscription{}, ErrInvalidBillingPeriod
	}

	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return types.Subscription{}, err
	}

	start := time.Now().UTC()
	sub, err := s.repo.Create(ctx, types.Subscription{
		UserID:          userID,
		Plan:            params.Plan,
		BillingPeriod:   params.BillingPeriod,
		Amount:          params.Amount,
		Status:          types.SubscriptionActive,
		StartDate:       start,
		NextBillingDate: params.BillingPeriod.NextBillingDate(start),
		PaymentMethod:   params.PaymentMethod,
	})
	if err != nil {
		return types.Subscription{}, err
	}

	account.Plan = params.Plan
	account.GenerationsLimit = params.Plan.GenerationLimit()
	if _, err := s.accounts.Update(ctx, account); err != nil {
		return types.Subscription{}, err
	}

	s.publisher.Emit(ctx, events.ChannelSubscriptions, events.TypeSubscriptionChanged, sub)
	return sub, nil
}

// GetActiveForUser returns the account's active subscription, if any.
func (s *SubscriptionService) GetActiveForUser(ctx context.Context, userID string) (types.Subscription, error) {
	return s.repo.GetActiveByUser(ctx, userID)
}

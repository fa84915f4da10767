package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
)

// PGSubscriptionRepository handles subscription persistence on Postgres.
type PGSubscriptionRepository struct {
	db *sql.DB
}

func NewPGSubscriptionRepository(db *sql.DB) *PGSubscriptionRepository {
	return &PGSubscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, plan, billing_period, amount, status, start_date, next_billing_date, payment_method`

func scanSubscription(row interface{ Scan(...any) error }) (types.Subscription, error) {
	var sub types.Subscription
	var plan, period, status string
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&plan,
		&period,
		&sub.Amount,
		&status,
		&sub.StartDate,
		&sub.NextBillingDate,
		&sub.PaymentMethod,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Subscription{}, ErrNotFound
		}
		return types.Subscription{}, err
	}
	sub.Plan = types.Plan(plan)
	sub.BillingPeriod = types.BillingPeriod(period)
	sub.Status = types.SubscriptionStatus(status)
	return sub, nil
}

// Create inserts the subscription and cancels any previously active
// subscription for the same account inside one transaction.
func (r *PGSubscriptionRepository) Create(ctx context.Context, sub types.Subscription) (types.Subscription, error) {
	sub.ID = uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Subscription{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const cancelQuery = `
		UPDATE subscriptions
		SET status = $1
		WHERE user_id = $2 AND status = $3`
	if _, err := tx.ExecContext(
		ctx,
		cancelQuery,
		string(types.SubscriptionCancelled),
		sub.UserID,
		string(types.SubscriptionActive),
	); err != nil {
		return types.Subscription{}, err
	}

	const insertQuery = `
		INSERT INTO subscriptions (id, user_id, plan, billing_period, amount, status, start_date, next_billing_date, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(
		ctx,
		insertQuery,
		sub.ID,
		sub.UserID,
		string(sub.Plan),
		string(sub.BillingPeriod),
		sub.Amount,
		string(sub.Status),
		sub.StartDate,
		sub.NextBillingDate,
		sub.PaymentMethod,
	); err != nil {
		return types.Subscription{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Subscription{}, err
	}
	return sub, nil
}

func (r *PGSubscriptionRepository) GetActiveByUser(ctx context.Context, userID string) (types.Subscription, error) {
	const query = `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1 AND status = $2
		ORDER BY start_date DESC
		LIMIT 1`
	return scanSubscription(r.db.QueryRowContext(ctx, query, userID, string(types.SubscriptionActive)))
}

func (r *PGSubscriptionRepository) List(ctx context.Context) ([]types.Subscription, error) {
	const query = `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]types.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

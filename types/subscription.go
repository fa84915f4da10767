package types

import "time"

// BillingPeriod is the billing cadence of a subscription.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// Billing-date arithmetic is fixed-day, not calendar-month-aware.
const (
	monthlyPeriod = 30 * 24 * time.Hour
	yearlyPeriod  = 365 * 24 * time.Hour
)

// NextBillingDate computes the first billing date after start for the
// period.
func (p BillingPeriod) NextBillingDate(start time.Time) time.Time {
	if p == BillingYearly {
		return start.Add(yearlyPeriod)
	}
	return start.Add(monthlyPeriod)
}

// Valid reports whether p is a known billing period.
func (p BillingPeriod) Valid() bool {
	return p == BillingMonthly || p == BillingYearly
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription is a billing record for an account. Creating one is the only
// way an account's plan and quota change after registration.
type Subscription struct {
	ID            string             `json:"id" db:"id"`
	UserID        string             `json:"userId" db:"user_id"`
	Plan          Plan               `json:"plan" db:"plan"`
	BillingPeriod BillingPeriod      `json:"billingPeriod" db:"billing_period"`
	Amount        float64            `json:"amount" db:"amount"`
	Status        SubscriptionStatus `json:"status" db:"status"`

	StartDate       time.Time `json:"startDate" db:"start_date"`
	NextBillingDate time.Time `json:"nextBillingDate" db:"next_billing_date"`

	// PaymentMethod is an opaque reference supplied by the payment form.
	PaymentMethod string `json:"paymentMethod,omitempty" db:"payment_method"`
}

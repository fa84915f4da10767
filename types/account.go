package types

import "time"

// Account represents a registered user/tenant in the system.
// It contains identity, credentials, plan, and quota metadata.
type Account struct {
	// ID is the unique identifier of the account, generated at creation.
	ID string `json:"id" db:"id"`

	// FirstName is the user's given name as shown in the dashboard.
	FirstName string `json:"firstName" db:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"lastName" db:"last_name"`

	// Email is the user's login key. Unique across accounts, stored
	// lower-cased.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// Company is an optional organization name.
	Company string `json:"company,omitempty" db:"company"`

	// Plan is the account's subscription tier.
	Plan Plan `json:"plan" db:"plan"`

	// GenerationsUsed counts content creations charged against the quota.
	GenerationsUsed int `json:"generationsUsed" db:"generations_used"`

	// GenerationsLimit is the plan-determined quota ceiling.
	// UnlimitedGenerations (-1) means no ceiling.
	GenerationsLimit int `json:"generationsLimit" db:"generations_limit"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// LastLogin is the timestamp of the most recent successful login.
	LastLogin time.Time `json:"lastLogin" db:"last_login"`
}

// Sanitized returns a copy of the account safe to hand past the service
// boundary.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}

// QuotaRemaining reports whether the account may still create content.
func (a Account) QuotaRemaining() bool {
	if a.GenerationsLimit == UnlimitedGenerations {
		return true
	}
	return a.GenerationsUsed < a.GenerationsLimit
}

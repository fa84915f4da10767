package services

import (
	"context"
	"errors"
	"testing"

	"github.com/copyforge/apiserver/internal/store"
	"github.com/copyforge/apiserver/types"
)

func TestRegisterDefaultsToFreePlan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, token, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if account.Plan != types.PlanFree {
		t.Fatalf("plan = %q, want free", account.Plan)
	}
	if account.GenerationsUsed != 0 {
		t.Fatalf("generationsUsed = %d, want 0", account.GenerationsUsed)
	}
	if account.GenerationsLimit != 10 {
		t.Fatalf("generationsLimit = %d, want 10", account.GenerationsLimit)
	}
	if account.PasswordHash != "" {
		t.Fatalf("password hash leaked past the service boundary")
	}

	subject, err := env.creds.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject.ID != account.ID || subject.Email != account.Email {
		t.Fatalf("token subject %+v does not match account %q/%q", subject, account.ID, account.Email)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("  Ann@X.com "))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Email != "ann@x.com" {
		t.Fatalf("email = %q, want ann@x.com", account.Email)
	}

	// Login is case-insensitive on the email.
	if _, _, err := env.accounts.Login(ctx, "ANN@x.COM", "Passw0rd!"); err != nil {
		t.Fatalf("login with differently-cased email: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, _, err := env.accounts.Register(ctx, registerParams("ann@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := env.accounts.Register(ctx, registerParams("Ann@X.com"))
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	accounts, err := env.accountRepo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("rejected registration left %d accounts", len(accounts))
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, _, err := env.accounts.Register(ctx, registerParams("ann@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	// A one-character difference in the password must fail.
	if _, _, err := env.accounts.Login(ctx, "ann@x.com", "Passw0rd?"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown email yields the same error as a wrong password.
	if _, _, err := env.accounts.Login(ctx, "nobody@x.com", "Passw0rd!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	registered, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	loggedIn, token, err := env.accounts.Login(ctx, "ann@x.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if loggedIn.LastLogin.Before(registered.LastLogin) {
		t.Fatalf("lastLogin went backwards: %v -> %v", registered.LastLogin, loggedIn.LastLogin)
	}
}

func TestUpdateAccountPartial(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	account, _, err := env.accounts.Register(ctx, registerParams("ann@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	company := "Copyforge"
	updated, err := env.accounts.Update(ctx, account.ID, UpdateAccountParams{Company: &company})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Company != "Copyforge" {
		t.Fatalf("company = %q", updated.Company)
	}
	// Untouched fields survive the merge.
	if updated.FirstName != "Ann" || updated.Email != "ann@x.com" {
		t.Fatalf("merge clobbered fields: %+v", updated)
	}
}

func TestUpdateAccountDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, _, err := env.accounts.Register(ctx, registerParams("ann@x.com")); err != nil {
		t.Fatalf("register ann: %v", err)
	}
	bob, _, err := env.accounts.Register(ctx, registerParams("bob@x.com"))
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	email := "Ann@X.com"
	if _, err := env.accounts.Update(ctx, bob.ID, UpdateAccountParams{Email: &email}); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestGetByEmailMissing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, err := env.accounts.GetByEmail(ctx, "nobody@x.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

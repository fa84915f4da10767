package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/copyforge/apiserver/internal/auth"
	"github.com/copyforge/apiserver/internal/events"
	"github.com/copyforge/apiserver/internal/store"
	"github.com/copyforge/apiserver/types"
)

// ErrDuplicateAccount is returned when registering an email already on file.
var ErrDuplicateAccount = errors.New("account already exists")

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable so callers
// cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (types.Account, error)
	GetByEmail(ctx context.Context, email string) (types.Account, error)
	Create(ctx context.Context, account types.Account) (types.Account, error)
	Update(ctx context.Context, account types.Account) (types.Account, error)
	ReserveGeneration(ctx context.Context, id string) (types.Account, error)
	ReleaseGeneration(ctx context.Context, id string) error
	List(ctx context.Context) ([]types.Account, error)
}

// RegisterParams are the inputs for account registration.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Company   string
	Plan      types.Plan
}

// UpdateAccountParams is a partial update. Nil fields are left unchanged;
// the account id and password hash cannot be set through this path.
type UpdateAccountParams struct {
	FirstName *string
	LastName  *string
	Company   *string
	Email     *string
}

// AccountService encapsulates registration, login, and profile use-cases.
type AccountService struct {
	repo      AccountRepository
	creds     *auth.Credentials
	publisher *events.Publisher
}

func NewAccountService(repo AccountRepository, creds *auth.Credentials, publisher *events.Publisher) *AccountService {
	return &AccountService{repo: repo, creds: creds, publisher: publisher}
}

// Register creates an account and mints a session token. The plan defaults
// to free; unknown plan names also resolve to the free-tier quota.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (types.Account, string, error) {
	plan := params.Plan
	if plan == "" {
		plan = types.PlanFree
	}

	hash, err := s.creds.Hash(params.Password)
	if err != nil {
		return types.Account{}, "", err
	}

	account, err := s.repo.Create(ctx, types.Account{
		FirstName:        strings.TrimSpace(params.FirstName),
		LastName:         strings.TrimSpace(params.LastName),
		Email:            NormalizeEmail(params.Email),
		PasswordHash:     hash,
		Company:          strings.TrimSpace(params.Company),
		Plan:             plan,
		GenerationsUsed:  0,
		GenerationsLimit: plan.GenerationLimit(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return types.Account{}, "", ErrDuplicateAccount
		}
		return types.Account{}, "", err
	}

	token, err := s.creds.IssueToken(auth.Subject{ID: account.ID, Email: account.Email})
	if err != nil {
		return types.Account{}, "", err
	}

	s.publisher.Emit(ctx, events.ChannelAccounts, events.TypeAccountRegistered, account.Sanitized())
	return account.Sanitized(), token, nil
}

// Login verifies credentials, records the login time, and mints a token.
func (s *AccountService) Login(ctx context.Context, email, password string) (types.Account, string, error) {
	account, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Account{}, "", ErrInvalidCredentials
		}
		return types.Account{}, "", err
	}

	if !s.creds.Verify(password, account.PasswordHash) {
		return types.Account{}, "", ErrInvalidCredentials
	}

	account.LastLogin = time.Now().UTC()
	account, err = s.repo.Update(ctx, account)
	if err != nil {
		return types.Account{}, "", err
	}

	token, err := s.creds.IssueToken(auth.Subject{ID: account.ID, Email: account.Email})
	if err != nil {
		return types.Account{}, "", err
	}
	return account.Sanitized(), token, nil
}

// GetByID returns the account without its password hash.
func (s *AccountService) GetByID(ctx context.Context, id string) (types.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Account{}, err
	}
	return account.Sanitized(), nil
}

// GetByEmail returns the account without its password hash.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	account, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return types.Account{}, err
	}
	return account.Sanitized(), nil
}

// Update applies a shallow merge of the allowed profile fields.
func (s *AccountService) Update(ctx context.Context, id string, params UpdateAccountParams) (types.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Account{}, err
	}

	if params.FirstName != nil {
		account.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		account.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Company != nil {
		account.Company = strings.TrimSpace(*params.Company)
	}
	if params.Email != nil {
		account.Email = NormalizeEmail(*params.Email)
	}

	account, err = s.repo.Update(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return types.Account{}, ErrDuplicateAccount
		}
		return types.Account{}, err
	}
	return account.Sanitized(), nil
}

// NormalizeEmail lower-cases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

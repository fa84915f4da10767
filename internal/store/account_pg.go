package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PGAccountRepository handles account persistence on Postgres.
type PGAccountRepository struct {
	db *sql.DB
}

func NewPGAccountRepository(db *sql.DB) *PGAccountRepository {
	return &PGAccountRepository{db: db}
}

const accountColumns = `id, first_name, last_name, email, password_hash, company, plan, generations_used, generations_limit, created_at, last_login`

func scanAccount(row interface{ Scan(...any) error }) (types.Account, error) {
	var account types.Account
	var plan string
	err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&account.Company,
		&plan,
		&account.GenerationsUsed,
		&account.GenerationsLimit,
		&account.CreatedAt,
		&account.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Account{}, ErrNotFound
		}
		return types.Account{}, err
	}
	account.Plan = types.Plan(plan)
	return account, nil
}

func (r *PGAccountRepository) GetByID(ctx context.Context, id string) (types.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *PGAccountRepository) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *PGAccountRepository) Create(ctx context.Context, account types.Account) (types.Account, error) {
	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.LastLogin = now

	const query = `
		INSERT INTO accounts (id, first_name, last_name, email, password_hash, company, plan, generations_used, generations_limit, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.Company,
		string(account.Plan),
		account.GenerationsUsed,
		account.GenerationsLimit,
		account.CreatedAt,
		account.LastLogin,
	)
	if err != nil {
		return types.Account{}, translateUniqueViolation(err)
	}
	return account, nil
}

func (r *PGAccountRepository) Update(ctx context.Context, account types.Account) (types.Account, error) {
	const query = `
		UPDATE accounts
		SET first_name = $1,
			last_name = $2,
			email = $3,
			password_hash = $4,
			company = $5,
			plan = $6,
			generations_used = $7,
			generations_limit = $8,
			last_login = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(
		ctx,
		query,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		account.Company,
		string(account.Plan),
		account.GenerationsUsed,
		account.GenerationsLimit,
		account.LastLogin,
		account.ID,
	)
	if err != nil {
		return types.Account{}, translateUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Account{}, err
	}
	if affected == 0 {
		return types.Account{}, ErrNotFound
	}
	return account, nil
}

// ReserveGeneration performs the quota check and the increment as a single
// conditional UPDATE.
func (r *PGAccountRepository) ReserveGeneration(ctx context.Context, id string) (types.Account, error) {
	const query = `
		UPDATE accounts
		SET generations_used = generations_used + 1
		WHERE id = $1
		  AND (generations_limit = -1 OR generations_used < generations_limit)
		RETURNING ` + accountColumns
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return types.Account{}, err
	}

	// No row matched: either the account is missing or the quota is spent.
	existing, lookupErr := r.GetByID(ctx, id)
	if lookupErr != nil {
		return types.Account{}, lookupErr
	}
	return types.Account{}, &QuotaExceededError{
		Used:  existing.GenerationsUsed,
		Limit: existing.GenerationsLimit,
	}
}

func (r *PGAccountRepository) ReleaseGeneration(ctx context.Context, id string) error {
	const query = `
		UPDATE accounts
		SET generations_used = GREATEST(generations_used - 1, 0)
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGAccountRepository) List(ctx context.Context) ([]types.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]types.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

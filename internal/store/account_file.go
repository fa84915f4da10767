package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/copyforge/apiserver/types"
	"github.com/google/uuid"
)

const accountsFile = "accounts.json"

// accountRecord is the on-disk shape of an account. The public type hides
// the password hash from JSON; the collection file must keep it.
type accountRecord struct {
	types.Account
	PasswordHash string `json:"passwordHash"`
}

func toRecord(account types.Account) accountRecord {
	return accountRecord{Account: account, PasswordHash: account.PasswordHash}
}

func (rec accountRecord) account() types.Account {
	account := rec.Account
	account.PasswordHash = rec.PasswordHash
	return account
}

// FileAccountRepository persists accounts in a whole-file JSON collection.
type FileAccountRepository struct {
	col *collection[accountRecord]
}

func NewFileAccountRepository(dataDir string) (*FileAccountRepository, error) {
	col, err := newCollection[accountRecord](filepath.Join(dataDir, accountsFile))
	if err != nil {
		return nil, err
	}
	return &FileAccountRepository{col: col}, nil
}

func (r *FileAccountRepository) GetByID(ctx context.Context, id string) (types.Account, error) {
	records, err := r.col.List()
	if err != nil {
		return types.Account{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.account(), nil
		}
	}
	return types.Account{}, ErrNotFound
}

func (r *FileAccountRepository) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	records, err := r.col.List()
	if err != nil {
		return types.Account{}, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return rec.account(), nil
		}
	}
	return types.Account{}, ErrNotFound
}

func (r *FileAccountRepository) Create(ctx context.Context, account types.Account) (types.Account, error) {
	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.LastLogin = now

	err := r.col.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		for _, existing := range records {
			if existing.Email == account.Email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(records, toRecord(account)), nil
	})
	if err != nil {
		return types.Account{}, err
	}
	return account, nil
}

func (r *FileAccountRepository) Update(ctx context.Context, account types.Account) (types.Account, error) {
	err := r.col.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		index := -1
		for i, existing := range records {
			if existing.Email == account.Email && existing.ID != account.ID {
				return nil, ErrDuplicateEmail
			}
			if existing.ID == account.ID {
				index = i
			}
		}
		if index == -1 {
			return nil, ErrNotFound
		}
		records[index] = toRecord(account)
		return records, nil
	})
	if err != nil {
		return types.Account{}, err
	}
	return account, nil
}

// ReserveGeneration atomically checks the quota and increments the usage
// counter. The check and the increment happen under the collection lock so
// no caller path can create content past the limit.
func (r *FileAccountRepository) ReserveGeneration(ctx context.Context, id string) (types.Account, error) {
	var reserved types.Account
	err := r.col.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		for i, rec := range records {
			if rec.ID != id {
				continue
			}
			if !rec.QuotaRemaining() {
				return nil, &QuotaExceededError{
					Used:  rec.GenerationsUsed,
					Limit: rec.GenerationsLimit,
				}
			}
			records[i].GenerationsUsed++
			reserved = records[i].account()
			return records, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return types.Account{}, err
	}
	return reserved, nil
}

// ReleaseGeneration undoes a reservation after a failed content insert.
func (r *FileAccountRepository) ReleaseGeneration(ctx context.Context, id string) error {
	return r.col.Mutate(func(records []accountRecord) ([]accountRecord, error) {
		for i, rec := range records {
			if rec.ID != id {
				continue
			}
			if records[i].GenerationsUsed > 0 {
				records[i].GenerationsUsed--
			}
			return records, nil
		}
		return nil, ErrNotFound
	})
}

func (r *FileAccountRepository) List(ctx context.Context) ([]types.Account, error) {
	records, err := r.col.List()
	if err != nil {
		return nil, err
	}
	accounts := make([]types.Account, 0, len(records))
	for _, rec := range records {
		accounts = append(accounts, rec.account())
	}
	return accounts, nil
}

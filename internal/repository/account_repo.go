// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account to the database using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID, scoped to the owning user.
	GetAccountByID(ctx context.Context, q DBExecutor, accountID, userID uuid.UUID) (*domain.Account, error)
	// ListAccountsByUserID retrieves a user's accounts, newest-created first,
	// each annotated with its transaction count.
	ListAccountsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) ([]domain.AccountWithCount, error)
	// CountAccountsByUserID returns how many accounts a user owns.
	CountAccountsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (int64, error)
	// ClearDefaultAccounts unsets is_default on all of a user's accounts in a
	// single update and returns the ids of the accounts that were cleared.
	ClearDefaultAccounts(ctx context.Context, q DBExecutor, userID uuid.UUID) ([]uuid.UUID, error)
	// SetDefaultAccount marks the given account as default and returns the updated row.
	SetDefaultAccount(ctx context.Context, q DBExecutor, accountID, userID uuid.UUID) (*domain.Account, error)
	// AdjustAccountBalance applies an atomic increment of delta to the account's balance.
	AdjustAccountBalance(ctx context.Context, q DBExecutor, accountID uuid.UUID, delta decimal.Decimal) error
}

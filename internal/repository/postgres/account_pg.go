// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct {
	// Stateless; methods receive a DBExecutor directly
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account into the database using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (id, user_id, name, type, balance, is_default, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.IsDefault,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its ID, scoped to the owning user.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, accountID, userID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, user_id, name, type, balance, is_default, created_at, updated_at
              FROM accounts WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &account, query, accountID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID %s: %w", accountID, err)
	}
	return &account, nil
}

// ListAccountsByUserID retrieves a user's accounts, newest-created first,
// each annotated with its transaction count.
func (r *AccountRepository) ListAccountsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]domain.AccountWithCount, error) {
	accounts := []domain.AccountWithCount{}
	query := `
		SELECT a.id, a.user_id, a.name, a.type, a.balance, a.is_default, a.created_at, a.updated_at,
		       COUNT(t.id) AS transaction_count
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.user_id = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC`
	if err := q.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}

// CountAccountsByUserID returns how many accounts a user owns.
func (r *AccountRepository) CountAccountsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM accounts WHERE user_id = $1`
	if err := q.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %s: %w", userID, err)
	}
	return count, nil
}

// ClearDefaultAccounts unsets is_default on all of a user's accounts in a
// single update and returns the ids of the accounts that were cleared, so
// callers can drop any rendered views of those accounts.
func (r *AccountRepository) ClearDefaultAccounts(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]uuid.UUID, error) {
	cleared := []uuid.UUID{}
	query := `UPDATE accounts SET is_default = FALSE, updated_at = $1
              WHERE user_id = $2 AND is_default = TRUE
              RETURNING id`
	if err := q.SelectContext(ctx, &cleared, query, time.Now().UTC(), userID); err != nil {
		return nil, fmt.Errorf("failed to clear default accounts for user %s: %w", userID, err)
	}
	return cleared, nil
}

// SetDefaultAccount marks the given account as default and returns the updated row.
func (r *AccountRepository) SetDefaultAccount(ctx context.Context, q repository.DBExecutor, accountID, userID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	query := `UPDATE accounts SET is_default = TRUE, updated_at = $1
              WHERE id = $2 AND user_id = $3
              RETURNING id, user_id, name, type, balance, is_default, created_at, updated_at`
	err := q.GetContext(ctx, &account, query, time.Now().UTC(), accountID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to set default account %s: %w", accountID, err)
	}
	return &account, nil
}

// AdjustAccountBalance applies an atomic increment of delta to the account's
// balance. The increment happens in the database so concurrent adjustments
// never lose updates.
func (r *AccountRepository) AdjustAccountBalance(ctx context.Context, q repository.DBExecutor, accountID uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for account %s: %w", accountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adjusting balance for account %s: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when adjusting balance for account %s: %w", accountID, util.ErrNotFound)
	}
	return nil
}

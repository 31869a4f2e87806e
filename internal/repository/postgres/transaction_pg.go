// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Stateless; methods receive a DBExecutor directly
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record into the database using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, user_id, type, amount, category, description, date,
                                        is_recurring, recurring_interval, next_recurring_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.AccountID,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.Category,
		transaction.Description,
		transaction.Date,
		transaction.IsRecurring,
		transaction.RecurringInterval,
		transaction.NextRecurringDate,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByAccountID retrieves all transactions for an account, ordered by date descending.
func (r *TransactionRepository) GetTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID uuid.UUID) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT id, account_id, user_id, type, amount, category, description, date,
		       is_recurring, recurring_interval, next_recurring_date, created_at, updated_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY date DESC`
	if err := q.SelectContext(ctx, &transactions, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}
	return transactions, nil
}

// GetTransactionsByIDs retrieves the transactions matching ids that are owned by
// the given user. Ids with no matching owned row are simply absent from the result.
func (r *TransactionRepository) GetTransactionsByIDs(ctx context.Context, q repository.DBExecutor, ids []uuid.UUID, userID uuid.UUID) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	if len(ids) == 0 {
		return transactions, nil
	}
	query := `
		SELECT id, account_id, user_id, type, amount, category, description, date,
		       is_recurring, recurring_interval, next_recurring_date, created_at, updated_at
		FROM transactions
		WHERE id = ANY($1::uuid[]) AND user_id = $2`
	if err := q.SelectContext(ctx, &transactions, query, pq.Array(uuidStrings(ids)), userID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions by ids: %w", err)
	}
	return transactions, nil
}

// DeleteTransactionsByIDs deletes the transactions matching ids that are owned by
// the given user, returning the number of rows removed.
func (r *TransactionRepository) DeleteTransactionsByIDs(ctx context.Context, q repository.DBExecutor, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM transactions WHERE id = ANY($1::uuid[]) AND user_id = $2`
	result, err := q.ExecContext(ctx, query, pq.Array(uuidStrings(ids)), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected after deleting transactions: %w", err)
	}
	return rowsAffected, nil
}

// uuidStrings converts ids to their text form for array binding.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

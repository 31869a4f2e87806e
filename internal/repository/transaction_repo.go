// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"fintrack/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record to the database using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByAccountID retrieves all transactions for an account, ordered by date descending.
	GetTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID uuid.UUID) ([]domain.Transaction, error)
	// GetTransactionsByIDs retrieves the transactions matching ids that are owned
	// by the given user. Ids that do not match or are not owned are simply absent
	// from the result.
	GetTransactionsByIDs(ctx context.Context, q DBExecutor, ids []uuid.UUID, userID uuid.UUID) ([]domain.Transaction, error)
	// DeleteTransactionsByIDs deletes the transactions matching ids that are owned
	// by the given user, returning the number of rows removed.
	DeleteTransactionsByIDs(ctx context.Context, q DBExecutor, ids []uuid.UUID, userID uuid.UUID) (int64, error)
}

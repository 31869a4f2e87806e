// internal/service/transaction_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// CreateTransactionInput is the fully-enumerated input schema for recording
// a transaction. Amount is a non-negative magnitude; the sign is carried by
// Type.
type CreateTransactionInput struct {
	AccountID         uuid.UUID                 `json:"account_id"`
	Type              domain.TransactionType    `json:"type"`
	Amount            string                    `json:"amount"`
	Category          string                    `json:"category"`
	Description       *string                   `json:"description"`
	Date              time.Time                 `json:"date"`
	IsRecurring       bool                      `json:"is_recurring"`
	RecurringInterval *domain.RecurringInterval `json:"recurring_interval"`
}

// TransactionService defines the interface for transaction-related business
// logic. Every mutation keeps the owning account's materialized balance in
// step with the row change, inside one storage transaction.
type TransactionService interface {
	CreateTransaction(ctx context.Context, user *domain.User, input CreateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, user *domain.User, transactionID uuid.UUID) error
	BulkDeleteTransactions(ctx context.Context, user *domain.User, ids []uuid.UUID) error
}

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	invalidator     ViewInvalidator
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	invalidator ViewInvalidator,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		invalidator:     invalidator,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// CreateTransaction records a transaction on one of the user's accounts and
// applies its signed delta to the account balance in the same storage
// transaction.
func (s *transactionService) CreateTransaction(ctx context.Context, user *domain.User, input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", input.Type, util.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("category is required: %w", util.ErrInvalidInput)
	}
	if input.IsRecurring && (input.RecurringInterval == nil || !input.RecurringInterval.Valid()) {
		return nil, fmt.Errorf("recurring transaction needs a valid interval: %w", util.ErrInvalidInput)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", input.Amount, util.ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must be a non-negative magnitude: %w", util.ErrInvalidAmount)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create transaction: transaction controller does not implement DBExecutor")
	}

	// Ownership check doubles as the NotFound gate.
	if _, err := s.accountRepo.GetAccountByID(ctx, txExecutor, input.AccountID, user.ID); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	var interval *domain.RecurringInterval
	if input.IsRecurring {
		interval = input.RecurringInterval
	}

	transaction := domain.NewTransaction(
		input.AccountID,
		user.ID,
		input.Type,
		amount,
		input.Category,
		input.Description,
		input.Date,
		interval,
	)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: failed to insert: %w", err)
	}

	if err := s.accountRepo.AdjustAccountBalance(ctx, txExecutor, input.AccountID, transaction.BalanceDelta()); err != nil {
		return nil, fmt.Errorf("create transaction: failed to adjust balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transaction: failed to commit transaction: %w", err)
	}

	s.invalidator.InvalidateDashboard(user.ID)
	s.invalidator.InvalidateAccount(input.AccountID)

	return transaction, nil
}

// DeleteTransaction removes a single transaction, reversing its effect on
// the owning account's balance.
func (s *transactionService) DeleteTransaction(ctx context.Context, user *domain.User, transactionID uuid.UUID) error {
	return s.bulkDelete(ctx, user, []uuid.UUID{transactionID}, true)
}

// BulkDeleteTransactions removes the user's transactions matching ids.
// Ids that don't match or aren't owned are silently ignored. Per distinct
// owning account the net reversal delta is accumulated and applied as an
// atomic increment, all in one storage transaction.
func (s *transactionService) BulkDeleteTransactions(ctx context.Context, user *domain.User, ids []uuid.UUID) error {
	return s.bulkDelete(ctx, user, ids, false)
}

func (s *transactionService) bulkDelete(ctx context.Context, user *domain.User, ids []uuid.UUID, requireMatch bool) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("bulk delete transactions: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("bulk delete transactions: transaction controller does not implement DBExecutor")
	}

	transactions, err := s.transactionRepo.GetTransactionsByIDs(ctx, txExecutor, ids, user.ID)
	if err != nil {
		return fmt.Errorf("bulk delete transactions: failed to fetch: %w", err)
	}
	if requireMatch && len(transactions) == 0 {
		return fmt.Errorf("bulk delete transactions: %w", util.ErrNotFound)
	}

	// Net reversal per owning account: deleting an EXPENSE restores its
	// amount, deleting an INCOME removes it.
	deltas := make(map[uuid.UUID]decimal.Decimal)
	for i := range transactions {
		t := &transactions[i]
		deltas[t.AccountID] = deltas[t.AccountID].Add(t.ReversalDelta())
	}

	if _, err := s.transactionRepo.DeleteTransactionsByIDs(ctx, txExecutor, ids, user.ID); err != nil {
		return fmt.Errorf("bulk delete transactions: failed to delete: %w", err)
	}

	for accountID, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		if err := s.accountRepo.AdjustAccountBalance(ctx, txExecutor, accountID, delta); err != nil {
			return fmt.Errorf("bulk delete transactions: failed to adjust balance for account %s: %w", accountID, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("bulk delete transactions: failed to commit transaction: %w", err)
	}

	s.invalidator.InvalidateDashboard(user.ID)
	for accountID := range deltas {
		s.invalidator.InvalidateAccount(accountID)
	}

	return nil
}

// internal/service/account_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// CreateAccountInput is the fully-enumerated input schema for account
// creation. Only these fields are ever persisted.
type CreateAccountInput struct {
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Balance   string             `json:"balance"` // Parsed to decimal; string keeps client precision intact
	IsDefault bool               `json:"is_default"`
}

// AccountService defines the interface for account-related business logic.
// The caller resolves the user once per request and passes it in explicitly.
type AccountService interface {
	CreateAccount(ctx context.Context, user *domain.User, input CreateAccountInput) (*domain.Account, error)
	GetUserAccounts(ctx context.Context, user *domain.User) ([]domain.AccountWithCount, error)
	UpdateDefaultAccount(ctx context.Context, user *domain.User, accountID uuid.UUID) (*domain.Account, error)
	GetAccountWithTransactions(ctx context.Context, user *domain.User, accountID uuid.UUID) (*domain.Account, []domain.Transaction, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	invalidator     ViewInvalidator
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	invalidator ViewInvalidator,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
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

// CreateAccount creates a new account for the user. The user's first account
// is forced default regardless of the requested value; when the new account
// is default, all previous defaults are cleared in the same transaction.
func (s *accountService) CreateAccount(ctx context.Context, user *domain.User, input CreateAccountInput) (*domain.Account, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("account name is required: %w", util.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("unknown account type %q: %w", input.Type, util.ErrInvalidInput)
	}

	balance, err := decimal.NewFromString(input.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance %q: %w", input.Balance, util.ErrInvalidAmount)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create account: transaction controller does not implement DBExecutor")
	}

	existing, err := s.accountRepo.CountAccountsByUserID(ctx, txExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create account: failed to count existing accounts: %w", err)
	}

	// The first account is always the default.
	isDefault := input.IsDefault
	if existing == 0 {
		isDefault = true
	}

	var cleared []uuid.UUID
	if isDefault {
		cleared, err = s.accountRepo.ClearDefaultAccounts(ctx, txExecutor, user.ID)
		if err != nil {
			return nil, fmt.Errorf("create account: failed to clear previous defaults: %w", err)
		}
	}

	account := domain.NewAccount(user.ID, input.Name, input.Type, balance, isDefault)
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		return nil, fmt.Errorf("create account: failed to insert account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create account: failed to commit transaction: %w", err)
	}

	s.invalidator.InvalidateDashboard(user.ID)
	// Cleared accounts have stale is_default in any rendered detail view.
	for _, id := range cleared {
		s.invalidator.InvalidateAccount(id)
	}

	return account, nil
}

// GetUserAccounts returns the user's accounts, newest-created first, each
// annotated with its transaction count.
func (s *accountService) GetUserAccounts(ctx context.Context, user *domain.User) ([]domain.AccountWithCount, error) {
	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, s.dbExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user accounts: %w", err)
	}
	return accounts, nil
}

// UpdateDefaultAccount switches the user's default account. The clear and the
// set happen in one transaction so no reader ever observes zero or two
// defaults.
func (s *accountService) UpdateDefaultAccount(ctx context.Context, user *domain.User, accountID uuid.UUID) (*domain.Account, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update default account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update default account: transaction controller does not implement DBExecutor")
	}

	// Ownership check doubles as the NotFound gate.
	if _, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID, user.ID); err != nil {
		return nil, fmt.Errorf("update default account: %w", err)
	}

	cleared, err := s.accountRepo.ClearDefaultAccounts(ctx, txExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("update default account: failed to clear previous defaults: %w", err)
	}

	account, err := s.accountRepo.SetDefaultAccount(ctx, txExecutor, accountID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("update default account: failed to set default: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update default account: failed to commit transaction: %w", err)
	}

	s.invalidator.InvalidateDashboard(user.ID)
	// Both the switched account and the cleared previous default(s) have
	// stale is_default in any rendered detail view.
	s.invalidator.InvalidateAccount(accountID)
	for _, id := range cleared {
		if id != accountID {
			s.invalidator.InvalidateAccount(id)
		}
	}

	return account, nil
}

// GetAccountWithTransactions returns an account with its full transaction
// history ordered by date descending, or util.ErrNotFound when the account
// is absent or not owned by the user.
func (s *accountService) GetAccountWithTransactions(ctx context.Context, user *domain.User, accountID uuid.UUID) (*domain.Account, []domain.Transaction, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get account with transactions: %w", err)
	}

	transactions, err := s.transactionRepo.GetTransactionsByAccountID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("get account with transactions: %w", err)
	}

	return account, transactions, nil
}

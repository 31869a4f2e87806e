// internal/service/account_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fintrack/internal/cache"
	"fintrack/internal/domain"
	"fintrack/internal/serialize"
	"fintrack/internal/util"
)

func newAccountServiceForTest(t *testing.T) (AccountService, *MockAccountRepository, *MockTransactionRepository, *MockTxController, *MockInvalidator) {
	t.Helper()
	mockAccountRepo := new(MockAccountRepository)
	mockTransactionRepo := new(MockTransactionRepository)
	mockTxController := new(MockTxController)
	mockInvalidator := new(MockInvalidator)
	begin, commit, rollback := txFuncs(mockTxController)

	svc := NewAccountService(
		new(MockDBBeginner),
		new(MockDBExecutor),
		mockAccountRepo,
		mockTransactionRepo,
		mockInvalidator,
		begin,
		commit,
		rollback,
	)
	return svc, mockAccountRepo, mockTransactionRepo, mockTxController, mockInvalidator
}

func TestCreateAccount(t *testing.T) {
	user := domain.NewUser("clerk_123", "jo@example.com", nil)

	t.Run("FirstAccountForcedDefault", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, invalidator := newAccountServiceForTest(t)

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()

		// No existing accounts: the requested false is overridden.
		accountRepo.On("CountAccountsByUserID", ctx, mock.Anything, user.ID).Return(int64(0), nil).Once()
		accountRepo.On("ClearDefaultAccounts", ctx, mock.Anything, user.ID).Return([]uuid.UUID{}, nil).Once()
		accountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil).Once()
		invalidator.On("InvalidateDashboard", user.ID).Once()

		account, err := svc.CreateAccount(ctx, user, CreateAccountInput{
			Name:      "Everyday",
			Type:      domain.AccountTypeCurrent,
			Balance:   "100.50",
			IsDefault: false,
		})

		assert.NoError(t, err)
		assert.NotNil(t, account)
		assert.True(t, account.IsDefault)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.50")))
		mock.AssertExpectationsForObjects(t, accountRepo, txController, invalidator)
	})

	t.Run("SecondAccountKeepsRequestedNonDefault", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, invalidator := newAccountServiceForTest(t)

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()

		accountRepo.On("CountAccountsByUserID", ctx, mock.Anything, user.ID).Return(int64(1), nil).Once()
		// No ClearDefaultAccounts expectation: a non-default account must not touch existing defaults.
		accountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil).Once()
		invalidator.On("InvalidateDashboard", user.ID).Once()

		account, err := svc.CreateAccount(ctx, user, CreateAccountInput{
			Name:      "Savings",
			Type:      domain.AccountTypeSavings,
			Balance:   "0",
			IsDefault: false,
		})

		assert.NoError(t, err)
		assert.False(t, account.IsDefault)
		mock.AssertExpectationsForObjects(t, accountRepo, txController, invalidator)
	})

	t.Run("DefaultRequestClearsPreviousDefaults", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, invalidator := newAccountServiceForTest(t)

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()

		previousDefaultID := uuid.New()
		accountRepo.On("CountAccountsByUserID", ctx, mock.Anything, user.ID).Return(int64(2), nil).Once()
		accountRepo.On("ClearDefaultAccounts", ctx, mock.Anything, user.ID).Return([]uuid.UUID{previousDefaultID}, nil).Once()
		accountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil).Once()
		invalidator.On("InvalidateDashboard", user.ID).Once()
		invalidator.On("InvalidateAccount", previousDefaultID).Once()

		account, err := svc.CreateAccount(ctx, user, CreateAccountInput{
			Name:      "Main",
			Type:      domain.AccountTypeCurrent,
			Balance:   "10",
			IsDefault: true,
		})

		assert.NoError(t, err)
		assert.True(t, account.IsDefault)
		mock.AssertExpectationsForObjects(t, accountRepo, txController, invalidator)
	})

	t.Run("UnparsableBalance", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, _ := newAccountServiceForTest(t)

		account, err := svc.CreateAccount(ctx, user, CreateAccountInput{
			Name:    "Broken",
			Type:    domain.AccountTypeCurrent,
			Balance: "not-a-number",
		})

		assert.ErrorIs(t, err, util.ErrInvalidAmount)
		assert.Nil(t, account)
		// Early return: no transaction, no repository calls.
		txController.AssertNotCalled(t, "Commit")
		accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownAccountType", func(t *testing.T) {
		ctx := context.Background()
		svc, _, _, _, _ := newAccountServiceForTest(t)

		_, err := svc.CreateAccount(ctx, user, CreateAccountInput{
			Name:    "Odd",
			Type:    domain.AccountType("CRYPTO"),
			Balance: "5",
		})

		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})
}

func TestUpdateDefaultAccount(t *testing.T) {
	user := domain.NewUser("clerk_123", "jo@example.com", nil)
	accountID := uuid.New()

	t.Run("SwitchesDefaultAtomically", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, invalidator := newAccountServiceForTest(t)

		existing := domain.NewAccount(user.ID, "Savings", domain.AccountTypeSavings, decimal.Zero, false)
		existing.ID = accountID
		updated := *existing
		updated.IsDefault = true

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()

		previousDefaultID := uuid.New()
		accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID, user.ID).Return(existing, nil).Once()
		accountRepo.On("ClearDefaultAccounts", ctx, mock.Anything, user.ID).Return([]uuid.UUID{previousDefaultID}, nil).Once()
		accountRepo.On("SetDefaultAccount", ctx, mock.Anything, accountID, user.ID).Return(&updated, nil).Once()
		invalidator.On("InvalidateDashboard", user.ID).Once()
		invalidator.On("InvalidateAccount", accountID).Once()
		invalidator.On("InvalidateAccount", previousDefaultID).Once()

		account, err := svc.UpdateDefaultAccount(ctx, user, accountID)

		assert.NoError(t, err)
		assert.True(t, account.IsDefault)
		mock.AssertExpectationsForObjects(t, accountRepo, txController, invalidator)
	})

	t.Run("DroppedDefaultDetailViewIsInvalidated", func(t *testing.T) {
		ctx := context.Background()
		accountRepo := new(MockAccountRepository)
		txController := new(MockTxController)
		views, err := cache.NewViewCache()
		assert.NoError(t, err)
		begin, commit, rollback := txFuncs(txController)

		svc := NewAccountService(
			new(MockDBBeginner),
			new(MockDBExecutor),
			accountRepo,
			new(MockTransactionRepository),
			views,
			begin,
			commit,
			rollback,
		)

		// A rendered detail view of the current default is already cached.
		previousDefault := domain.NewAccount(user.ID, "Everyday", domain.AccountTypeCurrent, decimal.Zero, true)
		views.SetAccount(previousDefault.ID, serialize.FromAccountDetail(previousDefault, nil))
		views.Wait()

		existing := domain.NewAccount(user.ID, "Savings", domain.AccountTypeSavings, decimal.Zero, false)
		existing.ID = accountID
		updated := *existing
		updated.IsDefault = true

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()

		accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID, user.ID).Return(existing, nil).Once()
		accountRepo.On("ClearDefaultAccounts", ctx, mock.Anything, user.ID).Return([]uuid.UUID{previousDefault.ID}, nil).Once()
		accountRepo.On("SetDefaultAccount", ctx, mock.Anything, accountID, user.ID).Return(&updated, nil).Once()

		_, err = svc.UpdateDefaultAccount(ctx, user, accountID)
		assert.NoError(t, err)
		views.Wait()

		// The old default's cached detail would still claim is_default=true.
		_, ok := views.GetAccount(previousDefault.ID)
		assert.False(t, ok, "detail view of the dropped default must not be servable")
	})

	t.Run("NotOwnedAccount", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, _, txController, _ := newAccountServiceForTest(t)

		txController.On("Rollback").Return(nil).Once()
		accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID, user.ID).Return(nil, util.ErrNotFound).Once()

		account, err := svc.UpdateDefaultAccount(ctx, user, accountID)

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, account)
		txController.AssertNotCalled(t, "Commit")
		accountRepo.AssertNotCalled(t, "ClearDefaultAccounts", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetAccountWithTransactions(t *testing.T) {
	user := domain.NewUser("clerk_123", "jo@example.com", nil)
	accountID := uuid.New()

	t.Run("ReturnsAccountAndHistory", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, transactionRepo, _, _ := newAccountServiceForTest(t)

		account := domain.NewAccount(user.ID, "Everyday", domain.AccountTypeCurrent, decimal.NewFromInt(100), true)
		account.ID = accountID
		history := []domain.Transaction{
			*domain.NewTransaction(accountID, user.ID, domain.TransactionTypeExpense, decimal.NewFromInt(20), "groceries", nil, account.CreatedAt, nil),
		}

		accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID, user.ID).Return(account, nil).Once()
		transactionRepo.On("GetTransactionsByAccountID", ctx, mock.Anything, accountID).Return(history, nil).Once()

		got, transactions, err := svc.GetAccountWithTransactions(ctx, user, accountID)

		assert.NoError(t, err)
		assert.Equal(t, account, got)
		assert.Len(t, transactions, 1)
		mock.AssertExpectationsForObjects(t, accountRepo, transactionRepo)
	})

	t.Run("MissingAccount", func(t *testing.T) {
		ctx := context.Background()
		svc, accountRepo, transactionRepo, _, _ := newAccountServiceForTest(t)

		accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID, user.ID).Return(nil, util.ErrNotFound).Once()

		got, transactions, err := svc.GetAccountWithTransactions(ctx, user, accountID)

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, got)
		assert.Nil(t, transactions)
		transactionRepo.AssertNotCalled(t, "GetTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything)
	})
}

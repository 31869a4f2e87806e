// internal/serialize/serialize.go

// Package serialize converts storage-precision records into transport-safe
// representations for the presentation layer. Monetary fields are stored as
// arbitrary-precision decimals and leave this boundary as IEEE-754 doubles.
package serialize

import (
	"time"

	"github.com/google/uuid"

	"fintrack/internal/domain"
)

// Account is the transport form of domain.Account with the balance
// converted to a double. Conversion applies whenever the field is present,
// zero values included.
type Account struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Balance   float64            `json:"balance"`
	IsDefault bool               `json:"is_default"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AccountWithCount is Account annotated with its transaction count.
type AccountWithCount struct {
	Account
	TransactionCount int64 `json:"transaction_count"`
}

// Transaction is the transport form of domain.Transaction with the amount
// converted to a double. Nullable fields stay nullable.
type Transaction struct {
	ID                uuid.UUID                 `json:"id"`
	AccountID         uuid.UUID                 `json:"account_id"`
	UserID            uuid.UUID                 `json:"user_id"`
	Type              domain.TransactionType    `json:"type"`
	Amount            float64                   `json:"amount"`
	Category          string                    `json:"category"`
	Description       *string                   `json:"description"`
	Date              time.Time                 `json:"date"`
	IsRecurring       bool                      `json:"is_recurring"`
	RecurringInterval *domain.RecurringInterval `json:"recurring_interval"`
	NextRecurringDate *time.Time                `json:"next_recurring_date"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// AccountDetail is an account together with its full transaction history.
type AccountDetail struct {
	Account
	Transactions     []Transaction `json:"transactions"`
	TransactionCount int64         `json:"transaction_count"`
}

// FromAccount returns the transport form of an account.
func FromAccount(a *domain.Account) Account {
	return Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Type:      a.Type,
		Balance:   a.Balance.InexactFloat64(),
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromAccountWithCount returns the transport form of an annotated account.
func FromAccountWithCount(a domain.AccountWithCount) AccountWithCount {
	return AccountWithCount{
		Account:          FromAccount(&a.Account),
		TransactionCount: a.TransactionCount,
	}
}

// FromAccounts returns the transport forms of a listing of accounts.
func FromAccounts(accounts []domain.AccountWithCount) []AccountWithCount {
	out := make([]AccountWithCount, len(accounts))
	for i, a := range accounts {
		out[i] = FromAccountWithCount(a)
	}
	return out
}

// FromTransaction returns the transport form of a transaction.
func FromTransaction(t *domain.Transaction) Transaction {
	return Transaction{
		ID:                t.ID,
		AccountID:         t.AccountID,
		UserID:            t.UserID,
		Type:              t.Type,
		Amount:            t.Amount.InexactFloat64(),
		Category:          t.Category,
		Description:       t.Description,
		Date:              t.Date,
		IsRecurring:       t.IsRecurring,
		RecurringInterval: t.RecurringInterval,
		NextRecurringDate: t.NextRecurringDate,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromTransactions returns the transport forms of a list of transactions.
func FromTransactions(transactions []domain.Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	for i := range transactions {
		out[i] = FromTransaction(&transactions[i])
	}
	return out
}

// FromAccountDetail returns an account with its transactions in transport form.
func FromAccountDetail(a *domain.Account, transactions []domain.Transaction) AccountDetail {
	return AccountDetail{
		Account:          FromAccount(a),
		Transactions:     FromTransactions(transactions),
		TransactionCount: int64(len(transactions)),
	}
}

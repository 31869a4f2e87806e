// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a financial transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the transaction type is a known value.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// RecurringInterval defines how often a recurring transaction repeats.
type RecurringInterval string

const (
	RecurringIntervalDaily   RecurringInterval = "DAILY"
	RecurringIntervalWeekly  RecurringInterval = "WEEKLY"
	RecurringIntervalMonthly RecurringInterval = "MONTHLY"
	RecurringIntervalYearly  RecurringInterval = "YEARLY"
)

// Valid reports whether the recurring interval is a known value.
func (i RecurringInterval) Valid() bool {
	switch i {
	case RecurringIntervalDaily, RecurringIntervalWeekly, RecurringIntervalMonthly, RecurringIntervalYearly:
		return true
	}
	return false
}

// Next returns the occurrence following from on this interval.
func (i RecurringInterval) Next(from time.Time) time.Time {
	switch i {
	case RecurringIntervalDaily:
		return from.AddDate(0, 0, 1)
	case RecurringIntervalWeekly:
		return from.AddDate(0, 0, 7)
	case RecurringIntervalMonthly:
		return from.AddDate(0, 1, 0)
	case RecurringIntervalYearly:
		return from.AddDate(1, 0, 0)
	}
	return from
}

// Transaction represents a financial transaction record. Amount is always a
// non-negative magnitude; the sign of its effect on the owning account's
// balance is carried by Type.
type Transaction struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	AccountID         uuid.UUID          `db:"account_id" json:"account_id"`
	UserID            uuid.UUID          `db:"user_id" json:"user_id"` // Denormalized for authorization checks
	Type              TransactionType    `db:"type" json:"type"`
	Amount            decimal.Decimal    `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	Category          string             `db:"category" json:"category"`
	Description       *string            `db:"description" json:"description"`
	Date              time.Time          `db:"date" json:"date"`
	IsRecurring       bool               `db:"is_recurring" json:"is_recurring"`
	RecurringInterval *RecurringInterval `db:"recurring_interval" json:"recurring_interval"`
	NextRecurringDate *time.Time         `db:"next_recurring_date" json:"next_recurring_date"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(
	accountID uuid.UUID,
	userID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	category string,
	description *string,
	date time.Time,
	interval *RecurringInterval,
) *Transaction {
	now := time.Now().UTC()
	t := &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if interval != nil {
		t.IsRecurring = true
		t.RecurringInterval = interval
		next := interval.Next(date)
		t.NextRecurringDate = &next
	}
	return t
}

// BalanceDelta returns the signed effect this transaction has on the owning
// account's balance: +amount for INCOME, -amount for EXPENSE.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ReversalDelta returns the balance adjustment required when this
// transaction is deleted: the negation of BalanceDelta.
func (t *Transaction) ReversalDelta() decimal.Decimal {
	return t.BalanceDelta().Neg()
}

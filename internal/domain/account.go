// internal/domain/account.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// AccountType defines the kind of a financial account.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// Valid reports whether the account type is a known value.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCurrent, AccountTypeSavings:
		return true
	}
	return false
}

// Account represents a user's financial account. Balance is a materialized
// running total maintained incrementally by transaction mutations; for each
// user with at least one account, exactly one account is the default.
type Account struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Name      string          `db:"name" json:"name"`
	Type      AccountType     `db:"type" json:"type"`
	Balance   decimal.Decimal `db:"balance" json:"balance"` // NUMERIC(20, 4) in DB
	IsDefault bool            `db:"is_default" json:"is_default"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewAccount creates a new Account instance.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, balance decimal.Decimal, isDefault bool) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   balance,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AccountWithCount is an Account annotated with its transaction count,
// as returned by account listings.
type AccountWithCount struct {
	Account
	TransactionCount int64 `db:"transaction_count" json:"transaction_count"`
}

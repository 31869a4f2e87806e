// internal/service/invalidator.go
package service

import "github.com/google/uuid"

// ViewInvalidator is the presentation-layer refresh collaborator. Mutating
// operations call it fire-and-forget after committing; implementations must
// not fail.
type ViewInvalidator interface {
	InvalidateDashboard(userID uuid.UUID)
	InvalidateAccount(accountID uuid.UUID)
}

// NopInvalidator discards invalidation signals.
type NopInvalidator struct{}

func (NopInvalidator) InvalidateDashboard(uuid.UUID) {}
func (NopInvalidator) InvalidateAccount(uuid.UUID)   {}

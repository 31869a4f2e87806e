// internal/cache/views.go
package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// ViewCache holds rendered view payloads (dashboard account listings,
// per-account detail) keyed by owner. Mutating operations call the
// Invalidate* methods as a fire-and-forget signal so the next read
// recomputes from storage.
type ViewCache struct {
	cache *ristretto.Cache
}

// NewViewCache creates a ViewCache backed by an in-process ristretto cache.
func NewViewCache() (*ViewCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize view cache: %w", err)
	}
	return &ViewCache{cache: c}, nil
}

func dashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

func accountKey(accountID uuid.UUID) string {
	return "account:" + accountID.String()
}

// GetDashboard returns the cached dashboard view for a user, if present.
func (vc *ViewCache) GetDashboard(userID uuid.UUID) (interface{}, bool) {
	return vc.cache.Get(dashboardKey(userID))
}

// SetDashboard stores the dashboard view for a user.
func (vc *ViewCache) SetDashboard(userID uuid.UUID, view interface{}) {
	vc.cache.Set(dashboardKey(userID), view, 1)
}

// InvalidateDashboard drops the cached dashboard view for a user.
func (vc *ViewCache) InvalidateDashboard(userID uuid.UUID) {
	vc.cache.Del(dashboardKey(userID))
}

// GetAccount returns the cached detail view for an account, if present.
func (vc *ViewCache) GetAccount(accountID uuid.UUID) (interface{}, bool) {
	return vc.cache.Get(accountKey(accountID))
}

// SetAccount stores the detail view for an account.
func (vc *ViewCache) SetAccount(accountID uuid.UUID, view interface{}) {
	vc.cache.Set(accountKey(accountID), view, 1)
}

// InvalidateAccount drops the cached detail view for an account.
func (vc *ViewCache) InvalidateAccount(accountID uuid.UUID) {
	vc.cache.Del(accountKey(accountID))
}

// Wait blocks until buffered writes have been applied. Useful in tests.
func (vc *ViewCache) Wait() {
	vc.cache.Wait()
}

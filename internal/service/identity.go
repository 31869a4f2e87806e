// internal/service/identity.go
package service

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// IdentityResolver maps an external authentication identity to an internal
// user record. It is the single authorization gate: every operation resolves
// the caller once at the request boundary and passes the *domain.User down
// explicitly.
type IdentityResolver interface {
	Resolve(ctx context.Context, externalID string) (*domain.User, error)
}

type identityResolver struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
}

// NewIdentityResolver creates a new IdentityResolver backed by the user repository.
func NewIdentityResolver(dbExecutor repository.DBExecutor, userRepo repository.UserRepository) IdentityResolver {
	return &identityResolver{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
	}
}

// Resolve returns the internal user for an external identity.
// It fails with util.ErrUnauthorized when no identity is present and
// util.ErrUserNotFound when the identity has no matching user record.
func (r *identityResolver) Resolve(ctx context.Context, externalID string) (*domain.User, error) {
	if externalID == "" {
		return nil, util.ErrUnauthorized
	}

	user, err := r.userRepo.GetUserByClerkID(ctx, r.dbExecutor, externalID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}

// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an internal identity record. Users are created by the
// external auth collaborator on first sign-in; this core only resolves them.
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClerkUserID string    `db:"clerk_user_id" json:"clerk_user_id"` // External auth identity, unique
	Email       string    `db:"email" json:"email"`
	Name        *string   `db:"name" json:"name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new User instance.
func NewUser(clerkUserID, email string, name *string) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		ClerkUserID: clerkUserID,
		Email:       email,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

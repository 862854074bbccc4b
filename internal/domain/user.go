package domain

import (
	"context"
	"time"
)

// Sentinel errors for user operations.
var ErrUserNotFound = NewNotFoundError("user not found")

// RoleAdmin is the role code that grants speaker management rights.
const RoleAdmin = "admin"

// User represents an admin-panel account.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role represents an application role (e.g. admin).
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// NonceManager issues and checks per-session anti-forgery nonces scoped to
// an action name.
type NonceManager interface {
	Issue(userID, action string) string
	Verify(userID, action, nonce string) bool
}

// Authorizer answers capability questions for the speaker admin surface.
// CanEditRecord and CanDeleteRecord are object-level checks run after the
// target record is resolved.
type Authorizer interface {
	CanManageSpeakers(ctx context.Context, userID string) (bool, error)
	CanEditRecord(ctx context.Context, userID string, recordID int64) (bool, error)
	CanDeleteRecord(ctx context.Context, userID string, recordID int64) (bool, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// RoleRepository defines the interface for role storage.
type RoleRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// AuthService defines login for the admin panel.
type AuthService interface {
	// Login verifies credentials and returns a session token and the user.
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/likestem/authd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Prefer this over manual Tx handling.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user (with roles) by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and MFA verification.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used when issuing password-reset tokens.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByResetToken finds the user holding the exact live reset
	// token, expired or not. Expiry is the service layer's call.
	GetUserByResetToken(ctx context.Context, token string) (domain.User, error)

	// CreateUser inserts a new user and its role assignments (id is
	// provided by the app via ULID). Returns ErrAlreadyExists when the
	// username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetMFACode stores or clears (nil) the live MFA one-time code.
	SetMFACode(ctx context.Context, userID string, code *string) error

	// SetMFAEnabled flips the MFA flag for a user.
	SetMFAEnabled(ctx context.Context, userID string, enabled bool) error

	// SetResetToken stores or clears (both nil) the live reset token and
	// its expiry. Token and expiry always travel together.
	SetResetToken(ctx context.Context, userID string, token *string, expiresAt *time.Time) error

	// ClearExpiredResetTokens wipes reset tokens whose expiry is before
	// now. Housekeeping; returns the number of affected users.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type Roles interface {
	// GetRoleByName fetches a role by its unique name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// CreateRole inserts a new role (id is ULID). Returns
	// ErrAlreadyExists when the name is taken.
	CreateRole(ctx context.Context, r domain.Role) error
}

package credentials

import "context"

// Repository is the storage interface for credential records.
type Repository interface {
	// GetByUsername returns the record for an exact username match, or
	// ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Insert stores a new record. Returns ErrUserExists if the username is
	// already taken.
	Insert(ctx context.Context, user *User) error

	// UpdateHash overwrites the stored hash for a username. Returns
	// ErrUserNotFound if no such user exists.
	UpdateHash(ctx context.Context, username string, hash []byte) error

	// Reset destroys and recreates the underlying store, deleting every user.
	Reset(ctx context.Context) error
}

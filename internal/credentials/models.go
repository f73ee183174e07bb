// Package credentials owns password hashing and the stored user records.
// It is the single source of truth for a user's password.
package credentials

import "errors"

// Credential store errors.
var (
	// ErrUserNotFound is returned when no user exists with the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when creating a user whose username is taken.
	ErrUserExists = errors.New("user already exists")
)

// User is a stored credential record. The salt is fixed at creation and the
// hash is always argon2id(password, salt).
type User struct {
	// ID is assigned by storage.
	ID int64

	// Username is unique and case-sensitive; lookups are exact.
	Username string

	// Salt is the per-user random value mixed into the hash.
	Salt []byte

	// HashedPassword is the salted hash of the password.
	HashedPassword []byte
}

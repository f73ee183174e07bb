package credentials

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository, used in
// tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int64
}

// NewInMemoryRepository creates an empty in-memory credential repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]*User),
		nextID: 1,
	}
}

// GetByUsername returns the record for an exact username match.
func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	// Return a copy to prevent mutation.
	clone := *user
	return &clone, nil
}

// Insert stores a new record.
func (r *InMemoryRepository) Insert(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return ErrUserExists
	}

	clone := *user
	clone.ID = r.nextID
	r.nextID++
	r.users[user.Username] = &clone
	return nil
}

// UpdateHash overwrites the stored hash for a username.
func (r *InMemoryRepository) UpdateHash(_ context.Context, username string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}

	user.HashedPassword = hash
	return nil
}

// Reset deletes every stored user.
func (r *InMemoryRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]*User)
	r.nextID = 1
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)

package favourites

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrRegistryNotFound is returned when no registry exists for a username.
var ErrRegistryNotFound = errors.New("no favourites registry for user")

// Directory maps usernames to their favourites registries. A registry is
// created once, when the account is created, and looked up on every
// favourites request after that.
type Directory struct {
	provider Provider
	logger   zerolog.Logger

	mu         sync.RWMutex
	registries map[string]*Registry
}

// NewDirectory creates an empty directory backed by the given provider.
func NewDirectory(provider Provider, logger zerolog.Logger) *Directory {
	return &Directory{
		provider:   provider,
		logger:     logger,
		registries: make(map[string]*Registry),
	}
}

// Create makes an empty registry for a username. If one already exists it is
// returned unchanged, so a create is safe to repeat.
func (d *Directory) Create(username string) *Registry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.registries[username]; ok {
		return existing
	}

	registry := NewRegistry(username, d.provider, d.logger)
	d.registries[username] = registry
	d.logger.Info().Str("username", username).Msg("favourites registry created")
	return registry
}

// Get returns the registry for a username.
func (d *Directory) Get(username string) (*Registry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	registry, ok := d.registries[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRegistryNotFound, username)
	}

	return registry, nil
}

// Clear drops every registry. It mirrors a credential store reset: with all
// accounts gone, no favourites should survive either.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registries = make(map[string]*Registry)
	d.logger.Warn().Msg("all favourites registries dropped")
}

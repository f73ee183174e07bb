// Package favourites manages each user's list of favourite weather locations
// and orchestrates weather lookups against the provider.
package favourites

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// Favourites errors.
var (
	// ErrEmpty is returned by operations that require at least one favourite.
	ErrEmpty = errors.New("favourites is empty")

	// ErrNotFavourite is returned when a location is not in the favourites.
	ErrNotFavourite = errors.New("location not found in favourites")

	// ErrDuplicate is returned when adding a location that is already a
	// favourite.
	ErrDuplicate = errors.New("location already exists in favourites")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrInvalidDays is returned when a forecast day count is out of range.
	ErrInvalidDays = errors.New("days must be between 1 and 10")
)

// Forecast bounds supported by the provider.
const (
	MinForecastDays = 1
	MaxForecastDays = 10
)

// Provider is the weather API surface the registry depends on.
type Provider interface {
	// Current fetches the current weather for a location.
	Current(ctx context.Context, location string) (*weather.Current, error)

	// History fetches the weather for one past day (YYYY-MM-DD).
	History(ctx context.Context, location, date string) (*weather.Day, error)

	// Forecast fetches up to days upcoming days, in provider order.
	Forecast(ctx context.Context, location string, days int) ([]weather.Day, error)

	// Validate reports whether the provider recognises the location name.
	Validate(ctx context.Context, location string) error
}

// Registry is one user's ordered collection of favourite locations. Every
// entry has passed provider validation before being appended, and entries are
// unique under exact, case-sensitive comparison.
//
// A registry serialises its own operations, provider calls included, so
// concurrent requests for the same user cannot interleave mutations.
// Different users' registries are independent.
type Registry struct {
	username string
	provider Provider
	logger   zerolog.Logger

	mu        sync.Mutex
	locations []string
}

// NewRegistry creates an empty registry for a user.
func NewRegistry(username string, provider Provider, logger zerolog.Logger) *Registry {
	return &Registry{
		username: username,
		provider: provider,
		logger:   logger.With().Str("username", username).Logger(),
	}
}

// Username returns the owning username.
func (r *Registry) Username() string {
	return r.username
}

// Add validates a location with the provider and appends it. The location is
// only appended once validation succeeds; a rejected name leaves the
// favourites untouched.
func (r *Registry) Add(ctx context.Context, location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.locations, location) {
		r.logger.Error().Str("location", location).Msg("location already in favourites")
		return fmt.Errorf("%w: %s", ErrDuplicate, location)
	}

	if err := r.provider.Validate(ctx, location); err != nil {
		return err
	}

	r.locations = append(r.locations, location)
	r.logger.Info().Str("location", location).Msg("favourite added")
	return nil
}

// Remove deletes one location, preserving the relative order of the rest.
func (r *Registry) Remove(location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return ErrEmpty
	}

	i := slices.Index(r.locations, location)
	if i < 0 {
		r.logger.Error().Str("location", location).Msg("location not in favourites")
		return fmt.Errorf("%w: %s", ErrNotFavourite, location)
	}

	r.locations = append(r.locations[:i], r.locations[i+1:]...)
	r.logger.Info().Str("location", location).Msg("favourite removed")
	return nil
}

// Clear empties the favourites. Clearing an already-empty list is not an
// error; it is logged and otherwise a no-op.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		r.logger.Warn().Msg("clearing an empty favourites list")
	}
	r.locations = r.locations[:0]
}

// List returns the favourites in insertion order.
func (r *Registry) List() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return nil, ErrEmpty
	}

	return slices.Clone(r.locations), nil
}

// Len returns the number of favourites. It is the one read operation with no
// emptiness guard.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locations)
}

// CurrentWeather fetches the current weather for one favourite. Membership is
// checked instead of re-validating with the provider: favourites were
// validated when added, and skipping re-validation halves the provider calls.
func (r *Registry) CurrentWeather(ctx context.Context, location string) (*weather.Current, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return nil, ErrEmpty
	}
	if !slices.Contains(r.locations, location) {
		return nil, fmt.Errorf("%w: %s", ErrNotFavourite, location)
	}

	return r.provider.Current(ctx, location)
}

// AllCurrentWeather fetches the current weather for every favourite, in
// favourites order, one provider request per entry. The first failure aborts
// the whole operation; no partial results are returned.
func (r *Registry) AllCurrentWeather(ctx context.Context) ([]weather.Current, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return nil, ErrEmpty
	}

	results := make([]weather.Current, 0, len(r.locations))
	for _, location := range r.locations {
		current, err := r.provider.Current(ctx, location)
		if err != nil {
			return nil, err
		}
		results = append(results, *current)
	}

	return results, nil
}

// HistoricalWeather fetches the weather for one favourite on a past day.
func (r *Registry) HistoricalWeather(ctx context.Context, location, date string) (*weather.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return nil, ErrEmpty
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidDate, date)
	}
	if !slices.Contains(r.locations, location) {
		return nil, fmt.Errorf("%w: %s", ErrNotFavourite, location)
	}

	return r.provider.History(ctx, location, date)
}

// Forecast fetches the upcoming days for one favourite, in provider order.
func (r *Registry) Forecast(ctx context.Context, location string, days int) ([]weather.Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.locations) == 0 {
		return nil, ErrEmpty
	}
	if days < MinForecastDays || days > MaxForecastDays {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidDays, days)
	}
	if !slices.Contains(r.locations, location) {
		return nil, fmt.Errorf("%w: %s", ErrNotFavourite, location)
	}

	return r.provider.Forecast(ctx, location, days)
}

// ValidateLocation asks the provider whether it recognises the name.
func (r *Registry) ValidateLocation(ctx context.Context, location string) error {
	return r.provider.Validate(ctx, location)
}

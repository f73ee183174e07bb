package favourites_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherdeck/weatherdeck/internal/favourites"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// fakeProvider serves canned weather for a fixed set of known locations and
// records every call it receives.
type fakeProvider struct {
	known map[string]weather.Current
	calls []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		known: map[string]weather.Current{
			"Boston": {
				Name:         "Boston",
				TemperatureC: 22.5,
				FeelsLikeC:   21.0,
				Humidity:     40,
				WindKPH:      11.2,
				WindDir:      "W",
				PressureMB:   1015,
				PrecipMM:     0,
				Cloud:        10,
				Condition:    "Clear",
			},
			"New York": {
				Name:         "New York",
				TemperatureC: 18.0,
				FeelsLikeC:   17.5,
				Humidity:     80,
				WindKPH:      20.5,
				WindDir:      "NE",
				PressureMB:   1008,
				PrecipMM:     4,
				Cloud:        90,
				Condition:    "Rainy",
			},
			"London": {
				Name:         "London",
				TemperatureC: 12.0,
				FeelsLikeC:   10.5,
				Humidity:     70,
				WindKPH:      15.0,
				WindDir:      "SW",
				PressureMB:   1002,
				PrecipMM:     1,
				Cloud:        75,
				Condition:    "Overcast",
			},
		},
	}
}

var errUnknownLocation = errors.New("unknown location")

func (p *fakeProvider) Current(_ context.Context, location string) (*weather.Current, error) {
	p.calls = append(p.calls, "current:"+location)
	current, ok := p.known[location]
	if !ok {
		return nil, errUnknownLocation
	}
	return &current, nil
}

func (p *fakeProvider) History(_ context.Context, location, date string) (*weather.Day, error) {
	p.calls = append(p.calls, "history:"+location+":"+date)
	if _, ok := p.known[location]; !ok {
		return nil, errUnknownLocation
	}
	return &weather.Day{Name: location, Date: date, MinTempC: 5, MaxTempC: 15, Condition: "Cloudy"}, nil
}

func (p *fakeProvider) Forecast(_ context.Context, location string, days int) ([]weather.Day, error) {
	p.calls = append(p.calls, fmt.Sprintf("forecast:%s:%d", location, days))
	if _, ok := p.known[location]; !ok {
		return nil, errUnknownLocation
	}
	forecast := make([]weather.Day, 0, days)
	for i := 0; i < days; i++ {
		forecast = append(forecast, weather.Day{
			Name:      location,
			Date:      fmt.Sprintf("2026-09-%02d", i+1),
			Condition: "Sunny",
		})
	}
	return forecast, nil
}

func (p *fakeProvider) Validate(_ context.Context, location string) error {
	p.calls = append(p.calls, "validate:"+location)
	if _, ok := p.known[location]; !ok {
		return errUnknownLocation
	}
	return nil
}

func newTestRegistry(provider favourites.Provider) *favourites.Registry {
	return favourites.NewRegistry("alice", provider, zerolog.Nop())
}

func TestRegistry_AddAndList(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))
	require.NoError(t, registry.Add(ctx, "New York"))

	locations, err := registry.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston", "New York"}, locations)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	require.NoError(t, registry.Add(ctx, "Boston"))

	err := registry.Add(ctx, "Boston")
	assert.ErrorIs(t, err, favourites.ErrDuplicate)
	assert.Equal(t, 1, registry.Len())

	// The duplicate is rejected before the provider is consulted again.
	assert.Equal(t, []string{"validate:Boston"}, provider.calls)
}

func TestRegistry_AddInvalidLocation(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	err := registry.Add(ctx, "Atlantis")
	assert.Error(t, err)
	assert.Equal(t, 0, registry.Len())

	_, err = registry.List()
	assert.ErrorIs(t, err, favourites.ErrEmpty)
}

func TestRegistry_RemovePreservesOrder(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))
	require.NoError(t, registry.Add(ctx, "New York"))
	require.NoError(t, registry.Add(ctx, "London"))

	require.NoError(t, registry.Remove("New York"))

	locations, err := registry.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston", "London"}, locations)
}

func TestRegistry_RemoveErrors(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	err := registry.Remove("Boston")
	assert.ErrorIs(t, err, favourites.ErrEmpty)

	require.NoError(t, registry.Add(ctx, "Boston"))

	err = registry.Remove("London")
	assert.ErrorIs(t, err, favourites.ErrNotFavourite)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Clear(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))
	registry.Clear()
	assert.Equal(t, 0, registry.Len())

	// Clearing again is a no-op, not an error.
	registry.Clear()
	assert.Equal(t, 0, registry.Len())
}

func TestRegistry_CurrentWeather(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))

	current, err := registry.CurrentWeather(ctx, "Boston")
	require.NoError(t, err)
	assert.Equal(t, "Boston", current.Name)
	assert.Equal(t, 22.5, current.TemperatureC)
	assert.Equal(t, "Clear", current.Condition)

	_, err = registry.CurrentWeather(ctx, "London")
	assert.ErrorIs(t, err, favourites.ErrNotFavourite)
}

func TestRegistry_CurrentWeatherEmpty(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	_, err := registry.CurrentWeather(ctx, "Boston")
	assert.ErrorIs(t, err, favourites.ErrEmpty)
	assert.Empty(t, provider.calls, "an empty registry must not reach the provider")
}

func TestRegistry_AllCurrentWeather(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))
	require.NoError(t, registry.Add(ctx, "New York"))

	all, err := registry.AllCurrentWeather(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "Boston", all[0].Name)
	assert.Equal(t, 22.5, all[0].TemperatureC)
	assert.Equal(t, "Clear", all[0].Condition)
	assert.Equal(t, "New York", all[1].Name)
	assert.Equal(t, 18.0, all[1].TemperatureC)
	assert.Equal(t, "Rainy", all[1].Condition)
}

func TestRegistry_AllCurrentWeatherStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	require.NoError(t, registry.Add(ctx, "Boston"))
	require.NoError(t, registry.Add(ctx, "New York"))
	require.NoError(t, registry.Add(ctx, "London"))

	// The provider loses knowledge of a location after it was favourited.
	delete(provider.known, "New York")
	provider.calls = nil

	all, err := registry.AllCurrentWeather(ctx)
	assert.ErrorIs(t, err, errUnknownLocation)
	assert.Nil(t, all, "a failed lookup must not yield partial results")

	// The failing location ends the walk; London is never fetched.
	assert.Equal(t, []string{"current:Boston", "current:New York"}, provider.calls)
}

func TestRegistry_AllCurrentWeatherEmpty(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	_, err := registry.AllCurrentWeather(ctx)
	assert.ErrorIs(t, err, favourites.ErrEmpty)
}

func TestRegistry_HistoricalWeather(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	require.NoError(t, registry.Add(ctx, "Boston"))

	day, err := registry.HistoricalWeather(ctx, "Boston", "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, "Boston", day.Name)
	assert.Equal(t, "2026-08-01", day.Date)
	assert.Contains(t, provider.calls, "history:Boston:2026-08-01")
}

func TestRegistry_HistoricalWeatherBadDate(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	require.NoError(t, registry.Add(ctx, "Boston"))
	provider.calls = nil

	for _, date := range []string{"01-08-2026", "2026/08/01", "yesterday", "2026-13-40"} {
		_, err := registry.HistoricalWeather(ctx, "Boston", date)
		assert.ErrorIs(t, err, favourites.ErrInvalidDate, "date %q", date)
	}
	assert.Empty(t, provider.calls, "a malformed date must not reach the provider")
}

func TestRegistry_HistoricalWeatherEmpty(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	_, err := registry.HistoricalWeather(ctx, "Boston", "2026-08-01")
	assert.ErrorIs(t, err, favourites.ErrEmpty)
	assert.Empty(t, provider.calls)
}

func TestRegistry_Forecast(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))

	forecast, err := registry.Forecast(ctx, "Boston", 3)
	require.NoError(t, err)
	require.Len(t, forecast, 3)
	assert.Equal(t, "2026-09-01", forecast[0].Date)
	assert.Equal(t, "2026-09-03", forecast[2].Date)
}

func TestRegistry_ForecastDaysOutOfRange(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	registry := newTestRegistry(provider)

	require.NoError(t, registry.Add(ctx, "Boston"))
	provider.calls = nil

	for _, days := range []int{0, -1, 11, 100} {
		_, err := registry.Forecast(ctx, "Boston", days)
		assert.ErrorIs(t, err, favourites.ErrInvalidDays, "days %d", days)
	}
	assert.Empty(t, provider.calls)

	// The boundaries themselves are accepted.
	_, err := registry.Forecast(ctx, "Boston", 1)
	assert.NoError(t, err)
	_, err = registry.Forecast(ctx, "Boston", 10)
	assert.NoError(t, err)
}

func TestRegistry_ForecastNotFavourite(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	require.NoError(t, registry.Add(ctx, "Boston"))

	_, err := registry.Forecast(ctx, "London", 3)
	assert.ErrorIs(t, err, favourites.ErrNotFavourite)
}

func TestRegistry_ValidateLocation(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(newFakeProvider())

	assert.NoError(t, registry.ValidateLocation(ctx, "Boston"))
	assert.Error(t, registry.ValidateLocation(ctx, "Atlantis"))
}

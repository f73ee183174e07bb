// Package weatherapi provides a client for the WeatherAPI.com REST API.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/weatherdeck/weatherdeck/internal/provider/resilience"
	"github.com/weatherdeck/weatherdeck/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "weatherapi"

	// DefaultBaseURL is the WeatherAPI.com API base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"
)

// Client errors.
var (
	// ErrInvalidLocation is returned when the provider rejects a location name.
	// Any non-200 response is treated as a rejected location.
	ErrInvalidLocation = errors.New("invalid location name")

	// ErrMalformedResponse is returned when a 200 response is missing a field
	// the mapping requires.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MetricsRecorder records timing and outcome for provider requests.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the WeatherAPI.com client.
type ClientConfig struct {
	// APIKey is the WeatherAPI.com API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default client with a circuit breaker and no retries is
	// created. Lookups must not be silently retried.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger

	// Metrics records per-request timing and outcome. Optional.
	Metrics MetricsRecorder
}

// Client is a WeatherAPI.com API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
	metrics    MetricsRecorder
}

// NewClient creates a new WeatherAPI.com client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:       ProviderName,
			Timeout:    timeout,
			MaxRetries: 0,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Current fetches the current weather for a location.
func (c *Client) Current(ctx context.Context, location string) (*weather.Current, error) {
	params := url.Values{}
	params.Set("q", location)

	var payload currentPayload
	if err := c.get(ctx, "/current.json", location, params, &payload); err != nil {
		return nil, err
	}

	current, err := toCurrent(location, &payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("location", location).Msg("current weather fetched")
	return current, nil
}

// History fetches the weather for a single past calendar day.
// The date must be in YYYY-MM-DD form; the first returned day is mapped.
func (c *Client) History(ctx context.Context, location, date string) (*weather.Day, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("dt", date)

	var payload forecastPayload
	if err := c.get(ctx, "/history.json", location, params, &payload); err != nil {
		return nil, err
	}

	days, err := toDays(location, &payload)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no days returned for %s", ErrMalformedResponse, date)
	}

	c.logger.Info().Str("location", location).Str("date", date).Msg("historical weather fetched")
	return &days[0], nil
}

// Forecast fetches the forecast for the next days calendar days,
// preserving the provider-returned day order.
func (c *Client) Forecast(ctx context.Context, location string, days int) ([]weather.Day, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	var payload forecastPayload
	if err := c.get(ctx, "/forecast.json", location, params, &payload); err != nil {
		return nil, err
	}

	mapped, err := toDays(location, &payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("location", location).Int("days", days).Msg("forecast fetched")
	return mapped, nil
}

// Validate checks that the provider recognises the location name.
// A 200 from the timezone endpoint means the name is valid.
func (c *Client) Validate(ctx context.Context, location string) error {
	params := url.Values{}
	params.Set("q", location)

	return c.get(ctx, "/timezone.json", location, params, nil)
}

// get issues one provider request and decodes the response into out (if
// non-nil). Any non-200 status is an ErrInvalidLocation; transport errors
// propagate wrapped.
func (c *Client) get(ctx context.Context, endpoint, location string, params url.Values, out any) (err error) {
	if c.metrics != nil {
		operation := strings.TrimSuffix(strings.TrimPrefix(endpoint, "/"), ".json")
		start := time.Now()
		defer func() { c.metrics.RecordRequest(ProviderName, operation, time.Since(start), err) }()
	}

	params.Set("key", c.apiKey)

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weatherapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("location", location).
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("provider rejected location")
		return fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

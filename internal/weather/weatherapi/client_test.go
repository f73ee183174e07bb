package weatherapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherdeck/weatherdeck/internal/weather/weatherapi"
)

func currentBody(tempC float64, condition string) map[string]interface{} {
	return map[string]interface{}{
		"current": map[string]interface{}{
			"temp_c":      tempC,
			"feelslike_c": tempC - 1.5,
			"humidity":    64,
			"wind_kph":    11.2,
			"wind_dir":    "NW",
			"pressure_mb": 1012.0,
			"precip_mm":   0.1,
			"cloud":       25,
			"condition":   map[string]interface{}{"text": condition},
		},
	}
}

func dayBody(date string) map[string]interface{} {
	return map[string]interface{}{
		"date": date,
		"day": map[string]interface{}{
			"mintemp_c":            4.1,
			"maxtemp_c":            12.8,
			"avgtemp_c":            8.3,
			"maxwind_kph":          22.7,
			"totalprecip_mm":       3.4,
			"totalsnow_cm":         0.0,
			"avgvis_km":            9.6,
			"avghumidity":          71.0,
			"daily_chance_of_rain": 80,
			"daily_chance_of_snow": 5,
			"condition":            map[string]interface{}{"text": "Light rain"},
		},
	}
}

func newTestClient(serverURL string) *weatherapi.Client {
	return weatherapi.NewClient(weatherapi.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		HTTPClient: http.DefaultClient,
	})
}

func TestClient_Current(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Boston", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(currentBody(22.5, "Clear"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	current, err := client.Current(context.Background(), "Boston")
	require.NoError(t, err)

	assert.Equal(t, "Boston", current.Name)
	assert.Equal(t, 22.5, current.TemperatureC)
	assert.Equal(t, 21.0, current.FeelsLikeC)
	assert.Equal(t, 64, current.Humidity)
	assert.Equal(t, 11.2, current.WindKPH)
	assert.Equal(t, "NW", current.WindDir)
	assert.Equal(t, 1012.0, current.PressureMB)
	assert.Equal(t, 0.1, current.PrecipMM)
	assert.Equal(t, 25, current.Cloud)
	assert.Equal(t, "Clear", current.Condition)
}

func TestClient_Current_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Current(context.Background(), "Nowheresville")
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrInvalidLocation)
}

func TestClient_Current_MissingField(t *testing.T) {
	body := currentBody(22.5, "Clear")
	delete(body["current"].(map[string]interface{}), "temp_c")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Current(context.Background(), "Boston")
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "temp_c")
}

func TestClient_Current_MissingConditionText(t *testing.T) {
	body := currentBody(22.5, "Clear")
	body["current"].(map[string]interface{})["condition"] = map[string]interface{}{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Current(context.Background(), "Boston")
	assert.ErrorIs(t, err, weatherapi.ErrMalformedResponse)
}

func TestClient_History(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history.json", r.URL.Path)
		assert.Equal(t, "2022-05-01", r.URL.Query().Get("dt"))

		response := map[string]interface{}{
			"forecast": map[string]interface{}{
				"forecastday": []interface{}{dayBody("2022-05-01")},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	day, err := client.History(context.Background(), "Boston", "2022-05-01")
	require.NoError(t, err)

	assert.Equal(t, "Boston", day.Name)
	assert.Equal(t, "2022-05-01", day.Date)
	assert.Equal(t, 4.1, day.MinTempC)
	assert.Equal(t, 12.8, day.MaxTempC)
	assert.Equal(t, 8.3, day.AvgTempC)
	assert.Equal(t, 22.7, day.MaxWindKPH)
	assert.Equal(t, 3.4, day.TotalPrecipMM)
	assert.Equal(t, 0.0, day.TotalSnowCM)
	assert.Equal(t, 9.6, day.AvgVisKM)
	assert.Equal(t, 71, day.AvgHumidity)
	assert.Equal(t, 80, day.ChanceOfRain)
	assert.Equal(t, 5, day.ChanceOfSnow)
	assert.Equal(t, "Light rain", day.Condition)
}

func TestClient_History_NoDaysReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := map[string]interface{}{
			"forecast": map[string]interface{}{
				"forecastday": []interface{}{},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.History(context.Background(), "Boston", "2022-05-01")
	assert.ErrorIs(t, err, weatherapi.ErrMalformedResponse)
}

func TestClient_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))
		assert.Equal(t, "no", r.URL.Query().Get("alerts"))

		response := map[string]interface{}{
			"forecast": map[string]interface{}{
				"forecastday": []interface{}{
					dayBody("2024-03-01"),
					dayBody("2024-03-02"),
					dayBody("2024-03-03"),
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	days, err := client.Forecast(context.Background(), "Boston", 3)
	require.NoError(t, err)
	require.Len(t, days, 3)

	// Provider order is preserved.
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, "2024-03-02", days[1].Date)
	assert.Equal(t, "2024-03-03", days[2].Date)
}

func TestClient_Forecast_MissingDayField(t *testing.T) {
	body := dayBody("2024-03-01")
	delete(body["day"].(map[string]interface{}), "daily_chance_of_snow")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := map[string]interface{}{
			"forecast": map[string]interface{}{
				"forecastday": []interface{}{body},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Forecast(context.Background(), "Boston", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, weatherapi.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "daily_chance_of_snow")
}

func TestClient_Validate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timezone.json", r.URL.Path)

		if r.URL.Query().Get("q") == "Boston" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"location": map[string]interface{}{"name": "Boston"},
			})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	require.NoError(t, client.Validate(context.Background(), "Boston"))

	err := client.Validate(context.Background(), "xyzzy")
	assert.ErrorIs(t, err, weatherapi.ErrInvalidLocation)
}

func TestClient_Current_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // Connection refused from here on.

	client := newTestClient(server.URL)

	_, err := client.Current(context.Background(), "Boston")
	require.Error(t, err)
	assert.False(t, errors.Is(err, weatherapi.ErrInvalidLocation))
	assert.False(t, errors.Is(err, weatherapi.ErrMalformedResponse))
}

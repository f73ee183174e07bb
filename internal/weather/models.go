// Package weather defines the domain records produced by weather lookups.
//
// All values are metric: temperatures in Celsius, wind in kph, precipitation
// in mm, snow in cm, visibility in km, pressure in millibars.
package weather

// Current is a snapshot of the present conditions at a location.
// It is produced fresh on every request and never cached.
type Current struct {
	// Name is the location name the lookup was made for.
	Name string

	// TemperatureC is the air temperature.
	TemperatureC float64

	// FeelsLikeC is the apparent temperature.
	FeelsLikeC float64

	// Humidity is the relative humidity percentage (0-100).
	Humidity int

	// WindKPH is the wind speed.
	WindKPH float64

	// WindDir is the compass wind direction (e.g. "NW").
	WindDir string

	// PressureMB is the atmospheric pressure.
	PressureMB float64

	// PrecipMM is the precipitation amount.
	PrecipMM float64

	// Cloud is the cloud cover percentage (0-100).
	Cloud int

	// Condition is the provider's free-text condition (e.g. "Partly cloudy").
	Condition string
}

// Day is a single calendar day of historical or forecast weather.
type Day struct {
	// Name is the location name the lookup was made for.
	Name string

	// Date is the calendar day in YYYY-MM-DD form.
	Date string

	MinTempC float64
	MaxTempC float64
	AvgTempC float64

	// MaxWindKPH is the maximum wind speed over the day.
	MaxWindKPH float64

	// TotalPrecipMM is the total precipitation over the day.
	TotalPrecipMM float64

	// TotalSnowCM is the total snowfall over the day.
	TotalSnowCM float64

	// AvgVisKM is the average visibility.
	AvgVisKM float64

	// AvgHumidity is the average relative humidity percentage (0-100).
	AvgHumidity int

	// ChanceOfRain is the chance of rain percentage (0-100).
	ChanceOfRain int

	// ChanceOfSnow is the chance of snow percentage (0-100).
	ChanceOfSnow int

	// Condition is the provider's free-text condition.
	Condition string
}

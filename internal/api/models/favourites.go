package models

import "github.com/weatherdeck/weatherdeck/internal/weather"

// AddFavouriteRequest is the request body for adding a favourite location.
type AddFavouriteRequest struct {
	Location string `json:"location"`
}

// FavouritesResponse lists a user's favourite locations in insertion order.
type FavouritesResponse struct {
	Username  string   `json:"username"`
	Locations []string `json:"locations"`
}

// FavouritesCountResponse reports how many favourites a user has.
type FavouritesCountResponse struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// CurrentWeather is the response shape for a current conditions lookup.
type CurrentWeather struct {
	Location     string  `json:"location"`
	TemperatureC float64 `json:"temperatureC"`
	FeelsLikeC   float64 `json:"feelsLikeC"`
	Humidity     int     `json:"humidity"`
	WindKPH      float64 `json:"windKph"`
	WindDir      string  `json:"windDir"`
	PressureMB   float64 `json:"pressureMb"`
	PrecipMM     float64 `json:"precipMm"`
	Cloud        int     `json:"cloud"`
	Condition    string  `json:"condition"`
}

// NewCurrentWeather maps a domain record to its response shape.
func NewCurrentWeather(c *weather.Current) CurrentWeather {
	return CurrentWeather{
		Location:     c.Name,
		TemperatureC: c.TemperatureC,
		FeelsLikeC:   c.FeelsLikeC,
		Humidity:     c.Humidity,
		WindKPH:      c.WindKPH,
		WindDir:      c.WindDir,
		PressureMB:   c.PressureMB,
		PrecipMM:     c.PrecipMM,
		Cloud:        c.Cloud,
		Condition:    c.Condition,
	}
}

// NewCurrentWeatherList maps a slice of domain records, preserving order.
func NewCurrentWeatherList(records []weather.Current) []CurrentWeather {
	out := make([]CurrentWeather, 0, len(records))
	for i := range records {
		out = append(out, NewCurrentWeather(&records[i]))
	}
	return out
}

// DayWeather is the response shape for one historical or forecast day.
type DayWeather struct {
	Location      string  `json:"location"`
	Date          string  `json:"date"`
	MinTempC      float64 `json:"minTempC"`
	MaxTempC      float64 `json:"maxTempC"`
	AvgTempC      float64 `json:"avgTempC"`
	MaxWindKPH    float64 `json:"maxWindKph"`
	TotalPrecipMM float64 `json:"totalPrecipMm"`
	TotalSnowCM   float64 `json:"totalSnowCm"`
	AvgVisKM      float64 `json:"avgVisKm"`
	AvgHumidity   int     `json:"avgHumidity"`
	ChanceOfRain  int     `json:"chanceOfRain"`
	ChanceOfSnow  int     `json:"chanceOfSnow"`
	Condition     string  `json:"condition"`
}

// NewDayWeather maps a domain day to its response shape.
func NewDayWeather(d *weather.Day) DayWeather {
	return DayWeather{
		Location:      d.Name,
		Date:          d.Date,
		MinTempC:      d.MinTempC,
		MaxTempC:      d.MaxTempC,
		AvgTempC:      d.AvgTempC,
		MaxWindKPH:    d.MaxWindKPH,
		TotalPrecipMM: d.TotalPrecipMM,
		TotalSnowCM:   d.TotalSnowCM,
		AvgVisKM:      d.AvgVisKM,
		AvgHumidity:   d.AvgHumidity,
		ChanceOfRain:  d.ChanceOfRain,
		ChanceOfSnow:  d.ChanceOfSnow,
		Condition:     d.Condition,
	}
}

// NewDayWeatherList maps a slice of domain days, preserving order.
func NewDayWeatherList(days []weather.Day) []DayWeather {
	out := make([]DayWeather, 0, len(days))
	for i := range days {
		out = append(out, NewDayWeather(&days[i]))
	}
	return out
}

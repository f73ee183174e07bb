package weatherapi

import (
	"fmt"

	"github.com/weatherdeck/weatherdeck/internal/weather"
)

// WeatherAPI.com response payloads. The provider is untrusted, so every
// consumed field is a pointer and mapping fails on any missing one instead of
// defaulting it to zero.

type conditionPayload struct {
	Text *string `json:"text"`
}

type currentPayload struct {
	Current *currentBlock `json:"current"`
}

type currentBlock struct {
	TempC      *float64          `json:"temp_c"`
	FeelsLikeC *float64          `json:"feelslike_c"`
	Humidity   *float64          `json:"humidity"`
	WindKPH    *float64          `json:"wind_kph"`
	WindDir    *string           `json:"wind_dir"`
	PressureMB *float64          `json:"pressure_mb"`
	PrecipMM   *float64          `json:"precip_mm"`
	Cloud      *float64          `json:"cloud"`
	Condition  *conditionPayload `json:"condition"`
}

// forecastPayload covers both /history.json and /forecast.json, which share
// the forecast.forecastday[] shape.
type forecastPayload struct {
	Forecast *forecastBlock `json:"forecast"`
}

type forecastBlock struct {
	ForecastDay []forecastDayPayload `json:"forecastday"`
}

type forecastDayPayload struct {
	Date *string   `json:"date"`
	Day  *dayBlock `json:"day"`
}

type dayBlock struct {
	MinTempC      *float64          `json:"mintemp_c"`
	MaxTempC      *float64          `json:"maxtemp_c"`
	AvgTempC      *float64          `json:"avgtemp_c"`
	MaxWindKPH    *float64          `json:"maxwind_kph"`
	TotalPrecipMM *float64          `json:"totalprecip_mm"`
	TotalSnowCM   *float64          `json:"totalsnow_cm"`
	AvgVisKM      *float64          `json:"avgvis_km"`
	AvgHumidity   *float64          `json:"avghumidity"`
	ChanceOfRain  *float64          `json:"daily_chance_of_rain"`
	ChanceOfSnow  *float64          `json:"daily_chance_of_snow"`
	Condition     *conditionPayload `json:"condition"`
}

// toCurrent maps a decoded /current.json payload into a weather.Current.
func toCurrent(name string, p *currentPayload) (*weather.Current, error) {
	cur := p.Current
	if cur == nil {
		return nil, missingField("current")
	}

	switch {
	case cur.TempC == nil:
		return nil, missingField("current.temp_c")
	case cur.FeelsLikeC == nil:
		return nil, missingField("current.feelslike_c")
	case cur.Humidity == nil:
		return nil, missingField("current.humidity")
	case cur.WindKPH == nil:
		return nil, missingField("current.wind_kph")
	case cur.WindDir == nil:
		return nil, missingField("current.wind_dir")
	case cur.PressureMB == nil:
		return nil, missingField("current.pressure_mb")
	case cur.PrecipMM == nil:
		return nil, missingField("current.precip_mm")
	case cur.Cloud == nil:
		return nil, missingField("current.cloud")
	case cur.Condition == nil || cur.Condition.Text == nil:
		return nil, missingField("current.condition.text")
	}

	return &weather.Current{
		Name:         name,
		TemperatureC: *cur.TempC,
		FeelsLikeC:   *cur.FeelsLikeC,
		Humidity:     int(*cur.Humidity),
		WindKPH:      *cur.WindKPH,
		WindDir:      *cur.WindDir,
		PressureMB:   *cur.PressureMB,
		PrecipMM:     *cur.PrecipMM,
		Cloud:        int(*cur.Cloud),
		Condition:    *cur.Condition.Text,
	}, nil
}

// toDays maps a decoded forecast.forecastday[] payload into weather.Day
// records, one per returned day, preserving the provider order.
func toDays(name string, p *forecastPayload) ([]weather.Day, error) {
	if p.Forecast == nil {
		return nil, missingField("forecast")
	}

	days := make([]weather.Day, 0, len(p.Forecast.ForecastDay))
	for i, fd := range p.Forecast.ForecastDay {
		day, err := toDay(name, &fd)
		if err != nil {
			return nil, fmt.Errorf("forecastday[%d]: %w", i, err)
		}
		days = append(days, *day)
	}
	return days, nil
}

func toDay(name string, fd *forecastDayPayload) (*weather.Day, error) {
	if fd.Date == nil {
		return nil, missingField("date")
	}
	d := fd.Day
	if d == nil {
		return nil, missingField("day")
	}

	switch {
	case d.MinTempC == nil:
		return nil, missingField("day.mintemp_c")
	case d.MaxTempC == nil:
		return nil, missingField("day.maxtemp_c")
	case d.AvgTempC == nil:
		return nil, missingField("day.avgtemp_c")
	case d.MaxWindKPH == nil:
		return nil, missingField("day.maxwind_kph")
	case d.TotalPrecipMM == nil:
		return nil, missingField("day.totalprecip_mm")
	case d.TotalSnowCM == nil:
		return nil, missingField("day.totalsnow_cm")
	case d.AvgVisKM == nil:
		return nil, missingField("day.avgvis_km")
	case d.AvgHumidity == nil:
		return nil, missingField("day.avghumidity")
	case d.ChanceOfRain == nil:
		return nil, missingField("day.daily_chance_of_rain")
	case d.ChanceOfSnow == nil:
		return nil, missingField("day.daily_chance_of_snow")
	case d.Condition == nil || d.Condition.Text == nil:
		return nil, missingField("day.condition.text")
	}

	return &weather.Day{
		Name:          name,
		Date:          *fd.Date,
		MinTempC:      *d.MinTempC,
		MaxTempC:      *d.MaxTempC,
		AvgTempC:      *d.AvgTempC,
		MaxWindKPH:    *d.MaxWindKPH,
		TotalPrecipMM: *d.TotalPrecipMM,
		TotalSnowCM:   *d.TotalSnowCM,
		AvgVisKM:      *d.AvgVisKM,
		AvgHumidity:   int(*d.AvgHumidity),
		ChanceOfRain:  int(*d.ChanceOfRain),
		ChanceOfSnow:  int(*d.ChanceOfSnow),
		Condition:     *d.Condition.Text,
	}, nil
}

func missingField(path string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedResponse, path)
}

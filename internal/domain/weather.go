package domain

import "time"

// WeatherSnapshot is a parsed weather API response
type WeatherSnapshot struct {
	Fact      *WeatherFact    `json:"fact"`
	Forecasts []DailyForecast `json:"forecasts"`
}

// WeatherFact holds the current conditions
type WeatherFact struct {
	Condition  string  `json:"condition"`
	Temp       int     `json:"temp"`
	FeelsLike  *int    `json:"feels_like"`
	WindDir    string  `json:"wind_dir"`
	WindSpeed  float64 `json:"wind_speed"`
	Humidity   int     `json:"humidity"`
	PressureMM int     `json:"pressure_mm"`
}

// FeelsLikeTemp returns the apparent temperature, falling back to Temp
func (f WeatherFact) FeelsLikeTemp() int {
	if f.FeelsLike == nil {
		return f.Temp
	}
	return *f.FeelsLike
}

// DailyForecast is one day of the forecast
type DailyForecast struct {
	Date  string        `json:"date"` // YYYY-MM-DD
	Parts ForecastParts `json:"parts"`
}

// ForecastParts holds per-part-of-day forecasts; only the day part is used
type ForecastParts struct {
	Day *DayPart `json:"day"`
}

// DayPart is the daytime forecast
type DayPart struct {
	TempMin   int    `json:"temp_min"`
	TempMax   int    `json:"temp_max"`
	Condition string `json:"condition"`
}

// DisplayDate returns date in DD.MM format, or "Завтра" if the date can't be parsed
func (d DailyForecast) DisplayDate() string {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return "Завтра"
	}
	return date.Format("02.01")
}

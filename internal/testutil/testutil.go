package testutil

import (
	"assistant/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCity creates a test city
func NewTestCity(name, title string, lat, lon float64) domain.City {
	return domain.City{
		Name:      name,
		Title:     title,
		Latitude:  lat,
		Longitude: lon,
	}
}

// NewTestSnapshot creates a snapshot with the given current conditions and no forecast
func NewTestSnapshot(condition string, temp int, windSpeed float64) *domain.WeatherSnapshot {
	return &domain.WeatherSnapshot{
		Fact: &domain.WeatherFact{
			Condition:  condition,
			Temp:       temp,
			WindDir:    "n",
			WindSpeed:  windSpeed,
			Humidity:   80,
			PressureMM: 745,
		},
	}
}

// NewTestProduct creates a test product
func NewTestProduct(id, name, brand string, price int) domain.Product {
	return domain.Product{
		ID:      id,
		Name:    name,
		Brand:   brand,
		Price:   price,
		Rating:  4.5,
		LinkURL: "https://www.wildberries.ru/catalog/" + id + "/detail.aspx",
		InStock: true,
	}
}

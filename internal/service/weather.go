package service

import (
	"context"
	"errors"
	"fmt"

	"assistant/internal/domain"
	"assistant/internal/weather"

	"go.uber.org/zap"
)

// ErrCityNotFound is returned when the input doesn't match any supported city
var ErrCityNotFound = errors.New("city not found")

// WeatherService resolves cities and fetches their weather
type WeatherService struct {
	cities  map[string]domain.City
	titles  []string
	fetcher weather.Fetcher
	logger  *zap.Logger
}

// NewWeatherService creates a new weather service over a fixed city table
func NewWeatherService(cities []domain.City, fetcher weather.Fetcher, logger *zap.Logger) *WeatherService {
	s := &WeatherService{
		cities:  make(map[string]domain.City, len(cities)),
		fetcher: fetcher,
		logger:  logger,
	}

	seenTitles := make(map[string]bool)
	for _, c := range cities {
		key := domain.NormalizeCityName(c.Name)
		if key == "" {
			continue
		}
		s.cities[key] = c
		if !seenTitles[c.Title] {
			seenTitles[c.Title] = true
			s.titles = append(s.titles, c.Title)
		}
	}

	return s
}

// ResolveCity finds a city by case-insensitive, whitespace-trimmed exact name
func (s *WeatherService) ResolveCity(input string) (domain.City, error) {
	city, ok := s.cities[domain.NormalizeCityName(input)]
	if !ok {
		return domain.City{}, ErrCityNotFound
	}
	return city, nil
}

// SupportedCities returns display names of supported cities, aliases collapsed
func (s *WeatherService) SupportedCities() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

// Forecast resolves the city and fetches its weather.
// The fetcher is not called when the city is unknown.
func (s *WeatherService) Forecast(ctx context.Context, input string) (domain.City, *domain.WeatherSnapshot, error) {
	city, err := s.ResolveCity(input)
	if err != nil {
		return domain.City{}, nil, err
	}

	snapshot, err := s.fetcher.Forecast(ctx, city.Latitude, city.Longitude)
	if err != nil {
		return city, nil, fmt.Errorf("fetch weather for %s: %w", city.Name, err)
	}

	s.logger.Debug("Weather fetched",
		zap.String("city", city.Name),
		zap.Bool("has_fact", snapshot != nil && snapshot.Fact != nil),
	)

	return city, snapshot, nil
}

package testutil

import (
	"context"

	"assistant/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock for the weather fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Forecast(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherSnapshot), args.Error(1)
}

// MockReferenceSource is a mock for repository.ReferenceSource
type MockReferenceSource struct {
	mock.Mock
}

func (m *MockReferenceSource) ListCities(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockReferenceSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

package repository

import (
	"context"

	"assistant/internal/domain"
)

// CityRepository provides the supported weather locations
type CityRepository interface {
	ListCities(ctx context.Context) ([]domain.City, error)
}

// ProductRepository provides the product catalog
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ReferenceSource is everything the bot loads once at startup
type ReferenceSource interface {
	CityRepository
	ProductRepository
}

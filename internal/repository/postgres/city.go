package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"assistant/internal/domain"
)

// CityRepo implements repository.CityRepository
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo creates a new city repository
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

// ListCities returns all supported cities including aliases
func (r *CityRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	query := `
		SELECT name, title, latitude, longitude
		FROM cities
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Title, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		c.Name = domain.NormalizeCityName(c.Name)
		cities = append(cities, c)
	}

	return cities, rows.Err()
}

// Source combines both repositories into a repository.ReferenceSource
type Source struct {
	*CityRepo
	*ProductRepo
}

// NewSource creates a reference source backed by PostgreSQL
func NewSource(db *sql.DB) *Source {
	return &Source{
		CityRepo:    NewCityRepo(db),
		ProductRepo: NewProductRepo(db),
	}
}

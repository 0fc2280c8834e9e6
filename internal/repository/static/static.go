package static

import (
	"context"

	"assistant/internal/domain"
)

// Source serves the compiled-in reference tables
type Source struct{}

// NewSource creates a new static reference source
func NewSource() *Source {
	return &Source{}
}

// ListCities returns a copy of the city table
func (s *Source) ListCities(_ context.Context) ([]domain.City, error) {
	out := make([]domain.City, len(cities))
	copy(out, cities)
	return out, nil
}

// ListProducts returns a copy of the catalog in display order
func (s *Source) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(catalog))
	copy(out, catalog)
	return out, nil
}

var cities = []domain.City{
	{Name: "москва", Title: "Москва", Latitude: 55.7558, Longitude: 37.6176},
	{Name: "санкт-петербург", Title: "Санкт-Петербург", Latitude: 59.9343, Longitude: 30.3351},
	{Name: "спб", Title: "Санкт-Петербург", Latitude: 59.9343, Longitude: 30.3351},
	{Name: "питер", Title: "Санкт-Петербург", Latitude: 59.9343, Longitude: 30.3351},
	{Name: "салехард", Title: "Салехард", Latitude: 66.5299, Longitude: 66.6136},
	{Name: "тюмень", Title: "Тюмень", Latitude: 57.1522, Longitude: 65.5272},
	{Name: "самара", Title: "Самара", Latitude: 53.1959, Longitude: 50.1002},
	{Name: "тольятти", Title: "Тольятти", Latitude: 53.5078, Longitude: 49.4204},
	{Name: "новокуйбышевск", Title: "Новокуйбышевск", Latitude: 53.0959, Longitude: 49.9462},
}

func price(v int) *int { return &v }

var catalog = []domain.Product{
	{
		ID:           "001",
		Name:         "Смартфон Samsung Galaxy A54 5G",
		Brand:        "Samsung",
		Price:        25999,
		OldPrice:     price(29999),
		Rating:       4.5,
		ReviewsCount: 1250,
		ImageURL:     "https://images.wbstatic.net/cb300x300/1000000-1000999/1000123-1000123-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/1000123/detail.aspx",
		Description:  "Смартфон с камерой 50 МП и экраном 6.4 дюйма",
		Discount:     "-13%",
		InStock:      true,
	},
	{
		ID:           "002",
		Name:         "Наушники Sony WH-1000XM4",
		Brand:        "Sony",
		Price:        18990,
		OldPrice:     price(21990),
		Rating:       4.8,
		ReviewsCount: 3420,
		ImageURL:     "https://images.wbstatic.net/cb300x300/2000000-2000999/2000234-2000234-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/2000234/detail.aspx",
		Description:  "Беспроводные наушники с шумоподавлением",
		Discount:     "-14%",
		InStock:      true,
	},
	{
		ID:           "003",
		Name:         "Кроссовки Nike Air Max 90",
		Brand:        "Nike",
		Price:        8990,
		OldPrice:     price(10990),
		Rating:       4.6,
		ReviewsCount: 890,
		ImageURL:     "https://images.wbstatic.net/cb300x300/3000000-3000999/3000567-3000567-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/3000567/detail.aspx",
		Description:  "Классические кроссовки с технологией Air",
		Discount:     "-18%",
		InStock:      true,
	},
	{
		ID:           "004",
		Name:         "Планшет iPad Air 10.9",
		Brand:        "Apple",
		Price:        45990,
		OldPrice:     price(52990),
		Rating:       4.7,
		ReviewsCount: 567,
		ImageURL:     "https://images.wbstatic.net/cb300x300/4000000-4000999/4000789-4000789-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/4000789/detail.aspx",
		Description:  "Планшет с чипом M1 и дисплеем Liquid Retina",
		Discount:     "-13%",
		InStock:      true,
	},
	{
		ID:           "005",
		Name:         "Умная колонка Яндекс Алиса",
		Brand:        "Яндекс",
		Price:        3990,
		OldPrice:     price(4990),
		Rating:       4.4,
		ReviewsCount: 2150,
		ImageURL:     "https://images.wbstatic.net/cb300x300/5000000-5000999/5000123-5000123-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/5000123/detail.aspx",
		Description:  "Умная колонка с голосовым помощником",
		Discount:     "-20%",
		InStock:      true,
	},
	{
		ID:           "006",
		Name:         "Фитнес-браслет Xiaomi Mi Band 7",
		Brand:        "Xiaomi",
		Price:        2990,
		OldPrice:     price(3990),
		Rating:       4.3,
		ReviewsCount: 1840,
		ImageURL:     "https://images.wbstatic.net/cb300x300/6000000-6000999/6000789-6000789-1.jpg",
		LinkURL:      "https://www.wildberries.ru/catalog/6000789/detail.aspx",
		Description:  "Фитнес-браслет с AMOLED дисплеем",
		Discount:     "-25%",
		InStock:      true,
	},
}

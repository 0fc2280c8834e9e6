package service

import (
	"sort"
	"strings"

	"assistant/internal/domain"
)

// MaxSearchResults caps a single product search
const MaxSearchResults = 10

// ProductService searches the fixed catalog
type ProductService struct {
	catalog []domain.Product
}

// NewProductService creates a new product service. The catalog is never modified.
func NewProductService(catalog []domain.Product) *ProductService {
	products := make([]domain.Product, len(catalog))
	copy(products, catalog)
	return &ProductService{catalog: products}
}

// Search returns catalog entries whose name, brand or description contain query,
// case-insensitively, in catalog order
func (s *ProductService) Search(query string, filter domain.ProductFilter) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var results []domain.Product
	for _, p := range s.catalog {
		if !p.Matches(needle) || !filter.Accepts(p) {
			continue
		}
		results = append(results, p)
		if len(results) == MaxSearchResults {
			break
		}
	}
	return results
}

// Deals returns discounted products, biggest discount first
func (s *ProductService) Deals() []domain.Product {
	var deals []domain.Product
	for _, p := range s.catalog {
		if p.OldPrice != nil {
			deals = append(deals, p)
		}
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].DiscountPercent() > deals[j].DiscountPercent()
	})
	return deals
}

package domain

import (
	"strconv"
	"strings"
)

// Product is a catalog entry
type Product struct {
	ID           string
	Name         string
	Brand        string
	Price        int
	OldPrice     *int
	Rating       float64
	ReviewsCount int
	ImageURL     string
	LinkURL      string
	Description  string
	Discount     string // e.g. "-13%"
	InStock      bool
}

// DiscountPercent parses Discount into a positive percentage, 0 if absent or malformed
func (p Product) DiscountPercent() int {
	raw := strings.TrimSpace(p.Discount)
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimSuffix(raw, "%")
	percent, err := strconv.Atoi(raw)
	if err != nil || percent < 0 {
		return 0
	}
	return percent
}

// Matches reports whether query (already lowercased) is a substring of name, brand or description
func (p Product) Matches(query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

// ProductFilter narrows search results. Zero values mean "no limit".
type ProductFilter struct {
	MinPrice  int
	MaxPrice  int
	MinRating float64
}

// Accepts reports whether p passes the filter
func (f ProductFilter) Accepts(p Product) bool {
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	return true
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"assistant/internal/domain"
)

// ProductRepo implements repository.ProductRepository
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ListProducts returns the catalog in display order
func (r *ProductRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, brand, price, old_price, rating, reviews_count,
			image_url, link_url, description, discount, in_stock
		FROM products
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var oldPrice sql.NullInt64
		err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Price, &oldPrice, &p.Rating, &p.ReviewsCount,
			&p.ImageURL, &p.LinkURL, &p.Description, &p.Discount, &p.InStock,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		if oldPrice.Valid {
			v := int(oldPrice.Int64)
			p.OldPrice = &v
		}

		products = append(products, p)
	}

	return products, rows.Err()
}

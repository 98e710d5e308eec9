package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID    uuid.UUID
	FeaturedOnly  bool
	AvailableOnly bool
}

func (r *ProductRepository) ListProducts(filter ProductFilter) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category_id,
			   stock_quantity, is_featured, is_available, created_at
		FROM products
		WHERE ($1::uuid IS NULL OR category_id = $1)
		  AND (NOT $2 OR is_featured)
		  AND (NOT $3 OR is_available)
		ORDER BY name ASC
	`

	var categoryID interface{}
	if filter.CategoryID != uuid.Nil {
		categoryID = filter.CategoryID
	}

	rows, err := r.db.Query(query, categoryID, filter.FeaturedOnly, filter.AvailableOnly)
	if err != nil {
		return nil, fmt.Errorf("products fetch error: %v", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("product scan error: %v", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetProductByID(id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category_id,
			   stock_quantity, is_featured, is_available, created_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product fetch error: %v", err)
	}

	return product, nil
}

func (r *ProductRepository) ListCategories() ([]*domain.Category, error) {
	query := `
		SELECT id, name, description, image_url, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("categories fetch error: %v", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{}
		var description, imageURL sql.NullString

		err := rows.Scan(&category.ID, &category.Name, &description, &imageURL, &category.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("category scan error: %v", err)
		}

		category.Description = description.String
		category.ImageURL = imageURL.String
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var description, imageURL sql.NullString
	var stock sql.NullInt64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&product.Price,
		&imageURL,
		&product.CategoryID,
		&stock,
		&product.IsFeatured,
		&product.IsAvailable,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	product.StockQuantity = int(stock.Int64)

	return product, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// ProductRepository implements product.Repository interface using PostgreSQL.
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Verify interface implementation at compile time.
var _ product.Repository = (*ProductRepository)(nil)

const productColumns = `product_id, product_name, price, category_id, description, created_at, updated_at`

// Save inserts the product or replaces the stored row with the same id.
// Products without id are stored under a generated one.
func (r *ProductRepository) Save(ctx context.Context, entity *product.Product) (*product.Product, error) {
	entity = product.EnsureID(entity)

	query := `
		INSERT INTO mst_product (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			price = EXCLUDED.price,
			category_id = EXCLUDED.category_id,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		entity.ID(),
		entity.Name().String(),
		entity.Price().Value(),
		entity.CategoryID().String(),
		entity.Description(),
		entity.CreatedAt(),
		entity.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, product.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return entity, nil
}

// FindByID retrieves a product by its id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM mst_product WHERE product_id = $1`

	var dto productDTO
	err := r.db.QueryRowContext(ctx, query, id).Scan(dto.fields()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return dto.ToEntity()
}

// FindAll retrieves every product ordered by name.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM mst_product ORDER BY product_name ASC`
	return r.queryProducts(ctx, query)
}

// FindByCategoryID retrieves the products of one category ordered by name.
func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID category.ID) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM mst_product WHERE category_id = $1 ORDER BY product_name ASC`
	return r.queryProducts(ctx, query, categoryID.String())
}

// Delete removes a product, reporting whether a row was deleted.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mst_product WHERE product_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer closeRows(rows)

	products := make([]*product.Product, 0)
	for rows.Next() {
		var dto productDTO
		if err := rows.Scan(dto.fields()...); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		entity, err := dto.ToEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// productDTO is a data transfer object for database operations.
type productDTO struct {
	ID          string
	Name        string
	Price       float64
	CategoryID  string
	Description sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *productDTO) fields() []interface{} {
	return []interface{}{&d.ID, &d.Name, &d.Price, &d.CategoryID, &d.Description, &d.CreatedAt, &d.UpdatedAt}
}

// ToEntity converts DTO to domain entity.
func (d *productDTO) ToEntity() (*product.Product, error) {
	name, err := product.NewName(d.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid product name from db: %w", err)
	}

	price, err := product.NewPrice(d.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid product price from db: %w", err)
	}

	categoryID, err := category.NewID(d.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id from db: %w", err)
	}

	return product.ReconstructProduct(d.ID, name, price, categoryID, d.Description.String, d.CreatedAt, d.UpdatedAt), nil
}

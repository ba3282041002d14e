package product

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// Repository defines the interface for product persistence.
type Repository interface {
	// Save inserts or replaces a product. A product without id gets a generated one;
	// the returned entity always carries the stored id.
	Save(ctx context.Context, product *Product) (*Product, error)

	// FindByID retrieves a product by its id. Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll retrieves every product.
	FindAll(ctx context.Context) ([]*Product, error)

	// Delete removes a product. Returns false when the id is absent.
	Delete(ctx context.Context, id string) (bool, error)

	// FindByCategoryID retrieves the products referencing exactly this category.
	FindByCategoryID(ctx context.Context, categoryID category.ID) ([]*Product, error)
}

// CategoryUsage answers category.ProductUsage from a product Repository.
type CategoryUsage struct {
	repo Repository
}

// NewCategoryUsage creates a CategoryUsage backed by repo.
func NewCategoryUsage(repo Repository) *CategoryUsage {
	return &CategoryUsage{repo: repo}
}

// HasProducts implements category.ProductUsage.
func (u *CategoryUsage) HasProducts(ctx context.Context, id category.ID) (bool, error) {
	products, err := u.repo.FindByCategoryID(ctx, id)
	if err != nil {
		return false, err
	}
	return len(products) > 0, nil
}

var _ category.ProductUsage = (*CategoryUsage)(nil)

package category

import "context"

// Repository defines the interface for category persistence.
// This interface is defined in domain layer, implemented in infrastructure layer.
type Repository interface {
	// Save inserts or replaces a category and returns the stored entity.
	Save(ctx context.Context, category *Category) (*Category, error)

	// FindByID retrieves a category by its id. Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id ID) (*Category, error)

	// FindAll retrieves every category. Order is implementation-defined.
	FindAll(ctx context.Context) ([]*Category, error)

	// Delete removes a category. Returns false when the id is absent.
	Delete(ctx context.Context, id ID) (bool, error)

	// FindActive retrieves every active category.
	FindActive(ctx context.Context) ([]*Category, error)

	// FindByName retrieves the category with exactly this name. Returns ErrNotFound when absent.
	FindByName(ctx context.Context, name string) (*Category, error)
}

// ProductUsage answers whether products still reference a category.
// Implemented on top of the product repository.
type ProductUsage interface {
	HasProducts(ctx context.Context, id ID) (bool, error)
}

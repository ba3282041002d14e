package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// ProductRepository implements product.Repository on a map keyed by id.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]product.Product
}

// NewProductRepository creates an empty ProductRepository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[string]product.Product)}
}

// Verify interface implementation at compile time.
var _ product.Repository = (*ProductRepository)(nil)

// Save inserts or replaces the product, assigning an id when it has none.
func (r *ProductRepository) Save(_ context.Context, entity *product.Product) (*product.Product, error) {
	entity = product.EnsureID(entity)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[entity.ID()] = *entity
	stored := *entity
	return &stored, nil
}

// FindByID retrieves a product by its id.
func (r *ProductRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &entity, nil
}

// FindAll retrieves every product ordered by creation time.
func (r *ProductRepository) FindAll(_ context.Context) ([]*product.Product, error) {
	return r.filter(func(*product.Product) bool { return true }), nil
}

// FindByCategoryID retrieves the products referencing exactly this category.
func (r *ProductRepository) FindByCategoryID(_ context.Context, categoryID category.ID) ([]*product.Product, error) {
	return r.filter(func(p *product.Product) bool { return p.CategoryID().Equals(categoryID) }), nil
}

// Delete removes a product, reporting whether it existed.
func (r *ProductRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *ProductRepository) filter(keep func(*product.Product) bool) []*product.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*product.Product, 0, len(r.items))
	for _, item := range r.items {
		entity := item
		if keep(&entity) {
			result = append(result, &entity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].ID() < result[j].ID()
		}
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result
}

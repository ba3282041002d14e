// Package memory provides in-process implementations of the domain repositories.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// CategoryRepository implements category.Repository on a map keyed by id.
// Entities are copied on the way in and out, so callers never share state with the store.
type CategoryRepository struct {
	mu    sync.RWMutex
	items map[string]category.Category
}

// NewCategoryRepository creates an empty CategoryRepository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{items: make(map[string]category.Category)}
}

// Verify interface implementation at compile time.
var _ category.Repository = (*CategoryRepository)(nil)

// Save inserts or replaces the category.
func (r *CategoryRepository) Save(_ context.Context, entity *category.Category) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[entity.ID().String()] = *entity
	stored := *entity
	return &stored, nil
}

// FindByID retrieves a category by its id.
func (r *CategoryRepository) FindByID(_ context.Context, id category.ID) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id.String()]
	if !ok {
		return nil, category.ErrNotFound
	}
	return &entity, nil
}

// FindAll retrieves every category ordered by creation time.
func (r *CategoryRepository) FindAll(_ context.Context) ([]*category.Category, error) {
	return r.filter(func(*category.Category) bool { return true }), nil
}

// FindActive retrieves every active category.
func (r *CategoryRepository) FindActive(_ context.Context) ([]*category.Category, error) {
	return r.filter((*category.Category).IsActive), nil
}

// FindByName retrieves the category with exactly this name.
func (r *CategoryRepository) FindByName(_ context.Context, name string) (*category.Category, error) {
	matches := r.filter(func(c *category.Category) bool { return c.Name().String() == name })
	if len(matches) == 0 {
		return nil, category.ErrNotFound
	}
	return matches[0], nil
}

// Delete removes a category, reporting whether it existed.
func (r *CategoryRepository) Delete(_ context.Context, id category.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id.String()]; !ok {
		return false, nil
	}
	delete(r.items, id.String())
	return true, nil
}

func (r *CategoryRepository) filter(keep func(*category.Category) bool) []*category.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*category.Category, 0, len(r.items))
	for _, item := range r.items {
		entity := item
		if keep(&entity) {
			result = append(result, &entity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].ID().String() < result[j].ID().String()
		}
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result
}

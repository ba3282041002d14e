package product

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// ListHandler handles the ListProducts query.
type ListHandler struct {
	repo product.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo product.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle returns every product.
func (h *ListHandler) Handle(ctx context.Context) ([]*product.Product, error) {
	return h.repo.FindAll(ctx)
}

// FindByCategoryQuery represents the find products by category query.
type FindByCategoryQuery struct {
	CategoryID string
}

// FindByCategoryHandler handles the FindProductsByCategory query.
type FindByCategoryHandler struct {
	repo product.Repository
}

// NewFindByCategoryHandler creates a new FindByCategoryHandler.
func NewFindByCategoryHandler(repo product.Repository) *FindByCategoryHandler {
	return &FindByCategoryHandler{repo: repo}
}

// Handle returns the products of one category. An unknown category yields an empty list.
func (h *FindByCategoryHandler) Handle(ctx context.Context, query FindByCategoryQuery) ([]*product.Product, error) {
	categoryID, err := category.NewID(query.CategoryID)
	if err != nil {
		return nil, err
	}
	return h.repo.FindByCategoryID(ctx, categoryID)
}

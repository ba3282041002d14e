package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// ListQuery represents the list categories query.
type ListQuery struct {
	ActiveOnly bool
}

// ListHandler handles the ListCategories query.
type ListHandler struct {
	repo category.Repository
}

// NewListHandler creates a new ListHandler.
func NewListHandler(repo category.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

// Handle executes the list categories query.
func (h *ListHandler) Handle(ctx context.Context, query ListQuery) ([]*category.Category, error) {
	if query.ActiveOnly {
		return h.repo.FindActive(ctx)
	}
	return h.repo.FindAll(ctx)
}

package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// GetQuery represents the get category query.
type GetQuery struct {
	CategoryID string
}

// GetHandler handles the GetCategory query.
type GetHandler struct {
	repo category.Repository
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo category.Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the get category query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*category.Category, error) {
	id, err := parseID(query.CategoryID)
	if err != nil {
		return nil, err
	}

	return h.repo.FindByID(ctx, id)
}

package product

import (
	"context"
	"strings"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// GetQuery represents the get product query.
type GetQuery struct {
	ProductID string
}

// GetHandler handles the GetProduct query.
type GetHandler struct {
	repo product.Repository
}

// NewGetHandler creates a new GetHandler.
func NewGetHandler(repo product.Repository) *GetHandler {
	return &GetHandler{repo: repo}
}

// Handle executes the get product query.
func (h *GetHandler) Handle(ctx context.Context, query GetQuery) (*product.Product, error) {
	id := strings.TrimSpace(query.ProductID)
	if id == "" {
		return nil, product.ErrNotFound
	}
	return h.repo.FindByID(ctx, id)
}

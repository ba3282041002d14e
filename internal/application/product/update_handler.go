package product

import (
	"context"
	"strings"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// UpdateCommand represents the update product command. Every field is replaced.
type UpdateCommand struct {
	ProductID   string
	Name        string
	Price       float64
	CategoryID  string
	Description string
}

// UpdateHandler handles the UpdateProduct command.
type UpdateHandler struct {
	repo      product.Repository
	publisher shared.EventPublisher
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo product.Repository, publisher shared.EventPublisher) *UpdateHandler {
	return &UpdateHandler{repo: repo, publisher: publisher}
}

// Handle executes the update product command.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*product.Product, error) {
	// 1. Get existing entity
	id := strings.TrimSpace(cmd.ProductID)
	if id == "" {
		return nil, product.ErrNotFound
	}
	entity, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Update domain entity; the first invalid field aborts the update
	if err := entity.UpdateName(cmd.Name); err != nil {
		return nil, err
	}
	if err := entity.UpdatePrice(cmd.Price); err != nil {
		return nil, err
	}
	if err := entity.UpdateCategory(cmd.CategoryID); err != nil {
		return nil, err
	}
	entity.UpdateDescription(cmd.Description)

	// 3. Persist
	saved, err := h.repo.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, shared.EventProductUpdated, saved)
	return saved, nil
}

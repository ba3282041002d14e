package product

import (
	"context"
	"strings"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// DeleteCommand represents the delete product command.
type DeleteCommand struct {
	ProductID string
}

// DeleteHandler handles the DeleteProduct command.
type DeleteHandler struct {
	repo      product.Repository
	publisher shared.EventPublisher
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo product.Repository, publisher shared.EventPublisher) *DeleteHandler {
	return &DeleteHandler{repo: repo, publisher: publisher}
}

// Handle executes the delete product command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	id := strings.TrimSpace(cmd.ProductID)
	if id == "" {
		return product.ErrNotFound
	}

	// 1. Check existence
	entity, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. Delete
	deleted, err := h.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return product.ErrNotFound
	}

	publish(ctx, h.publisher, shared.EventProductDeleted, entity)
	return nil
}

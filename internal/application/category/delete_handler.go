package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// DeleteCommand represents the delete category command.
type DeleteCommand struct {
	CategoryID string
}

// DeleteHandler handles the DeleteCategory command.
type DeleteHandler struct {
	repo      category.Repository
	service   *category.Service
	publisher shared.EventPublisher
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo category.Repository, service *category.Service, publisher shared.EventPublisher) *DeleteHandler {
	return &DeleteHandler{repo: repo, service: service, publisher: publisher}
}

// Handle executes the delete category command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	// 1. Parse ID and load, so a missing category is reported as not found
	id, err := parseID(cmd.CategoryID)
	if err != nil {
		return err
	}
	entity, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. Refuse while products still reference it
	allowed, err := h.service.CanDeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !allowed {
		return category.ErrHasProducts
	}

	// 3. Delete
	deleted, err := h.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return category.ErrNotFound
	}

	publish(ctx, h.publisher, shared.EventCategoryDeleted, entity)
	return nil
}

package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// ActivationCommand represents the activate and deactivate category commands.
type ActivationCommand struct {
	CategoryID string
}

// ActivateHandler handles the ActivateCategory command.
type ActivateHandler struct {
	repo      category.Repository
	service   *category.Service
	publisher shared.EventPublisher
}

// NewActivateHandler creates a new ActivateHandler.
func NewActivateHandler(repo category.Repository, service *category.Service, publisher shared.EventPublisher) *ActivateHandler {
	return &ActivateHandler{repo: repo, service: service, publisher: publisher}
}

// Handle activates the category. An already active category is returned unchanged.
func (h *ActivateHandler) Handle(ctx context.Context, cmd ActivationCommand) (*category.Category, error) {
	return toggle(ctx, h.repo, h.publisher, cmd.CategoryID, h.service.CanActivateCategory,
		(*category.Category).Activate, shared.EventCategoryActivated)
}

// DeactivateHandler handles the DeactivateCategory command.
type DeactivateHandler struct {
	repo      category.Repository
	service   *category.Service
	publisher shared.EventPublisher
}

// NewDeactivateHandler creates a new DeactivateHandler.
func NewDeactivateHandler(repo category.Repository, service *category.Service, publisher shared.EventPublisher) *DeactivateHandler {
	return &DeactivateHandler{repo: repo, service: service, publisher: publisher}
}

// Handle deactivates the category. An already inactive category is returned unchanged.
func (h *DeactivateHandler) Handle(ctx context.Context, cmd ActivationCommand) (*category.Category, error) {
	return toggle(ctx, h.repo, h.publisher, cmd.CategoryID, h.service.CanDeactivateCategory,
		(*category.Category).Deactivate, shared.EventCategoryDeactivated)
}

func toggle(
	ctx context.Context,
	repo category.Repository,
	publisher shared.EventPublisher,
	rawID string,
	eligible func(context.Context, category.ID) (bool, error),
	apply func(*category.Category),
	eventName string,
) (*category.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	entity, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := eligible(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return entity, nil
	}

	apply(entity)
	saved, err := repo.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	publish(ctx, publisher, eventName, saved)
	return saved, nil
}

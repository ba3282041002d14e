package category

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// UpdateCommand represents the update category command. Nil fields are left unchanged.
type UpdateCommand struct {
	CategoryID  string
	Name        *string
	Description *string
	IsActive    *bool
}

// UpdateHandler handles the UpdateCategory command.
type UpdateHandler struct {
	repo      category.Repository
	service   *category.Service
	publisher shared.EventPublisher
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo category.Repository, service *category.Service, publisher shared.EventPublisher) *UpdateHandler {
	return &UpdateHandler{repo: repo, service: service, publisher: publisher}
}

// Handle executes the update category command.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*category.Category, error) {
	// 1. Parse ID
	id, err := parseID(cmd.CategoryID)
	if err != nil {
		return nil, err
	}

	// 2. Get existing entity
	entity, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Rename, keeping names unique but allowing the current one
	if cmd.Name != nil {
		name, err := category.NewName(*cmd.Name)
		if err != nil {
			return nil, err
		}
		unique, err := h.service.IsCategoryNameUnique(ctx, name.String(), id.String())
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, category.ErrAlreadyExists
		}
		if err := entity.UpdateName(name.String()); err != nil {
			return nil, err
		}
	}

	if cmd.Description != nil {
		entity.UpdateDescription(*cmd.Description)
	}

	if cmd.IsActive != nil {
		if *cmd.IsActive {
			entity.Activate()
		} else {
			entity.Deactivate()
		}
	}

	// 4. Persist
	saved, err := h.repo.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, shared.EventCategoryUpdated, saved)
	return saved, nil
}

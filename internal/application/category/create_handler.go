package category

import (
	"context"
	"errors"
	"strings"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// CreateCommand represents the create category command.
type CreateCommand struct {
	CategoryID  string
	Name        string
	Description string
}

// CreateHandler handles the CreateCategory command.
type CreateHandler struct {
	repo      category.Repository
	service   *category.Service
	publisher shared.EventPublisher
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo category.Repository, service *category.Service, publisher shared.EventPublisher) *CreateHandler {
	return &CreateHandler{repo: repo, service: service, publisher: publisher}
}

// Handle executes the create category command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*category.Category, error) {
	// 1. Create domain entity (validates name)
	entity, err := category.NewCategoryWithID(cmd.CategoryID, cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}

	// 2. A caller-chosen id must not be in use
	if strings.TrimSpace(cmd.CategoryID) != "" {
		if err := h.ensureIDFree(ctx, entity.ID()); err != nil {
			return nil, err
		}
	}

	// 3. Check creation policy
	allowed, err := h.service.CanCreateCategory(ctx, entity.Name().String(), "")
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, category.ErrAlreadyExists
	}

	// 4. Persist
	saved, err := h.repo.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, shared.EventCategoryCreated, saved)
	return saved, nil
}

func (h *CreateHandler) ensureIDFree(ctx context.Context, id category.ID) error {
	_, err := h.repo.FindByID(ctx, id)
	if errors.Is(err, category.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return category.ErrIDTaken
}

package product

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// CreateCommand represents the create product command.
type CreateCommand struct {
	Name        string
	Price       float64
	CategoryID  string
	Description string
}

// CreateHandler handles the CreateProduct command.
type CreateHandler struct {
	repo      product.Repository
	service   *product.Service
	publisher shared.EventPublisher
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo product.Repository, service *product.Service, publisher shared.EventPublisher) *CreateHandler {
	return &CreateHandler{repo: repo, service: service, publisher: publisher}
}

// Handle executes the create product command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*product.Product, error) {
	// 1. Create domain entity (validates name, price and category id)
	entity, err := product.NewProduct(cmd.Name, cmd.Price, cmd.CategoryID, cmd.Description)
	if err != nil {
		return nil, err
	}

	// 2. Check creation policy; the first failing rule is reported
	rule, err := h.service.CreationViolation(ctx, entity.Name().String(), entity.Price().Value(), entity.CategoryID())
	if err != nil {
		return nil, err
	}
	if rule != "" {
		return nil, violationError(rule)
	}

	// 3. Persist
	saved, err := h.repo.Save(ctx, entity)
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, shared.EventProductCreated, saved)
	return saved, nil
}

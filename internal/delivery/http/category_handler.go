package http

import (
	"net/http"

	appcategory "github.com/mutugading/goapps-backend/services/catalog/internal/application/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	createHandler     *appcategory.CreateHandler
	getHandler        *appcategory.GetHandler
	listHandler       *appcategory.ListHandler
	updateHandler     *appcategory.UpdateHandler
	deleteHandler     *appcategory.DeleteHandler
	activateHandler   *appcategory.ActivateHandler
	deactivateHandler *appcategory.DeactivateHandler
	statisticsHandler *appcategory.StatisticsHandler
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(
	repo category.Repository,
	service *category.Service,
	publisher shared.EventPublisher,
) *CategoryHandler {
	return &CategoryHandler{
		createHandler:     appcategory.NewCreateHandler(repo, service, publisher),
		getHandler:        appcategory.NewGetHandler(repo),
		listHandler:       appcategory.NewListHandler(repo),
		updateHandler:     appcategory.NewUpdateHandler(repo, service, publisher),
		deleteHandler:     appcategory.NewDeleteHandler(repo, service, publisher),
		activateHandler:   appcategory.NewActivateHandler(repo, service, publisher),
		deactivateHandler: appcategory.NewDeactivateHandler(repo, service, publisher),
		statisticsHandler: appcategory.NewStatisticsHandler(service),
	}
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entity, err := h.createHandler.Handle(r.Context(), appcategory.CreateCommand{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RecordOperation("category", "create", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("category", "create", true)
	writeData(w, response.Created("Category created successfully"), categoryToDTO(entity))
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity, err := h.getHandler.Handle(r.Context(), appcategory.GetQuery{CategoryID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Category retrieved successfully"), categoryToDTO(entity))
}

// List handles GET /api/v1/categories. ?active=true restricts to active categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := boolQuery(w, r, "active")
	if !ok {
		return
	}

	entities, err := h.listHandler.Handle(r.Context(), appcategory.ListQuery{ActiveOnly: activeOnly})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Categories retrieved successfully"), categoriesToDTO(entities))
}

// Update handles PUT /api/v1/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entity, err := h.updateHandler.Handle(r.Context(), appcategory.UpdateCommand{
		CategoryID:  r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		RecordOperation("category", "update", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("category", "update", true)
	writeData(w, response.Success("Category updated successfully"), categoryToDTO(entity))
}

// Delete handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteHandler.Handle(r.Context(), appcategory.DeleteCommand{CategoryID: r.PathValue("id")})
	if err != nil {
		RecordOperation("category", "delete", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("category", "delete", true)
	writeData(w, response.Success("Category deleted successfully"), nil)
}

// Activate handles POST /api/v1/categories/{id}/activate.
func (h *CategoryHandler) Activate(w http.ResponseWriter, r *http.Request) {
	entity, err := h.activateHandler.Handle(r.Context(), appcategory.ActivationCommand{CategoryID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Category activated successfully"), categoryToDTO(entity))
}

// Deactivate handles POST /api/v1/categories/{id}/deactivate.
func (h *CategoryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	entity, err := h.deactivateHandler.Handle(r.Context(), appcategory.ActivationCommand{CategoryID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Category deactivated successfully"), categoryToDTO(entity))
}

// Statistics handles GET /api/v1/categories/statistics.
func (h *CategoryHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsHandler.Handle(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Category statistics retrieved successfully"), stats)
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	appproduct "github.com/mutugading/goapps-backend/services/catalog/internal/application/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler serves the product endpoints and the category pricing summary.
type ProductHandler struct {
	createHandler         *appproduct.CreateHandler
	getHandler            *appproduct.GetHandler
	listHandler           *appproduct.ListHandler
	findByCategoryHandler *appproduct.FindByCategoryHandler
	updateHandler         *appproduct.UpdateHandler
	deleteHandler         *appproduct.DeleteHandler
	exportHandler         *appproduct.ExportHandler
	pricingHandler        *appproduct.PricingHandler
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(
	products product.Repository,
	categories category.Repository,
	service *product.Service,
	publisher shared.EventPublisher,
) *ProductHandler {
	return &ProductHandler{
		createHandler:         appproduct.NewCreateHandler(products, service, publisher),
		getHandler:            appproduct.NewGetHandler(products),
		listHandler:           appproduct.NewListHandler(products),
		findByCategoryHandler: appproduct.NewFindByCategoryHandler(products),
		updateHandler:         appproduct.NewUpdateHandler(products, publisher),
		deleteHandler:         appproduct.NewDeleteHandler(products, publisher),
		exportHandler:         appproduct.NewExportHandler(products),
		pricingHandler:        appproduct.NewPricingHandler(products, categories, service),
	}
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Price == nil {
		writeValidation(w, "price", "price is required")
		return
	}

	entity, err := h.createHandler.Handle(r.Context(), appproduct.CreateCommand{
		Name:        req.Name,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		RecordOperation("product", "create", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("product", "create", true)
	writeData(w, response.Created("Product created successfully"), productToDTO(entity))
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity, err := h.getHandler.Handle(r.Context(), appproduct.GetQuery{ProductID: r.PathValue("id")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Product retrieved successfully"), productToDTO(entity))
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	entities, err := h.listHandler.Handle(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Products retrieved successfully"), productsToDTO(entities))
}

// FindByCategory handles GET /api/v1/products/category/{categoryId}.
func (h *ProductHandler) FindByCategory(w http.ResponseWriter, r *http.Request) {
	entities, err := h.findByCategoryHandler.Handle(r.Context(), appproduct.FindByCategoryQuery{
		CategoryID: r.PathValue("categoryId"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Products retrieved successfully"), productsToDTO(entities))
}

// Update handles PUT /api/v1/products/{id}. Every field is replaced.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Price == nil {
		writeValidation(w, "price", "price is required")
		return
	}

	entity, err := h.updateHandler.Handle(r.Context(), appproduct.UpdateCommand{
		ProductID:   r.PathValue("id"),
		Name:        req.Name,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		RecordOperation("product", "update", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("product", "update", true)
	writeData(w, response.Success("Product updated successfully"), productToDTO(entity))
}

// Delete handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteHandler.Handle(r.Context(), appproduct.DeleteCommand{ProductID: r.PathValue("id")})
	if err != nil {
		RecordOperation("product", "delete", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("product", "delete", true)
	writeData(w, response.Success("Product deleted successfully"), nil)
}

// Export handles GET /api/v1/products/export. ?category_id= restricts the sheet to one category.
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.exportHandler.Handle(r.Context(), appproduct.ExportQuery{
		CategoryID: r.URL.Query().Get("category_id"),
	})
	if err != nil {
		RecordOperation("product", "export", false)
		writeError(w, r, err)
		return
	}

	RecordOperation("product", "export", true)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.FileContent)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.FileContent)
}

// Pricing handles GET /api/v1/categories/{id}/pricing. ?price= evaluates a candidate price.
func (h *ProductHandler) Pricing(w http.ResponseWriter, r *http.Request) {
	query := appproduct.PricingQuery{CategoryID: r.PathValue("id")}

	if raw := r.URL.Query().Get("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeValidation(w, "price", "price must be a number")
			return
		}
		query.Price = &price
	}

	result, err := h.pricingHandler.Handle(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, response.Success("Pricing retrieved successfully"), pricingToDTO(result))
}

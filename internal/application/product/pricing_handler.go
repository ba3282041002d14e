package product

import (
	"context"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// PricingQuery represents the category pricing query. Price is an optional candidate.
type PricingQuery struct {
	CategoryID string
	Price      *float64
}

// PricingResult describes the price policy of a category.
// Average is nil when the category has no products; the candidate fields are nil without a candidate.
type PricingResult struct {
	CategoryID   string
	Band         product.PriceBand
	Average      *float64
	Candidate    *product.Price
	WithinRange  *bool
	Competitive  *bool
	ProductCount int
}

// PricingHandler handles the CategoryPricing query.
type PricingHandler struct {
	products   product.Repository
	categories category.Repository
	service    *product.Service
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(products product.Repository, categories category.Repository, service *product.Service) *PricingHandler {
	return &PricingHandler{products: products, categories: categories, service: service}
}

// Handle executes the category pricing query.
func (h *PricingHandler) Handle(ctx context.Context, query PricingQuery) (*PricingResult, error) {
	categoryID, err := category.NewID(query.CategoryID)
	if err != nil {
		return nil, category.ErrNotFound
	}
	if _, err := h.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	result := &PricingResult{
		CategoryID: categoryID.String(),
		Band:       h.service.PriceRangeForCategory(categoryID),
	}

	products, err := h.products.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	result.ProductCount = len(products)

	avg, ok, err := h.service.AveragePriceForCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if ok {
		result.Average = &avg
	}

	if query.Price == nil {
		return result, nil
	}

	candidate, err := product.NewPrice(*query.Price)
	if err != nil {
		return nil, err
	}
	result.Candidate = &candidate

	inRange, err := h.service.IsPriceWithinAcceptableRange(ctx, candidate.Value(), categoryID)
	if err != nil {
		return nil, err
	}
	result.WithinRange = &inRange

	competitive, err := h.service.IsPriceCompetitive(ctx, candidate.Value(), categoryID)
	if err != nil {
		return nil, err
	}
	result.Competitive = &competitive

	return result, nil
}

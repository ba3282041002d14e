package http

import (
	"time"

	appproduct "github.com/mutugading/goapps-backend/services/catalog/internal/application/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
)

// CategoryDTO is the JSON representation of a category.
type CategoryDTO struct {
	ID          string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProductDTO is the JSON representation of a product.
type ProductDTO struct {
	ID           string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price"`
	CategoryID   string  `json:"category_id"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// PricingDTO is the JSON representation of a category pricing summary.
type PricingDTO struct {
	CategoryID   string   `json:"category_id"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	AveragePrice *float64 `json:"average_price"`
	ProductCount int      `json:"product_count"`
	Price        *float64 `json:"price,omitempty"`
	DisplayPrice string   `json:"display_price,omitempty"`
	WithinRange  *bool    `json:"within_range,omitempty"`
	Competitive  *bool    `json:"competitive,omitempty"`
}

type createCategoryRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type productRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	CategoryID  string   `json:"category_id"`
	Description string   `json:"description"`
}

func categoryToDTO(entity *category.Category) CategoryDTO {
	return CategoryDTO{
		ID:          entity.ID().String(),
		Name:        entity.Name().String(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   entity.UpdatedAt().Format(time.RFC3339),
	}
}

func categoriesToDTO(entities []*category.Category) []CategoryDTO {
	result := make([]CategoryDTO, 0, len(entities))
	for _, entity := range entities {
		result = append(result, categoryToDTO(entity))
	}
	return result
}

func productToDTO(entity *product.Product) ProductDTO {
	return ProductDTO{
		ID:           entity.ID(),
		Name:         entity.Name().String(),
		Price:        entity.Price().Value(),
		DisplayPrice: entity.Price().Format(),
		CategoryID:   entity.CategoryID().String(),
		Description:  entity.Description(),
		CreatedAt:    entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    entity.UpdatedAt().Format(time.RFC3339),
	}
}

func productsToDTO(entities []*product.Product) []ProductDTO {
	result := make([]ProductDTO, 0, len(entities))
	for _, entity := range entities {
		result = append(result, productToDTO(entity))
	}
	return result
}

func pricingToDTO(result *appproduct.PricingResult) PricingDTO {
	dto := PricingDTO{
		CategoryID:   result.CategoryID,
		MinPrice:     result.Band.Min,
		MaxPrice:     result.Band.Max,
		AveragePrice: result.Average,
		ProductCount: result.ProductCount,
		WithinRange:  result.WithinRange,
		Competitive:  result.Competitive,
	}
	if result.Candidate != nil {
		value := result.Candidate.Value()
		dto.Price = &value
		dto.DisplayPrice = result.Candidate.Format()
	}
	return dto
}

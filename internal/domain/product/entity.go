package product

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// idPrefix is prepended to generated product ids.
const idPrefix = "product_"

// GenerateID returns a fresh, practically unique product id.
func GenerateID() string {
	return idPrefix + uuid.NewString()
}

// Product is the aggregate root for the product domain.
// It references its category by id only and never loads or owns it.
type Product struct {
	id          string
	name        Name
	price       Price
	categoryID  category.ID
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a new product with a generated id.
func NewProduct(name string, price float64, categoryID string, description string) (*Product, error) {
	return NewProductWithID("", name, price, categoryID, description)
}

// NewProductWithID creates a new product. A blank id is replaced by a generated one.
func NewProductWithID(id string, name string, price float64, categoryID string, description string) (*Product, error) {
	validName, err := NewName(name)
	if err != nil {
		return nil, err
	}

	validPrice, err := NewPrice(price)
	if err != nil {
		return nil, err
	}

	validCategoryID, err := category.NewID(categoryID)
	if err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = GenerateID()
	}

	now := time.Now()
	return &Product{
		id:          id,
		name:        validName,
		price:       validPrice,
		categoryID:  validCategoryID,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructProduct reconstructs a Product entity from persistence data.
// An empty id yields a draft that Repository.Save will assign an id to.
func ReconstructProduct(
	id string,
	name Name,
	price Price,
	categoryID category.ID,
	description string,
	createdAt time.Time,
	updatedAt time.Time,
) *Product {
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	return &Product{
		id:          id,
		name:        name,
		price:       price,
		categoryID:  categoryID,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// EnsureID returns p unchanged when it has an id, otherwise a copy carrying a generated one.
func EnsureID(p *Product) *Product {
	if p.id != "" {
		return p
	}
	clone := *p
	clone.id = GenerateID()
	return &clone
}

// =============================================================================
// Getters
// =============================================================================

// ID returns the unique identifier.
func (p *Product) ID() string { return p.id }

// Name returns the validated name.
func (p *Product) Name() Name { return p.name }

// Price returns the validated price.
func (p *Product) Price() Price { return p.price }

// CategoryID returns the id of the referenced category.
func (p *Product) CategoryID() category.ID { return p.categoryID }

// Description returns the free-form description.
func (p *Product) Description() string { return p.description }

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last update timestamp.
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// =============================================================================
// Domain Behavior Methods
// =============================================================================

// UpdateName replaces the name after validating it.
func (p *Product) UpdateName(name string) error {
	validName, err := NewName(name)
	if err != nil {
		return err
	}
	p.name = validName
	p.touch()
	return nil
}

// UpdatePrice replaces the price after validating it.
func (p *Product) UpdatePrice(price float64) error {
	validPrice, err := NewPrice(price)
	if err != nil {
		return err
	}
	p.price = validPrice
	p.touch()
	return nil
}

// UpdateCategory points the product at another category.
// Whether that category exists is checked by Service, not here.
func (p *Product) UpdateCategory(categoryID string) error {
	validCategoryID, err := category.NewID(categoryID)
	if err != nil {
		return err
	}
	p.categoryID = validCategoryID
	p.touch()
	return nil
}

// UpdateDescription replaces the description.
func (p *Product) UpdateDescription(description string) {
	p.description = description
	p.touch()
}

func (p *Product) touch() {
	now := time.Now()
	if now.Before(p.createdAt) {
		now = p.createdAt
	}
	p.updatedAt = now
}

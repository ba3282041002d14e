// Package product provides domain logic for catalog product management.
package product

import "github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"

// Domain errors for product operations.
var (
	// ErrNotFound is returned when a product is not found.
	ErrNotFound = shared.NewNotFoundError("product")

	// ErrEmptyName is returned when the product name is blank.
	ErrEmptyName = shared.NewValidationError("name", shared.KindEmptyValue,
		"product name cannot be empty")

	// ErrNameTooLong is returned when the product name exceeds MaxNameLength.
	ErrNameTooLong = shared.NewValidationError("name", shared.KindLengthExceeded,
		"product name cannot exceed 255 characters")

	// ErrNegativePrice is returned when a price is below zero.
	ErrNegativePrice = shared.NewValidationError("price", shared.KindNegativeValue,
		"price cannot be negative")

	// ErrInvalidPrice is returned when a price is NaN or infinite.
	ErrInvalidPrice = shared.NewValidationError("price", shared.KindNotFinite,
		"price must be a finite number")
)

// Rule violations reported by use cases when CreationViolation rejects a product.
var (
	ErrCategoryInactive = shared.NewRuleViolationError(string(RuleCategoryActive),
		"category does not exist or is inactive")

	ErrDuplicateName = shared.NewRuleViolationError(string(RuleNameUnique),
		"product with this name already exists in the category")

	ErrPriceOutOfRange = shared.NewRuleViolationError(string(RulePriceInRange),
		"price is outside the acceptable range for the category")
)

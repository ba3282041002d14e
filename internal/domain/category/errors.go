// Package category provides domain logic for catalog category management.
package category

import "github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"

// Domain errors for category operations.
var (
	// ErrNotFound is returned when a category is not found.
	ErrNotFound = shared.NewNotFoundError("category")

	// ErrEmptyID is returned when a category id is blank.
	ErrEmptyID = shared.NewValidationError("category_id", shared.KindEmptyValue,
		"category id cannot be empty")

	// ErrEmptyName is returned when the category name is blank.
	ErrEmptyName = shared.NewValidationError("name", shared.KindEmptyValue,
		"category name cannot be empty")

	// ErrNameTooLong is returned when the category name exceeds MaxNameLength.
	ErrNameTooLong = shared.NewValidationError("name", shared.KindLengthExceeded,
		"category name cannot exceed 255 characters")

	// ErrAlreadyExists is returned when a category with the same name exists.
	ErrAlreadyExists = shared.NewRuleViolationError("category_name_unique",
		"category with this name already exists")

	// ErrIDTaken is returned when creating a category with an id that is already in use.
	ErrIDTaken = shared.NewRuleViolationError("category_id_unique",
		"category with this id already exists")

	// ErrHasProducts is returned when deleting a category that still has products.
	ErrHasProducts = shared.NewRuleViolationError("category_has_products",
		"category has associated products")
)

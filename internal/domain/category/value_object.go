package category

import (
	"strings"

	"github.com/google/uuid"
)

// MaxNameLength is the maximum length of a category name after trimming.
const MaxNameLength = 255

// idPrefix is prepended to generated category ids.
const idPrefix = "category_"

// =============================================================================
// ID Value Object
// =============================================================================

// ID identifies a category. Products reference categories by ID only.
type ID struct {
	value string
}

// NewID creates a new validated ID value object.
func NewID(id string) (ID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ID{}, ErrEmptyID
	}
	return ID{value: id}, nil
}

// GenerateID returns a fresh, practically unique category ID.
func GenerateID() ID {
	return ID{value: idPrefix + uuid.NewString()}
}

// String returns the string representation of the id.
func (i ID) String() string {
	return i.value
}

// IsEmpty returns true for the zero ID.
func (i ID) IsEmpty() bool {
	return i.value == ""
}

// Equals checks if two ids are equal.
func (i ID) Equals(other ID) bool {
	return i.value == other.value
}

// =============================================================================
// Name Value Object
// =============================================================================

// Name represents a validated category name.
type Name struct {
	value string
}

// NewName creates a new validated Name value object.
func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Name{}, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: name}, nil
}

// String returns the string representation of the name.
func (n Name) String() string {
	return n.value
}

// Equals checks if two names are equal.
func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

package category

import (
	"strings"
	"time"
)

// Category is the aggregate root for the category domain.
type Category struct {
	id          ID
	name        Name
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a new active category with a generated id.
func NewCategory(name string, description string) (*Category, error) {
	return NewCategoryWithID("", name, description)
}

// NewCategoryWithID creates a new active category. A blank id is replaced by a generated one.
func NewCategoryWithID(id string, name string, description string) (*Category, error) {
	validName, err := NewName(name)
	if err != nil {
		return nil, err
	}

	categoryID := GenerateID()
	if strings.TrimSpace(id) != "" {
		if categoryID, err = NewID(id); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	return &Category{
		id:          categoryID,
		name:        validName,
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructCategory reconstructs a Category entity from persistence data.
// This is used by repository implementations to rebuild the entity from storage.
func ReconstructCategory(
	id ID,
	name Name,
	description string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Category {
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	return &Category{
		id:          id,
		name:        name,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// =============================================================================
// Getters - Expose internal state read-only
// =============================================================================

// ID returns the unique identifier.
func (c *Category) ID() ID { return c.id }

// Name returns the validated name.
func (c *Category) Name() Name { return c.name }

// Description returns the free-form description.
func (c *Category) Description() string { return c.description }

// IsActive returns whether the category is active.
func (c *Category) IsActive() bool { return c.isActive }

// CreatedAt returns the creation timestamp.
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last update timestamp.
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// =============================================================================
// Domain Behavior Methods
// =============================================================================

// UpdateName replaces the name after validating it.
func (c *Category) UpdateName(name string) error {
	validName, err := NewName(name)
	if err != nil {
		return err
	}
	c.name = validName
	c.touch()
	return nil
}

// UpdateDescription replaces the description.
func (c *Category) UpdateDescription(description string) {
	c.description = description
	c.touch()
}

// Activate sets the category as active. Activating an active category is not an error.
func (c *Category) Activate() {
	c.isActive = true
	c.touch()
}

// Deactivate sets the category as inactive.
func (c *Category) Deactivate() {
	c.isActive = false
	c.touch()
}

func (c *Category) touch() {
	now := time.Now()
	if now.Before(c.createdAt) {
		now = c.createdAt
	}
	c.updatedAt = now
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// CategoryRepository implements category.Repository interface using PostgreSQL.
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Verify interface implementation at compile time.
var _ category.Repository = (*CategoryRepository)(nil)

const categoryColumns = `category_id, category_name, description, is_active, created_at, updated_at`

// Save inserts the category or replaces the stored row with the same id.
func (r *CategoryRepository) Save(ctx context.Context, entity *category.Category) (*category.Category, error) {
	query := `
		INSERT INTO mst_category (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category_id) DO UPDATE SET
			category_name = EXCLUDED.category_name,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		entity.ID().String(),
		entity.Name().String(),
		entity.Description(),
		entity.IsActive(),
		entity.CreatedAt(),
		entity.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, category.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	return entity, nil
}

// FindByID retrieves a category by its id.
func (r *CategoryRepository) FindByID(ctx context.Context, id category.ID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM mst_category WHERE category_id = $1`
	return r.scanCategory(r.db.QueryRowContext(ctx, query, id.String()))
}

// FindByName retrieves the category with exactly this name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM mst_category WHERE category_name = $1`
	return r.scanCategory(r.db.QueryRowContext(ctx, query, name))
}

// FindAll retrieves every category ordered by name.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM mst_category ORDER BY category_name ASC`
	return r.queryCategories(ctx, query)
}

// FindActive retrieves every active category ordered by name.
func (r *CategoryRepository) FindActive(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM mst_category WHERE is_active = TRUE ORDER BY category_name ASC`
	return r.queryCategories(ctx, query)
}

// Delete removes a category, reporting whether a row was deleted.
func (r *CategoryRepository) Delete(ctx context.Context, id category.ID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mst_category WHERE category_id = $1`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// =============================================================================
// Helper functions
// =============================================================================

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*category.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer closeRows(rows)

	categories := make([]*category.Category, 0)
	for rows.Next() {
		var dto categoryDTO
		if err := rows.Scan(&dto.ID, &dto.Name, &dto.Description, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		entity, err := dto.ToEntity()
		if err != nil {
			return nil, err
		}
		categories = append(categories, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) scanCategory(row *sql.Row) (*category.Category, error) {
	var dto categoryDTO
	err := row.Scan(&dto.ID, &dto.Name, &dto.Description, &dto.IsActive, &dto.CreatedAt, &dto.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	return dto.ToEntity()
}

// categoryDTO is a data transfer object for database operations.
type categoryDTO struct {
	ID          string
	Name        string
	Description sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToEntity converts DTO to domain entity.
func (d *categoryDTO) ToEntity() (*category.Category, error) {
	id, err := category.NewID(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id from db: %w", err)
	}

	name, err := category.NewName(d.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid category name from db: %w", err)
	}

	return category.ReconstructCategory(id, name, d.Description.String, d.IsActive, d.CreatedAt, d.UpdatedAt), nil
}

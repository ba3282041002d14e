package category

import (
	"context"
	"errors"
)

// Statistics summarizes the categories in the repository.
type Statistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Service holds category rules that span more than one entity.
// Predicates answer ineligibility with false; errors are reserved for repository failures.
type Service struct {
	repo  Repository
	usage ProductUsage
}

// NewService creates a new category domain service.
// When usage is nil no category is considered to have products.
func NewService(repo Repository, usage ProductUsage) *Service {
	return &Service{repo: repo, usage: usage}
}

// IsCategoryNameUnique reports whether no category other than excludeID carries name.
// An empty excludeID excludes nothing. Comparison is exact.
func (s *Service) IsCategoryNameUnique(ctx context.Context, name string, excludeID string) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if excludeID != "" && existing.ID().String() == excludeID {
		return true, nil
	}
	return false, nil
}

// CanCreateCategory reports whether a category named name may be created.
func (s *Service) CanCreateCategory(ctx context.Context, name string, excludeID string) (bool, error) {
	return s.IsCategoryNameUnique(ctx, name, excludeID)
}

// CanActivateCategory reports whether the category exists and is inactive.
func (s *Service) CanActivateCategory(ctx context.Context, id ID) (bool, error) {
	category, found, err := s.find(ctx, id)
	if err != nil || !found {
		return false, err
	}
	return !category.IsActive(), nil
}

// CanDeactivateCategory reports whether the category exists and is active.
func (s *Service) CanDeactivateCategory(ctx context.Context, id ID) (bool, error) {
	category, found, err := s.find(ctx, id)
	if err != nil || !found {
		return false, err
	}
	return category.IsActive(), nil
}

// Statistics counts total, active and inactive categories.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return Statistics{}, err
	}
	active, err := s.repo.FindActive(ctx)
	if err != nil {
		return Statistics{}, err
	}

	return Statistics{
		Total:    len(all),
		Active:   len(active),
		Inactive: len(all) - len(active),
	}, nil
}

// HasProducts reports whether any product references the category.
func (s *Service) HasProducts(ctx context.Context, id ID) (bool, error) {
	if s.usage == nil {
		return false, nil
	}
	return s.usage.HasProducts(ctx, id)
}

// CanDeleteCategory reports whether the category exists and has no products.
func (s *Service) CanDeleteCategory(ctx context.Context, id ID) (bool, error) {
	_, found, err := s.find(ctx, id)
	if err != nil || !found {
		return false, err
	}

	hasProducts, err := s.HasProducts(ctx, id)
	if err != nil {
		return false, err
	}
	return !hasProducts, nil
}

func (s *Service) find(ctx context.Context, id ID) (*Category, bool, error) {
	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return category, true, nil
}

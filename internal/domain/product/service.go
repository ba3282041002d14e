package product

import (
	"context"
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
)

// Rule names a product creation policy.
type Rule string

// Creation rules in evaluation order.
const (
	RuleCategoryActive Rule = "category_active"
	RuleNameUnique     Rule = "product_name_unique"
	RulePriceInRange   Rule = "price_in_range"
)

// competitiveTolerance is the allowed deviation from the category average price.
var competitiveTolerance = decimal.NewFromFloat(0.20)

// Service holds product rules that need the product and category repositories.
// Every method reads repository state at call time; nothing is cached.
type Service struct {
	products   Repository
	categories category.Repository
	bands      PriceBands
}

// NewService creates a new product domain service.
func NewService(products Repository, categories category.Repository, bands PriceBands) *Service {
	return &Service{products: products, categories: categories, bands: bands}
}

// IsCategoryActive reports whether the category exists and is active.
func (s *Service) IsCategoryActive(ctx context.Context, categoryID category.ID) (bool, error) {
	cat, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, category.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cat.IsActive(), nil
}

// IsProductNameUnique reports whether no product in categoryID is named name.
// The same name may exist in other categories.
func (s *Service) IsProductNameUnique(ctx context.Context, name string, categoryID category.ID) (bool, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range products {
		if p.Name().String() == name && p.CategoryID().Equals(categoryID) {
			return false, nil
		}
	}
	return true, nil
}

// IsPriceWithinAcceptableRange reports whether the category exists and price lies in its band.
func (s *Service) IsPriceWithinAcceptableRange(ctx context.Context, price float64, categoryID category.ID) (bool, error) {
	_, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, category.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.PriceRangeForCategory(categoryID).Contains(price), nil
}

// CanCreateProduct reports whether a product may be created.
// Checks run in order (active category, unique name, price range) and stop at the first failure.
func (s *Service) CanCreateProduct(ctx context.Context, name string, price float64, categoryID category.ID) (bool, error) {
	rule, err := s.CreationViolation(ctx, name, price, categoryID)
	if err != nil {
		return false, err
	}
	return rule == "", nil
}

// CreationViolation returns the first creation rule that fails, or "" when all pass.
func (s *Service) CreationViolation(ctx context.Context, name string, price float64, categoryID category.ID) (Rule, error) {
	active, err := s.IsCategoryActive(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if !active {
		return RuleCategoryActive, nil
	}

	unique, err := s.IsProductNameUnique(ctx, name, categoryID)
	if err != nil {
		return "", err
	}
	if !unique {
		return RuleNameUnique, nil
	}

	inRange, err := s.IsPriceWithinAcceptableRange(ctx, price, categoryID)
	if err != nil {
		return "", err
	}
	if !inRange {
		return RulePriceInRange, nil
	}
	return "", nil
}

// PriceRangeForCategory returns the configured band for categoryID without touching storage.
func (s *Service) PriceRangeForCategory(categoryID category.ID) PriceBand {
	return s.bands.For(categoryID.String())
}

// AveragePriceForCategory returns the mean product price in the category.
// ok is false when the category has no products.
func (s *Service) AveragePriceForCategory(ctx context.Context, categoryID category.ID) (avg float64, ok bool, err error) {
	mean, ok, err := s.averagePrice(ctx, categoryID)
	if err != nil || !ok {
		return 0, ok, err
	}
	return mean.InexactFloat64(), true, nil
}

// IsPriceCompetitive reports whether price is within 20% of the category average, bounds included.
// A category without products accepts any finite price.
func (s *Service) IsPriceCompetitive(ctx context.Context, price float64, categoryID category.ID) (bool, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return false, nil
	}
	mean, ok, err := s.averagePrice(ctx, categoryID)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	deviation := mean.Mul(competitiveTolerance)
	lower := mean.Sub(deviation)
	upper := mean.Add(deviation)

	candidate := decimal.NewFromFloat(price)
	return candidate.GreaterThanOrEqual(lower) && candidate.LessThanOrEqual(upper), nil
}

func (s *Service) averagePrice(ctx context.Context, categoryID category.ID) (decimal.Decimal, bool, error) {
	products, err := s.products.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if len(products) == 0 {
		return decimal.Zero, false, nil
	}

	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price().Decimal())
	}
	return sum.Div(decimal.NewFromInt(int64(len(products)))), true, nil
}

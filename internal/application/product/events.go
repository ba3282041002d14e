// Package product provides application layer handlers for product operations.
package product

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

func publish(ctx context.Context, publisher shared.EventPublisher, name string, entity *product.Product) {
	if publisher == nil {
		return
	}
	event := shared.NewEvent(name, entity.ID(), map[string]interface{}{
		"name":        entity.Name().String(),
		"price":       entity.Price().Value(),
		"category_id": entity.CategoryID().String(),
	})
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("event", name).
			Str("product_id", entity.ID()).
			Msg("Failed to publish product event")
	}
}

// violationError maps a failed creation rule to its use case error.
func violationError(rule product.Rule) error {
	switch rule {
	case product.RuleCategoryActive:
		return product.ErrCategoryInactive
	case product.RuleNameUnique:
		return product.ErrDuplicateName
	case product.RulePriceInRange:
		return product.ErrPriceOutOfRange
	default:
		return nil
	}
}

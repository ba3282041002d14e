// Package category provides application layer handlers for category operations.
package category

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// publish sends a category event. Delivery failures never fail the use case.
func publish(ctx context.Context, publisher shared.EventPublisher, name string, entity *category.Category) {
	if publisher == nil {
		return
	}
	event := shared.NewEvent(name, entity.ID().String(), map[string]interface{}{
		"name":      entity.Name().String(),
		"is_active": entity.IsActive(),
	})
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("event", name).
			Str("category_id", entity.ID().String()).
			Msg("Failed to publish category event")
	}
}

// parseID converts a raw id into a category.ID. Blank ids can never exist, so they map to ErrNotFound.
func parseID(raw string) (category.ID, error) {
	id, err := category.NewID(raw)
	if err != nil {
		return category.ID{}, category.ErrNotFound
	}
	return id, nil
}

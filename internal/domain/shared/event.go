package shared

import (
	"context"
	"errors"
	"time"
)

// Event names published by the catalog.
const (
	EventCategoryCreated     = "category.created"
	EventCategoryUpdated     = "category.updated"
	EventCategoryActivated   = "category.activated"
	EventCategoryDeactivated = "category.deactivated"
	EventCategoryDeleted     = "category.deleted"
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductDeleted      = "product.deleted"
)

// Event is a notification that something happened to a catalog aggregate.
type Event struct {
	Name        string                 `json:"name"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(name, aggregateID string, payload map[string]interface{}) Event {
	return Event{
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now(),
		Payload:     payload,
	}
}

// EventPublisher delivers catalog events to interested parties.
// Implemented in the infrastructure layer.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// MultiPublisher delivers each event to every publisher in order.
// Every publisher is attempted; the failures are joined.
type MultiPublisher []EventPublisher

// Publish implements EventPublisher.
func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, publisher := range m {
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

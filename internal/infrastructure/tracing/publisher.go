package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// Publisher traces event delivery. The event is noted on the caller's span and
// delivery runs inside a producer span that records any failure.
type Publisher struct {
	next shared.EventPublisher
}

// NewPublisher wraps next.
func NewPublisher(next shared.EventPublisher) *Publisher {
	return &Publisher{next: next}
}

// Publish implements shared.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, event shared.Event) error {
	attrs := eventAttributes(event.Name, event.AggregateID)
	trace.SpanFromContext(ctx).AddEvent(event.Name, trace.WithAttributes(attrs...))

	ctx, span := StartSpan(ctx, "publish "+event.Name,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	if err := p.next.Publish(ctx, event); err != nil {
		SetError(ctx, err)
		return err
	}
	return nil
}

package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/rabbitmq"
)

// MockChannel is a mock implementation of rabbitmq.Channel
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func declaredChannel() *MockChannel {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "catalog.events", amqp.ExchangeTopic, true, false, false, false, amqp.Table(nil)).Return(nil)
	return ch
}

func TestNewPublisherWithChannel_DeclareFailure(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "catalog.events", amqp.ExchangeTopic, true, false, false, false, amqp.Table(nil)).
		Return(errors.New("access refused"))

	_, err := rabbitmq.NewPublisherWithChannel(ch, "catalog.events", "catalog-service")

	assert.Error(t, err)
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	ch := declaredChannel()
	event := shared.Event{
		Name:        shared.EventProductCreated,
		AggregateID: "product_1",
		OccurredAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:     map[string]interface{}{"name": "Laptop", "price": 999.9},
	}

	var sent amqp.Publishing
	ch.On("PublishWithContext", ctx, "catalog.events", "product.created", false, false, mock.AnythingOfType("amqp091.Publishing")).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	publisher, err := rabbitmq.NewPublisherWithChannel(ch, "catalog.events", "catalog-service")
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(ctx, event))

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	assert.Equal(t, "product.created", sent.Type)
	assert.Equal(t, "product_1", sent.MessageId)
	assert.Equal(t, "catalog-service", sent.AppId)

	var decoded shared.Event
	require.NoError(t, json.Unmarshal(sent.Body, &decoded))
	assert.Equal(t, event.Name, decoded.Name)
	assert.Equal(t, event.AggregateID, decoded.AggregateID)
	assert.Equal(t, "Laptop", decoded.Payload["name"])
	ch.AssertExpectations(t)
}

func TestPublisher_PublishFailure(t *testing.T) {
	ctx := context.Background()
	ch := declaredChannel()
	ch.On("PublishWithContext", ctx, "catalog.events", "category.deleted", false, false, mock.Anything).
		Return(amqp.ErrClosed)

	publisher, err := rabbitmq.NewPublisherWithChannel(ch, "catalog.events", "catalog-service")
	require.NoError(t, err)

	err = publisher.Publish(ctx, shared.NewEvent(shared.EventCategoryDeleted, "category_1", nil))

	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestPublisher_Close(t *testing.T) {
	ch := declaredChannel()
	ch.On("Close").Return(nil)

	publisher, err := rabbitmq.NewPublisherWithChannel(ch, "catalog.events", "catalog-service")
	require.NoError(t, err)

	assert.NoError(t, publisher.Close())
	ch.AssertCalled(t, "Close")
}

package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/audit"
)

type recordingLogger struct {
	entries []*audit.LogEntry
}

func (l *recordingLogger) Log(_ context.Context, entry *audit.LogEntry) error {
	l.entries = append(l.entries, entry)
	return nil
}

func TestEntryFromEvent(t *testing.T) {
	occurredAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ctx := audit.WithRequestContext(context.Background(), "req-1", "10.0.0.1", "curl/8.0")
	ctx = audit.WithPerformer(ctx, "alice")

	tests := []struct {
		event    string
		resource string
		action   audit.Action
	}{
		{shared.EventCategoryCreated, "category", audit.ActionCreate},
		{shared.EventCategoryActivated, "category", audit.ActionUpdate},
		{shared.EventCategoryDeactivated, "category", audit.ActionUpdate},
		{shared.EventProductUpdated, "product", audit.ActionUpdate},
		{shared.EventProductDeleted, "product", audit.ActionDelete},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			event := shared.Event{Name: tt.event, AggregateID: "id_1", OccurredAt: occurredAt}

			entry := audit.EntryFromEvent(ctx, event)

			assert.Equal(t, tt.resource, entry.Resource)
			assert.Equal(t, tt.action, entry.Action)
			assert.Equal(t, "id_1", entry.RecordID)
			assert.Equal(t, tt.event, entry.Event)
			assert.Equal(t, "alice", entry.PerformedBy)
			assert.Equal(t, "req-1", entry.RequestID)
			assert.Equal(t, "10.0.0.1", entry.IPAddress)
			assert.Equal(t, "curl/8.0", entry.UserAgent)
			assert.Equal(t, occurredAt, entry.PerformedAt)
		})
	}
}

func TestGetPerformer_DefaultsToSystem(t *testing.T) {
	assert.Equal(t, "system", audit.GetPerformer(context.Background()))
	assert.Empty(t, audit.GetRequestID(context.Background()))
}

func TestRecorder_Publish(t *testing.T) {
	logger := &recordingLogger{}
	recorder := audit.NewRecorder(logger)

	err := recorder.Publish(context.Background(),
		shared.NewEvent(shared.EventProductCreated, "product_1", map[string]interface{}{"name": "Laptop"}))

	require.NoError(t, err)
	require.Len(t, logger.entries, 1)
	assert.Equal(t, audit.ActionCreate, logger.entries[0].Action)
	assert.Equal(t, "Laptop", logger.entries[0].Data["name"])
}

func TestLogLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := audit.NewLogLogger(zerolog.New(&buf))
	entry := audit.EntryFromEvent(context.Background(), shared.NewEvent(shared.EventCategoryDeleted, "category_1", nil))

	require.NoError(t, logger.Log(context.Background(), entry))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "audit", line["component"])
	assert.Equal(t, "category", line["resource"])
	assert.Equal(t, "DELETE", line["action"])
	assert.Equal(t, "system", line["performed_by"])
}

// Package audit records an audit trail of catalog mutations.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
)

// Action represents the type of audit action.
type Action string

// Action constants for audit logging.
const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// LogEntry represents an audit log entry.
type LogEntry struct {
	ID          uuid.UUID
	Resource    string
	RecordID    string
	Action      Action
	Event       string
	Data        map[string]interface{}
	PerformedBy string
	PerformedAt time.Time
	RequestID   string
	IPAddress   string
	UserAgent   string
}

// Logger stores audit entries.
type Logger interface {
	// Log records an audit entry.
	Log(ctx context.Context, entry *LogEntry) error
}

// Recorder turns catalog events into audit entries. It implements shared.EventPublisher.
type Recorder struct {
	logger Logger
}

// NewRecorder creates a Recorder writing to logger.
func NewRecorder(logger Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Publish implements shared.EventPublisher.
func (r *Recorder) Publish(ctx context.Context, event shared.Event) error {
	return r.logger.Log(ctx, EntryFromEvent(ctx, event))
}

// EntryFromEvent builds an audit entry from an event and the request context.
func EntryFromEvent(ctx context.Context, event shared.Event) *LogEntry {
	resource, verb, _ := strings.Cut(event.Name, ".")

	return &LogEntry{
		ID:          uuid.New(),
		Resource:    resource,
		RecordID:    event.AggregateID,
		Action:      actionFor(verb),
		Event:       event.Name,
		Data:        event.Payload,
		PerformedBy: GetPerformer(ctx),
		PerformedAt: event.OccurredAt,
		RequestID:   GetRequestID(ctx),
		IPAddress:   GetIPAddress(ctx),
		UserAgent:   GetUserAgent(ctx),
	}
}

func actionFor(verb string) Action {
	switch verb {
	case "created":
		return ActionCreate
	case "deleted":
		return ActionDelete
	default:
		return ActionUpdate
	}
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	ipAddressKey contextKey = "ip_address"
	userAgentKey contextKey = "user_agent"
	performerKey contextKey = "performer"
)

// WithRequestContext adds request context to the context.
func WithRequestContext(ctx context.Context, requestID, ipAddress, userAgent string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	ctx = context.WithValue(ctx, ipAddressKey, ipAddress)
	ctx = context.WithValue(ctx, userAgentKey, userAgent)
	return ctx
}

// WithPerformer adds the performer to the context.
func WithPerformer(ctx context.Context, performer string) context.Context {
	return context.WithValue(ctx, performerKey, performer)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	return stringValue(ctx, ipAddressKey)
}

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string {
	return stringValue(ctx, userAgentKey)
}

// GetPerformer retrieves the performer from context, defaulting to "system".
func GetPerformer(ctx context.Context) string {
	if s := stringValue(ctx, performerKey); s != "" {
		return s
	}
	return "system"
}

func stringValue(ctx context.Context, key contextKey) string {
	if s, ok := ctx.Value(key).(string); ok {
		return s
	}
	return ""
}

package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// LogLogger writes audit entries to a zerolog logger. Used when no database is configured.
type LogLogger struct {
	logger zerolog.Logger
}

// NewLogLogger creates a LogLogger.
func NewLogLogger(logger zerolog.Logger) *LogLogger {
	return &LogLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// Log records an audit entry.
func (l *LogLogger) Log(_ context.Context, entry *LogEntry) error {
	l.logger.Info().
		Str("audit_id", entry.ID.String()).
		Str("resource", entry.Resource).
		Str("record_id", entry.RecordID).
		Str("action", string(entry.Action)).
		Str("event", entry.Event).
		Str("performed_by", entry.PerformedBy).
		Str("request_id", entry.RequestID).
		Interface("data", entry.Data).
		Time("performed_at", entry.PerformedAt).
		Msg("Audit")
	return nil
}

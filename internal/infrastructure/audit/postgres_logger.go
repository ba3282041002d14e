package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/postgres"
)

// PostgresLogger implements audit.Logger using PostgreSQL.
type PostgresLogger struct {
	db *postgres.DB
}

// NewPostgresLogger creates a new PostgreSQL audit logger.
func NewPostgresLogger(db *postgres.DB) *PostgresLogger {
	return &PostgresLogger{db: db}
}

// Log records an audit entry.
func (l *PostgresLogger) Log(ctx context.Context, entry *LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = time.Now()
	}

	data, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit data: %w", err)
	}

	query := `
		INSERT INTO audit_logs (
			id, resource, record_id, action, event, data,
			performed_by, performed_at,
			request_id, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = l.db.ExecContext(ctx, query,
		entry.ID,
		entry.Resource,
		entry.RecordID,
		string(entry.Action),
		entry.Event,
		nullableJSON(data),
		entry.PerformedBy,
		entry.PerformedAt,
		nullableString(entry.RequestID),
		nullableString(entry.IPAddress),
		nullableString(entry.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// GetByRecordID retrieves audit logs for a record, newest first.
func (l *PostgresLogger) GetByRecordID(ctx context.Context, resource, recordID string) ([]*LogEntry, error) {
	query := `
		SELECT id, resource, record_id, action, event, data,
		       performed_by, performed_at, request_id, ip_address, user_agent
		FROM audit_logs
		WHERE resource = $1 AND record_id = $2
		ORDER BY performed_at DESC
	`

	rows, err := l.db.QueryContext(ctx, query, resource, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLogEntries(rows)
}

func scanLogEntries(rows *sql.Rows) ([]*LogEntry, error) {
	var entries []*LogEntry

	for rows.Next() {
		var entry LogEntry
		var action string
		var data, requestID, ipAddress, userAgent sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.Resource,
			&entry.RecordID,
			&action,
			&entry.Event,
			&data,
			&entry.PerformedBy,
			&entry.PerformedAt,
			&requestID,
			&ipAddress,
			&userAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}

		entry.Action = Action(action)
		if data.Valid {
			if err := json.Unmarshal([]byte(data.String), &entry.Data); err != nil {
				// malformed rows keep the entry without data
				entry.Data = nil
			}
		}
		entry.RequestID = requestID.String
		entry.IPAddress = ipAddress.String
		entry.UserAgent = userAgent.String

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func nullableJSON(data []byte) interface{} {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return data
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

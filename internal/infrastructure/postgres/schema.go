package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schemaStatements create the catalog tables. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS mst_category (
		category_id VARCHAR(64) PRIMARY KEY,
		category_name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mst_product (
		product_id VARCHAR(64) PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		category_id VARCHAR(64) NOT NULL,
		description TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
		UNIQUE (category_id, product_name)
	)`,
	`ALTER TABLE mst_product ALTER COLUMN price TYPE DOUBLE PRECISION`,
	`CREATE INDEX IF NOT EXISTS idx_product_category ON mst_product(category_id)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		resource VARCHAR(64) NOT NULL,
		record_id VARCHAR(64) NOT NULL,
		action VARCHAR(16) NOT NULL,
		event VARCHAR(64) NOT NULL,
		data JSONB,
		performed_by VARCHAR(128) NOT NULL,
		performed_at TIMESTAMP WITH TIME ZONE NOT NULL,
		request_id VARCHAR(64),
		ip_address VARCHAR(64),
		user_agent TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_record ON audit_logs(resource, record_id)`,
}

// EnsureSchema creates the catalog tables if they do not exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("Database schema ensured")
	return nil
}

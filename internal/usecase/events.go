// Package usecase implements the state-changing operations of the
// staging pipeline. Each writer owns a pgx transaction spanning every
// effect of one operation, so partial persistence is never observable.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bricktickler.io/dossier/internal/domain"
)

// newID returns a time-ordered UUID, falling back to v4 when the
// monotonic source fails.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// appendEvent writes one audit entry inside the caller's transaction.
// Every state-changing operation appends exactly one event.
func appendEvent(ctx context.Context, tx pgx.Tx, blockID uuid.UUID, tableName string, eventType domain.EventType, payload json.RawMessage) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO exo_block_events (id, block_id, table_name, event_type, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		newID(), blockID, tableName, eventType, payload)
	if err != nil {
		return fmt.Errorf("append %s event for block %s: %w", eventType, blockID, err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustview/internal/types"
)

// ErrReadOnly is returned when writing through a read-only handle.
var ErrReadOnly = errors.New("database opened read-only")

// SaveIntent upserts one intent and replaces its steps in a single
// transaction. Empty optional fields are stored as NULL, like the
// Orchestrator does for steps that have not produced a hash or error.
func (d *DB) SaveIntent(ctx context.Context, detail *types.IntentDetail) error {
	if d.readOnly {
		return ErrReadOnly
	}
	if detail == nil || detail.IntentID == "" {
		return fmt.Errorf("intent id is required")
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO intents (id, status, created_at, message, raw_intent)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			created_at = excluded.created_at,
			message = excluded.message,
			raw_intent = excluded.raw_intent`,
		detail.IntentID, string(detail.Status), detail.CreatedAt,
		nullable(detail.Message), nullable(detail.RawIntent))
	if err != nil {
		return fmt.Errorf("failed to save intent %s: %w", detail.IntentID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM intent_steps WHERE intent_id = ?", detail.IntentID); err != nil {
		return fmt.Errorf("failed to clear steps for %s: %w", detail.IntentID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO intent_steps (intent_id, step_index, action, status, tx_hash, error_msg)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare step insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range detail.Steps {
		if _, err := stmt.ExecContext(ctx, detail.IntentID, s.StepIndex, s.Action, string(s.Status),
			nullable(s.TxHash), nullable(s.Error)); err != nil {
			return fmt.Errorf("failed to save step %d of %s: %w", s.StepIndex, detail.IntentID, err)
		}
	}

	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

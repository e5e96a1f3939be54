package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustview/internal/orchestrator"
	"trustview/internal/types"
)

var _ orchestrator.Source = (*DB)(nil)

// ListIntents returns the most recent intents, newest first. The schema
// carries no wallet column, so wallet is ignored.
func (d *DB) ListIntents(ctx context.Context, wallet string) ([]types.Intent, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, status, created_at, message FROM intents ORDER BY created_at DESC LIMIT ?", d.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intents from database: %w", err)
	}
	defer rows.Close()

	intents := []types.Intent{}
	for rows.Next() {
		var (
			in              types.Intent
			status, message sql.NullString
			createdAt       sql.NullInt64
		)
		if err := rows.Scan(&in.IntentID, &status, &createdAt, &message); err != nil {
			return nil, fmt.Errorf("failed to scan intent row from database: %w", err)
		}
		in.Status = types.Status(status.String)
		in.CreatedAt = createdAt.Int64
		in.Message = message.String
		intents = append(intents, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read intents from database: %w", err)
	}
	return intents, nil
}

// GetIntent returns one intent with its steps ordered by step_index.
func (d *DB) GetIntent(ctx context.Context, intentID, wallet string) (*types.IntentDetail, error) {
	var (
		detail                     types.IntentDetail
		status, message, rawIntent sql.NullString
		createdAt                  sql.NullInt64
	)
	err := d.db.QueryRowContext(ctx,
		"SELECT id, status, created_at, message, raw_intent FROM intents WHERE id = ?", intentID).
		Scan(&detail.IntentID, &status, &createdAt, &message, &rawIntent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orchestrator.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intent from database: %w", err)
	}
	detail.Status = types.Status(status.String)
	detail.CreatedAt = createdAt.Int64
	detail.Message = message.String
	detail.RawIntent = rawIntent.String

	rows, err := d.db.QueryContext(ctx, `
		SELECT step_index, action, status, tx_hash, error_msg
		FROM intent_steps
		WHERE intent_id = ?
		ORDER BY step_index ASC, id ASC`, intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps from database: %w", err)
	}
	defer rows.Close()

	detail.Steps = []types.Step{}
	for rows.Next() {
		var (
			step                                  types.Step
			index                                 sql.NullInt64
			action, stepStatus, txHash, errorMsg sql.NullString
		)
		if err := rows.Scan(&index, &action, &stepStatus, &txHash, &errorMsg); err != nil {
			return nil, fmt.Errorf("failed to scan step row from database: %w", err)
		}
		step.StepIndex = int(index.Int64)
		step.Action = action.String
		step.Status = types.Status(stepStatus.String)
		step.TxHash = txHash.String
		step.Error = errorMsg.String
		detail.Steps = append(detail.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps from database: %w", err)
	}
	return &detail, nil
}

// Health reports ok when the database answers a trivial query.
func (d *DB) Health(ctx context.Context) (*orchestrator.HealthStatus, error) {
	if err := d.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return &orchestrator.HealthStatus{Status: "ok"}, nil
}

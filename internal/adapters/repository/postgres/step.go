package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/google/uuid"
)

type sqlStepRepository struct {
	db SQLQuerier
}

// NewSqlStepRepository creates sqlStepRepository that implements port.StepRepository
func NewSqlStepRepository(db SQLQuerier) port.StepRepository {
	return &sqlStepRepository{
		db: db,
	}
}

// Append inserts a step at the end of the document's log.
func (s *sqlStepRepository) Append(ctx context.Context, step *domain.VerificationStep) error {
	var metadata []byte
	if step.Metadata != nil {
		var err error
		metadata, err = json.Marshal(step.Metadata)
		if err != nil {
			return fmt.Errorf("error marshaling step metadata: %w", err)
		}
	}

	query := `INSERT INTO verification_steps (id, document_id, step_type, status, message, metadata, started_at, completed_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		step.ID,
		step.DocumentID,
		step.Type,
		step.Status,
		step.Message,
		metadata,
		step.StartedAt,
		step.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting verification step: %w", err)
	}
	return nil
}

// ListByDocument returns the document's steps in insertion order.
func (s *sqlStepRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.VerificationStep, error) {
	query := `SELECT id, document_id, step_type, status, message, metadata, started_at, completed_at
              FROM verification_steps
              WHERE document_id = $1
              ORDER BY started_at, id`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("error listing verification steps: %w", err)
	}
	defer rows.Close()

	var steps []domain.VerificationStep
	for rows.Next() {
		var st domain.VerificationStep
		var metadata []byte
		if err := rows.Scan(&st.ID, &st.DocumentID, &st.Type, &st.Status, &st.Message, &metadata, &st.StartedAt, &st.CompletedAt); err != nil {
			return nil, fmt.Errorf("error scanning verification step: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &st.Metadata); err != nil {
				return nil, fmt.Errorf("error unmarshaling step metadata: %w", err)
			}
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// CloseInFlight resolves every IN_PROGRESS step of the document to status.
// The log stays append-only otherwise: inserted steps never disappear.
func (s *sqlStepRepository) CloseInFlight(ctx context.Context, documentID uuid.UUID, status domain.StepStatus, completedAt time.Time) error {
	query := `UPDATE verification_steps
              SET status = $1, completed_at = $2
              WHERE document_id = $3 AND status = 'IN_PROGRESS'`

	if _, err := s.db.ExecContext(ctx, query, status, completedAt, documentID); err != nil {
		return fmt.Errorf("error closing in-flight steps: %w", err)
	}
	return nil
}

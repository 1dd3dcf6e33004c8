package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
)

type sqlAuditRepository struct {
	db SQLQuerier
}

// NewSqlAuditRepository creates sqlAuditRepository that implements port.AuditRepository
func NewSqlAuditRepository(db SQLQuerier) port.AuditRepository {
	return &sqlAuditRepository{
		db: db,
	}
}

// Insert appends one audit entry. The table is append-only; there are no
// update or delete operations.
func (s *sqlAuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("error marshaling audit details: %w", err)
		}
	}

	query := `INSERT INTO audit_logs (user_id, action, resource, resource_id, details, ip_address, user_agent)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		details,
		entry.IPAddress,
		entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("error inserting audit entry: %w", err)
	}
	return nil
}

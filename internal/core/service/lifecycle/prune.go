package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// PruneBackups removes backup snapshots older than the retention window.
// Snapshot directories whose name is not a date are left untouched.
func (s *lifecycleService) PruneBackups(ctx context.Context, retainDays int) error {
	if retainDays <= 0 {
		return fmt.Errorf("retain days must be positive, got %d", retainDays)
	}

	dates, err := s.blobs.ListBackupDates(ctx)
	if err != nil {
		return fmt.Errorf("could not list backup snapshots: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)

	var removed []string
	for _, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			s.logger.Warn("skipping unrecognized backup entry", "name", d)
			continue
		}
		if !day.Before(cutoff) {
			continue
		}
		if err := s.blobs.DeleteBackupDate(ctx, d); err != nil {
			s.logger.Warn("could not remove backup snapshot", "date", d, "error", err)
			continue
		}
		removed = append(removed, d)
	}

	s.logger.Info("backup retention pass finished",
		"retain_days", retainDays,
		"removed", len(removed),
	)

	s.audit.Record(ctx, domain.AuditEntry{
		Action:   domain.AuditBackupCleanupCompleted,
		Resource: "backup",
		Details: map[string]any{
			"retain_days": retainDays,
			"removed":     removed,
		},
	})

	return nil
}

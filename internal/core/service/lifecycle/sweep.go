package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
)

// backupOne copies a single stored file into the snapshot under its own
// I/O deadline, so one hung copy cannot stall the whole sweep.
func (s *lifecycleService) backupOne(ctx context.Context, storedPath, date string) error {
	bctx, cancel := s.blobCtx(ctx)
	defer cancel()
	return mapDeadline(s.blobs.Backup(bctx, storedPath, date))
}

// DailyBackupSweep copies every stored file into today's backup snapshot.
// Individual copy failures are logged and counted; the sweep continues so
// one bad file never blocks the rest.
func (s *lifecycleService) DailyBackupSweep(ctx context.Context) error {
	date := time.Now().UTC().Format("2006-01-02")

	paths, err := s.blobs.ListStored(ctx)
	if err != nil {
		s.audit.Record(ctx, domain.AuditEntry{
			Action:   domain.AuditDailyBackupFailed,
			Resource: "backup",
			Details:  map[string]any{"date": date, "error": err.Error()},
		})
		return fmt.Errorf("could not list stored files: %w", err)
	}

	var failed int
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.backupOne(ctx, p, date); err != nil {
			failed++
			s.logger.Warn("backup copy failed", "stored_path", p, "error", err)
		}
	}

	s.logger.Info("daily backup sweep finished",
		"date", date,
		"total", len(paths),
		"failed", failed,
	)

	s.audit.Record(ctx, domain.AuditEntry{
		Action:   domain.AuditDailyBackupCompleted,
		Resource: "backup",
		Details: map[string]any{
			"date":   date,
			"total":  len(paths),
			"failed": failed,
		},
	})

	return nil
}

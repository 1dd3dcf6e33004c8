// Command backup runs one backup cycle: copy every live stored file into
// today's dated backup directory, then prune backup days older than the
// retention window. Intended to be scheduled daily (cron or a k8s CronJob).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/repository/postgres"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/local"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/minio"
	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/audit"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/lifecycle"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	blobStore, err := initBlobStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init blob storage", "error", err)
		os.Exit(1)
	}

	unitOfWork := postgres.NewUnitOfWork(db)
	auditRepo := postgres.NewSqlAuditRepository(db)
	auditRecorder := audit.NewRecorder(auditRepo, logger)
	lifecycleService := lifecycle.NewLifecycleService(unitOfWork, blobStore, auditRecorder, cfg.Upload, logger)

	logger.Info("backup cycle starting", "retain_days", cfg.Backup.RetainDays)

	if err := lifecycleService.DailyBackupSweep(ctx); err != nil {
		logger.Error("backup sweep failed", "error", err)
		os.Exit(1)
	}

	if err := lifecycleService.PruneBackups(ctx, cfg.Backup.RetainDays); err != nil {
		logger.Error("backup prune failed", "error", err)
		os.Exit(1)
	}

	logger.Info("backup cycle complete")
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	case "local":
		return local.NewAdapter(cfg.Storage.Root, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

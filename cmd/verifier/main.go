package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/eventbroker/nats"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/repository/postgres"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/local"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/minio"
	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/audit"
	documentservice "github.com/MyagmarsurenMike/e-proof/internal/core/service/document"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/verifier"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize database
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
	logger.Info("db connection established")

	blobStore, err := initBlobStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init blob storage", "error", err)
		os.Exit(1)
	}
	logger.Info("blob storage initialized", "backend", cfg.Storage.Backend)

	// The verifier publishes follow-up events for the transitions it applies.
	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	// Initialize repositories
	unitOfWork := postgres.NewUnitOfWork(db)
	auditRepo := postgres.NewSqlAuditRepository(db)

	// Initialize services
	auditRecorder := audit.NewRecorder(auditRepo, logger)
	documentService := documentservice.NewDocumentService(unitOfWork, blobStore, auditRecorder, publisher, cfg.Upload, logger)
	verifierService := verifier.NewVerifierService(documentService, logger)

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := natsConsumer.Close(); err != nil {
			logger.Error("failed to close NATS consumer", "error", err)
		}
	}()
	logger.Info("NATS consumer initialized")

	// Subscribe to NATS
	if err := natsConsumer.Subscribe(ctx, verifierService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down verifier service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	<-shutdownCtx.Done()
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		logger.Info("shutdown timeout exceeded")
	}

	logger.Info("verifier service shutdown complete")
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

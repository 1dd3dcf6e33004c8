package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/MyagmarsurenMike/e-proof/internal/adapters/eventbroker/nats"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi"
	documenthandler "github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/v1/document"
	filehandler "github.com/MyagmarsurenMike/e-proof/internal/adapters/handlers/http/chi/v1/file"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/ratelimit/memory"
	redisratelimit "github.com/MyagmarsurenMike/e-proof/internal/adapters/ratelimit/redis"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/repository/postgres"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/local"
	"github.com/MyagmarsurenMike/e-proof/internal/adapters/storage/minio"
	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/port"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/audit"
	documentservice "github.com/MyagmarsurenMike/e-proof/internal/core/service/document"
	fileservice "github.com/MyagmarsurenMike/e-proof/internal/core/service/file"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/lifecycle"
	"github.com/MyagmarsurenMike/e-proof/internal/core/service/token"
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
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	blobStore, err := initBlobStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init blob storage", "error", err)
		os.Exit(1)
	}
	logger.Info("blob storage initialized", "backend", cfg.Storage.Backend)

	//rate limit counter
	counter, err := initCounterStore(cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to init rate limit counter", "error", err)
		os.Exit(1)
	}

	//event broker
	publisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init NATS publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()
	logger.Info("NATS publisher initialized")

	//repositories
	unitOfWork := postgres.NewUnitOfWork(db)
	auditRepo := postgres.NewSqlAuditRepository(db)

	//services
	auditRecorder := audit.NewRecorder(auditRepo, logger)
	tokenIssuer := token.NewIssuer(cfg.Tokens.FileAccessSecret, cfg.Tokens.TTL)
	fileService := fileservice.NewFileService(unitOfWork, blobStore, auditRecorder, tokenIssuer, cfg.Upload, logger)
	lifecycleService := lifecycle.NewLifecycleService(unitOfWork, blobStore, auditRecorder, cfg.Upload, logger)
	documentService := documentservice.NewDocumentService(unitOfWork, blobStore, auditRecorder, publisher, cfg.Upload, logger)

	//http
	fileHandler := filehandler.NewFileHandlerV1(fileService, lifecycleService, tokenIssuer, logger)
	documentHandler := documenthandler.NewDocumentHandlerV1(documentService, logger)

	router := chi.NewRouter(logger, fileHandler, documentHandler, chi.RouterConfig{
		JWTSecret:       cfg.Auth.JWTSecret,
		Env:             cfg.Env.Env,
		MaxRequestSize:  cfg.Upload.MaxSize + (1 << 20), // multipart framing overhead
		RateLimitMax:    cfg.Upload.RateLimitMax,
		RateLimitWindow: cfg.Upload.RateLimitWindow,
		Counter:         counter,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

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

func initCounterStore(cfg config.RedisConfig, logger *slog.Logger) (port.CounterStore, error) {
	if cfg.Addr == "" {
		logger.Info("using in-process rate limit counter")
		return memory.NewStore(), nil
	}
	logger.Info("using redis rate limit counter", "addr", cfg.Addr)
	return redisratelimit.NewStore(cfg.Addr, cfg.Password, cfg.DB)
}

package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Minio    MinioConfig
	NATS     NATSConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Tokens   TokenConfig
	Upload   UploadConfig
	Backup   BackupConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// StorageConfig selects the blob storage backend. "local" keeps bytes on
// disk under Root; "minio" stores them in an S3-compatible bucket.
type StorageConfig struct {
	Backend string `envconfig:"STORAGE_BACKEND" default:"local"`
	Root    string `envconfig:"STORAGE_ROOT" default:"storage"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"DOCUMENTS"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"documents.events"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"verifier"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" default:"verifiers"`
}

// RedisConfig is optional: an empty Addr keeps the upload rate limiter on the
// in-process counter store.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
}

type TokenConfig struct {
	FileAccessSecret string        `envconfig:"FILE_ACCESS_SECRET" required:"true"`
	TTL              time.Duration `envconfig:"FILE_ACCESS_TOKEN_TTL" default:"1m"`
}

type UploadConfig struct {
	MaxSize         int64         `envconfig:"UPLOAD_MAX_SIZE" default:"52428800"` // 50MB
	IOTimeout       time.Duration `envconfig:"UPLOAD_IO_TIMEOUT" default:"30s"`
	RateLimitWindow time.Duration `envconfig:"UPLOAD_RATE_LIMIT_WINDOW" default:"15m"`
	RateLimitMax    int           `envconfig:"UPLOAD_RATE_LIMIT_MAX" default:"10"`
}

type BackupConfig struct {
	RetainDays int `envconfig:"BACKUP_RETAIN_DAYS" default:"30"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

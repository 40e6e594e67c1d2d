package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	NATS     NATSConfig
	Session  SessionConfig
	Trainer  TrainerConfig
	Log      LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxUploadBytes  int64    `envconfig:"MAX_UPLOAD_BYTES" default:"26214400"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" default:"postgres"`
	Password       string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string        `envconfig:"DB_NAME" default:"voice_dataset"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns       int           `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds blob storage configuration
type StorageConfig struct {
	Type            string `envconfig:"STORAGE_TYPE" default:"minio"` // "minio" or "nats"
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"recordings"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:"http://localhost:9000"`
	AudioExtension  string `envconfig:"STORAGE_AUDIO_EXTENSION" default:"wav"`
}

// NATSConfig holds NATS configuration for the object store backend
type NATSConfig struct {
	URL string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
}

// SessionConfig holds recording session configuration
type SessionConfig struct {
	Store        string        `envconfig:"SESSION_STORE" default:"memory"` // "memory" or "redis"
	TTL          time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	StoreTimeout time.Duration `envconfig:"SESSION_STORE_TIMEOUT" default:"15s"`
}

// TrainerConfig holds the external training service configuration
type TrainerConfig struct {
	URL        string        `envconfig:"TRAINER_URL" default:"http://localhost:8000"`
	Timeout    time.Duration `envconfig:"TRAINER_TIMEOUT" default:"60s"`
	MaxRetries uint64        `envconfig:"TRAINER_MAX_RETRIES" default:"3"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"30"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Storage,
		&config.NATS,
		&config.Session,
		&config.Trainer,
		&config.Log,
	}
	// Each section is processed without a prefix so keys match their tags exactly.
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "minio", "nats":
	default:
		return fmt.Errorf("STORAGE_TYPE must be minio or nats, got %q", c.Storage.Type)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store)
	}
	if strings.TrimSpace(c.Storage.AudioExtension) == "" || strings.Contains(c.Storage.AudioExtension, ".") {
		return fmt.Errorf("STORAGE_AUDIO_EXTENSION must be a bare extension such as wav")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

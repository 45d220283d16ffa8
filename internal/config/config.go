package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Translation TranslationConfig
	Items       ItemsConfig
	MinIO       MinIOConfig
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"8010"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName          string        `env:"DB_NAME" envDefault:"pantry_db"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	QueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"10s"`
}

// TranslationConfig controls the automatic translation pipeline.
type TranslationConfig struct {
	Provider        string        `env:"TRANSLATION_PROVIDER" envDefault:"openai"`
	APIKey          string        `env:"TRANSLATION_API_KEY"`
	BaseURL         string        `env:"TRANSLATION_BASE_URL"` // empty means api.openai.com
	Model           string        `env:"TRANSLATION_MODEL" envDefault:"gpt-4o-mini"`
	RequestTimeout  time.Duration `env:"TRANSLATION_REQUEST_TIMEOUT" envDefault:"60s"`
	CallDelay       time.Duration `env:"TRANSLATION_CALL_DELAY" envDefault:"500ms"`
	QueueSize       int           `env:"TRANSLATION_QUEUE_SIZE" envDefault:"256"`
	Workers         int           `env:"TRANSLATION_WORKERS" envDefault:"1"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	BackfillCron    string        `env:"TRANSLATION_BACKFILL_CRON" envDefault:"@every 6h"`
	PreserveManual  bool          `env:"TRANSLATION_PRESERVE_MANUAL" envDefault:"true"`
}

// ItemsConfig holds the global per-client item limit consumed by food item validation.
type ItemsConfig struct {
	DefaultLimit int `env:"ITEMS_DEFAULT_LIMIT" envDefault:"2"`
	MaxLimit     int `env:"ITEMS_MAX_LIMIT" envDefault:"99"`
}

type MinIOConfig struct {
	Endpoint        string `env:"AWS_ENDPOINT" envDefault:"localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	BucketName      string `env:"AWS_BUCKET" envDefault:"pantry"`
	Region          string `env:"AWS_DEFAULT_REGION" envDefault:"us-east-1"`
	UseSSL          bool   `env:"AWS_USE_SSL" envDefault:"false"`
	PublicURL       string `env:"AWS_URL" envDefault:"http://localhost:9000/pantry"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Translation.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.Translation.DefaultLanguage))
	return cfg, nil
}

// GetDSN returns PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// TranslationEnabled reports whether a real provider is configured.
func (c *Config) TranslationEnabled() bool {
	return c.Translation.Provider != "disabled" && c.Translation.APIKey != ""
}

// MinIOEnabled reports whether object storage credentials are present.
func (c *Config) MinIOEnabled() bool {
	return c.MinIO.AccessKeyID != "" && c.MinIO.SecretAccessKey != ""
}

// Validate reports configuration problems. Missing credentials for optional
// integrations are returned as errors so the caller can log them as warnings.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Translation.DefaultLanguage == "" {
		return fmt.Errorf("DEFAULT_LANGUAGE is required")
	}
	if c.Items.MaxLimit < 1 {
		return fmt.Errorf("ITEMS_MAX_LIMIT must be >= 1")
	}
	if c.Items.DefaultLimit < 1 || c.Items.DefaultLimit > c.Items.MaxLimit {
		return fmt.Errorf("ITEMS_DEFAULT_LIMIT must be between 1 and ITEMS_MAX_LIMIT (%d)", c.Items.MaxLimit)
	}
	if c.Translation.Workers < 1 {
		return fmt.Errorf("TRANSLATION_WORKERS must be >= 1")
	}
	if !c.TranslationEnabled() {
		return fmt.Errorf("TRANSLATION_API_KEY is not set, automatic translations are disabled")
	}
	if !c.MinIOEnabled() {
		return fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required for image uploads")
	}
	return nil
}

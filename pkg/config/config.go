package config

import (
	"fmt"
	"log"
	"net/url"
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
	AI       AIConfig
	Webhook  WebhookConfig
	Report   ReportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8000"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	Version         string   `envconfig:"APP_VERSION" default:"1.0.0"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration.
// URL takes precedence over the discrete fields when set.
type DatabaseConfig struct {
	URL            string        `envconfig:"DATABASE_URL"`
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" default:"postgres"`
	Password       string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string        `envconfig:"DB_NAME" default:"veritas"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns       int           `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// RedisConfig holds Redis configuration. An empty Addr disables the
// cross-process dispatch lock.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL  time.Duration `envconfig:"DISPATCH_LOCK_TTL" default:"5m"`
}

// StorageConfig holds object storage configuration for the email archive.
// An empty Endpoint disables archiving.
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"veritas-emails"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// AIConfig holds chat completion settings
type AIConfig struct {
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	BaseURL     string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	Model       string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.7"`
	MaxTokens   int           `envconfig:"OPENAI_MAX_TOKENS" default:"4000"`
	Timeout     time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
}

// placeholderAPIKey is what local .env templates ship with; it never reaches the API.
const placeholderAPIKey = "test-key"

// Enabled reports whether a usable API key is configured
func (a AIConfig) Enabled() bool {
	return a.APIKey != "" && a.APIKey != placeholderAPIKey
}

// WebhookConfig holds the outbound email relay settings
type WebhookConfig struct {
	URL       string        `envconfig:"WEBHOOK_URL"`
	Timeout   time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"30s"`
	Secret    string        `envconfig:"WEBHOOK_SECRET"`
	Source    string        `envconfig:"WEBHOOK_SOURCE" default:"veritas-ai-backend"`
	UserAgent string        `envconfig:"WEBHOOK_USER_AGENT" default:"Veritas-AI-Backend/1.0"`
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	FromEmail           string `envconfig:"EMAIL_FROM" default:"ricardo.barroca@dengun.com"`
	FromName            string `envconfig:"EMAIL_FROM_NAME" default:"Ricardo Barroca"`
	GuaranteedRecipient string `envconfig:"REPORT_GUARANTEED_RECIPIENT" default:"btcto154k@gmail.com"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv reads every section from the process environment without
// touching .env files or validating the result.
func FromEnv() (*Config, error) {
	config := &Config{}

	sections := []struct {
		name   string
		target interface{}
	}{
		{"server", &config.Server},
		{"database", &config.Database},
		{"redis", &config.Redis},
		{"storage", &config.Storage},
		{"ai", &config.AI},
		{"webhook", &config.Webhook},
		{"report", &config.Report},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Webhook.URL == "" {
		return fmt.Errorf("WEBHOOK_URL is required")
	}
	if u, err := url.Parse(c.Webhook.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WEBHOOK_URL must be an absolute URL, got %q", c.Webhook.URL)
	}
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive")
	}
	if c.Redis.LockTTL <= c.Webhook.Timeout {
		return fmt.Errorf("DISPATCH_LOCK_TTL must exceed WEBHOOK_TIMEOUT")
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2")
	}
	if c.Report.FromEmail == "" {
		return fmt.Errorf("EMAIL_FROM is required")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
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

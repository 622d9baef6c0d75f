// Package config loads service configuration from the environment. A .env
// file in the working directory is honored when present; real environment
// variables win over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	defaultServiceName        = "voc-insight"
	defaultServiceVersion     = "1.0.0"
	defaultServicePort        = 8090
	defaultCacheTTLMin        = 5
	defaultRefreshIntervalMin = 10
	defaultBodyCap            = 300
	defaultSheetsReadsPerSec  = 1
	defaultSheetsReadBurst    = 5
	defaultDBDriver           = "sqlite3"
	defaultDBDSN              = "voc.db"
	defaultESURL              = ""
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
)

// Config holds all configuration for the VOC insight service.
type Config struct {
	Service       ServiceConfig
	Sheets        SheetsConfig
	Database      DatabaseConfig
	Elasticsearch ElasticsearchConfig
	Logging       LoggingConfig
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string
	Version         string
	Port            int
	Debug           bool
	CacheTTL        time.Duration
	RefreshInterval time.Duration
	BodyCap         int
}

// SheetsConfig holds Google Sheets source configuration.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	ReadsPerSecond  int
	ReadBurst       int
}

// DatabaseConfig holds access-request store configuration.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// ElasticsearchConfig holds archive configuration. An empty URL disables
// archiving.
type ElasticsearchConfig struct {
	URL      string
	Username string
	Password string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, loading .env first when
// one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Service: ServiceConfig{
			Name:            envString("SERVICE_NAME", defaultServiceName),
			Version:         envString("SERVICE_VERSION", defaultServiceVersion),
			Debug:           envBool("APP_DEBUG", false),
			BodyCap:         defaultBodyCap,
			CacheTTL:        defaultCacheTTLMin * time.Minute,
			RefreshInterval: defaultRefreshIntervalMin * time.Minute,
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			CredentialsFile: os.Getenv("SHEETS_CREDENTIALS_FILE"),
			ReadsPerSecond:  defaultSheetsReadsPerSec,
			ReadBurst:       defaultSheetsReadBurst,
		},
		Database: DatabaseConfig{
			Driver: envString("DB_DRIVER", defaultDBDriver),
			DSN:    envString("DB_DSN", defaultDBDSN),
		},
		Elasticsearch: ElasticsearchConfig{
			URL:      envString("ELASTICSEARCH_URL", defaultESURL),
			Username: os.Getenv("ELASTICSEARCH_USERNAME"),
			Password: os.Getenv("ELASTICSEARCH_PASSWORD"),
		},
		Logging: LoggingConfig{
			Level:  envString("LOG_LEVEL", defaultLogLevel),
			Format: envString("LOG_FORMAT", defaultLogFormat),
		},
	}

	var err error
	if cfg.Service.Port, err = envInt("SERVICE_PORT", defaultServicePort); err != nil {
		return nil, err
	}
	if cfg.Service.BodyCap, err = envInt("BODY_CAP", defaultBodyCap); err != nil {
		return nil, err
	}
	if cfg.Service.CacheTTL, err = envDuration("CACHE_TTL", cfg.Service.CacheTTL); err != nil {
		return nil, err
	}
	if cfg.Service.RefreshInterval, err = envDuration("REFRESH_INTERVAL", cfg.Service.RefreshInterval); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite3" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

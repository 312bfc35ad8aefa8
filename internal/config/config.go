package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Identity provider names
const (
	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

// Database driver names
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		ConnMaxIdleTime string `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
		HealthCheck     string `yaml:"health_check_period" env:"DB_HEALTH_CHECK_PERIOD"`
		ConnectTimeout  string `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
		PingOnAcquire   bool   `yaml:"ping_on_acquire" env:"DB_PING_ON_ACQUIRE"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Session struct {
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		MaxAge     string `yaml:"max_age" env:"SESSION_MAX_AGE"`
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
	} `yaml:"session"`

	Identity struct {
		Provider        string `yaml:"provider" env:"IDENTITY_PROVIDER"`
		Issuer          string `yaml:"issuer" env:"IDENTITY_ISSUER"`
		IDTokenSecret   string `yaml:"id_token_secret" env:"IDENTITY_ID_TOKEN_SECRET"`
		ProjectID       string `yaml:"project_id" env:"FIREBASE_PROJECT_ID"`
		CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	} `yaml:"identity"`

	Auth struct {
		AdminSecretHash string `yaml:"admin_secret_hash" env:"ADMIN_SECRET_HASH"`
	} `yaml:"auth"`

	Jobs struct {
		PublicWrite bool `yaml:"public_write" env:"JOBS_PUBLIC_WRITE"`
	} `yaml:"jobs"`

	Resume struct {
		MaxBytes int64 `yaml:"max_bytes" env:"RESUME_MAX_BYTES"`
	} `yaml:"resume"`

	RateLimit struct {
		RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
		RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
		Requests      int    `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
		Window        string `yaml:"window" env:"RATE_LIMIT_WINDOW"`
		KeyPrefix     string `yaml:"key_prefix" env:"RATE_LIMIT_KEY_PREFIX"`
		RedisTimeout  string `yaml:"redis_timeout" env:"RATE_LIMIT_REDIS_TIMEOUT"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from defaults, an optional YAML file, an optional .env file and the environment
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	config.Server.StoragePath = "uploads"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "careerportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.ConnMaxIdleTime = "15m"
	config.Database.HealthCheck = "1m"
	config.Database.ConnectTimeout = "10s"
	config.Database.MigrationsDir = "migrations"

	config.Session.CookieName = "session"
	config.Session.MaxAge = "120h"

	config.Identity.Provider = ProviderLocal
	config.Identity.Issuer = "careerportal.local"

	config.Resume.MaxBytes = 7 * 1024 * 1024

	config.RateLimit.Requests = 20
	config.RateLimit.Window = "1m"
	config.RateLimit.KeyPrefix = "careerportal:ratelimit"
	config.RateLimit.RedisTimeout = "250ms"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		for name, value := range map[string]string{
			"connection lifetime":  config.Database.ConnMaxLifetime,
			"connection idle time": config.Database.ConnMaxIdleTime,
			"health check period":  config.Database.HealthCheck,
			"connect timeout":      config.Database.ConnectTimeout,
		} {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid database %s: %w", name, err)
			}
		}
		if config.Database.MaxOpenConns < 1 || config.Database.MaxIdleConns > config.Database.MaxOpenConns {
			return fmt.Errorf("database pool needs max_open_conns >= 1 and max_idle_conns <= max_open_conns")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if _, err := time.ParseDuration(config.Session.MaxAge); err != nil {
		return fmt.Errorf("invalid session max age format: %w", err)
	}

	switch config.Identity.Provider {
	case ProviderLocal:
		if config.Session.Secret == "" {
			return fmt.Errorf("session secret is required for the local identity provider")
		}
		if config.Identity.IDTokenSecret == "" {
			return fmt.Errorf("identity ID token secret is required for the local identity provider")
		}
	case ProviderFirebase:
		if config.Identity.ProjectID == "" {
			return fmt.Errorf("firebase project ID is required")
		}
	default:
		return fmt.Errorf("unsupported identity provider %q", config.Identity.Provider)
	}

	if config.IsProduction() && config.Auth.AdminSecretHash == "" {
		return fmt.Errorf("admin secret hash is required in production")
	}

	if config.Resume.MaxBytes <= 0 {
		return fmt.Errorf("resume max bytes must be positive")
	}

	if _, err := time.ParseDuration(config.RateLimit.Window); err != nil {
		return fmt.Errorf("invalid rate limit window: %w", err)
	}
	if _, err := time.ParseDuration(config.RateLimit.RedisTimeout); err != nil {
		return fmt.Errorf("invalid rate limit redis timeout: %w", err)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// SessionMaxAge returns the parsed session lifetime
func (c *Config) SessionMaxAge() time.Duration {
	d, err := time.ParseDuration(c.Session.MaxAge)
	if err != nil {
		return 5 * 24 * time.Hour
	}
	return d
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

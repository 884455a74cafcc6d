package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET. Never use it in production.
const DefaultJWTSecret = "llave_secreta"

type Config struct {
	APIPort   string `envconfig:"PORT" default:"4000"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"llave_secreta"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	DBHost     string `envconfig:"POSTGRE_HOST" default:"localhost"`
	DBPort     string `envconfig:"POSTGRE_PORT" default:"5432"`
	DBUser     string `envconfig:"POSTGRE_USER" default:"postgres"`
	DBPassword string `envconfig:"POSTGRE_PASSWORD" default:""`
	DBName     string `envconfig:"POSTGRE_DATABASE" default:""`
	DBSslMode  string `envconfig:"POSTGRE_SSLMODE" default:"disable"`

	DBMaxOpenConns   int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBConnectRetries uint64        `envconfig:"DB_CONNECT_RETRIES" default:"5"`
	DBConnectBackoff time.Duration `envconfig:"DB_CONNECT_BACKOFF" default:"500ms"`

	// Empty RedisAddr disables the token deny-list and the logout route.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger logrus.FieldLogger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("No .env file found, relying on environment variables")
		} else {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, using the insecure development default")
	}
	return &cfg, nil
}

// DSN builds a postgres:// URL understood by pgx. Values are escaped, so empty
// or space-containing settings stay in their own field.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "compras"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App AppConfig
	DB  DBConfig
	JWT JWTConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COMPRAS_APP_ENV" default:"dev"`
	Port         string `envconfig:"COMPRAS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"COMPRAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COMPRAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"COMPRAS_DB_DSN"`

	Host     string `envconfig:"COMPRAS_DB_HOST"`
	Port     int    `envconfig:"COMPRAS_DB_PORT" default:"5432"`
	User     string `envconfig:"COMPRAS_DB_USER"`
	Password string `envconfig:"COMPRAS_DB_PASSWORD"`
	Name     string `envconfig:"COMPRAS_DB_NAME"`
	SSLMode  string `envconfig:"COMPRAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COMPRAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COMPRAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COMPRAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COMPRAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	RetryAttempts int           `envconfig:"COMPRAS_DB_RETRY_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"COMPRAS_DB_RETRY_BACKOFF" default:"50ms"`
}

// ensureDSN assembles a postgres DSN from discrete variables when one was not
// provided directly.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	if db.Host == "" {
		missing = append(missing, "COMPRAS_DB_HOST")
	}
	if db.User == "" {
		missing = append(missing, "COMPRAS_DB_USER")
	}
	if db.Name == "" {
		missing = append(missing, "COMPRAS_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("database config incomplete: set COMPRAS_DB_DSN or %s", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     db.Name,
		RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
	}
	db.DSN = u.String()
	return nil
}

type JWTConfig struct {
	Secret string `envconfig:"COMPRAS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"COMPRAS_JWT_ISSUER"`

	ExpirationMinutes int `envconfig:"COMPRAS_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token TTL used when minting tokens locally.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

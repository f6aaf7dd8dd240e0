package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultMaxRequestBodySize = "100KB"

	// bcrypt work factor bounds, mirrored here so config stays free of crypto imports
	minBcryptCost = 4
	maxBcryptCost = 31
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Migration controls the embedded schema migrations run at startup
	Migration *MigrationConfig `json:"migration" yaml:"migration"`
}

// AuthConfig defines credential and token configuration
type AuthConfig struct {
	// SigningSecret is the process-wide HMAC key for bearer tokens. Required.
	SigningSecret string `json:"signingSecret" yaml:"signingSecret"`

	// TokenTTL bounds the lifetime of issued tokens. Required, no default.
	TokenTTL time.Duration `json:"tokenTTL" yaml:"tokenTTL"`

	// BcryptCost is the password hashing work factor. Zero selects bcrypt.DefaultCost.
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// MigrationConfig defines schema migration behaviour
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// New loads the configuration and rejects anything that must stop the service from starting.
func New() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads config.yaml plus environment overrides and fills defaults without validating.
func Load() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = replicasFromEnv(os.LookupEnv)
	}

	return cfg, nil
}

// Validate reports configuration that must prevent the service from starting.
func (c *Config) Validate() error {
	if c.Postgres == nil {
		return errors.New("postgres configuration is required")
	}

	if c.Auth == nil {
		return errors.New("auth configuration is required")
	}

	if strings.TrimSpace(c.Auth.SigningSecret) == "" {
		return errors.New("auth.signingSecret must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTTL must be a positive duration")
	}

	if c.Auth.BcryptCost != 0 && (c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost) {
		return errors.Errorf("auth.bcryptCost must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, c.Auth.BcryptCost)
	}

	return nil
}

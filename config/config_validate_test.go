package config

import (
	"testing"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Postgres: &postgres.DBConn{},
		Auth: &AuthConfig{
			SigningSecret: "unit-test-secret",
			TokenTTL:      time.Hour,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid with default cost",
			mutate: func(*Config) {},
		},
		{
			name:   "valid with explicit cost",
			mutate: func(c *Config) { c.Auth.BcryptCost = 12 },
		},
		{
			name:    "missing postgres",
			mutate:  func(c *Config) { c.Postgres = nil },
			wantErr: "postgres configuration is required",
		},
		{
			name:    "missing auth section",
			mutate:  func(c *Config) { c.Auth = nil },
			wantErr: "auth configuration is required",
		},
		{
			name:    "blank signing secret",
			mutate:  func(c *Config) { c.Auth.SigningSecret = "   " },
			wantErr: "auth.signingSecret must be provided",
		},
		{
			name:    "missing token ttl",
			mutate:  func(c *Config) { c.Auth.TokenTTL = 0 },
			wantErr: "auth.tokenTTL must be a positive duration",
		},
		{
			name:    "cost below bcrypt minimum",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 3 },
			wantErr: "auth.bcryptCost must be between 4 and 31",
		},
		{
			name:    "cost above bcrypt maximum",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 32 },
			wantErr: "auth.bcryptCost must be between 4 and 31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

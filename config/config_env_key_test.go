package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIndexResolve(t *testing.T) {
	keys := newKeyIndex(map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"signingSecret": "",
			"tokenTTL":      "1h",
			"bcryptCost":    10,
		},
		"migration": map[string]any{
			"enabled": true,
		},
	})

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_SIGNINGSECRET", want: "auth.signingSecret"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTTL"},
		{envKey: "AUTH_BCRYPT_COST", want: "auth.bcrypt.cost"},
		{envKey: "MIGRATION_ENABLED", want: "migration.enabled"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
		{envKey: "AUTH__TOKENTTL", want: "auth.tokenTTL"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.resolve(tt.envKey))
		})
	}
}

func TestReplicasFromEnv(t *testing.T) {
	env := map[string]string{
		"POSTGRES_REPLICAS_0_HOST":     "replica-a",
		"POSTGRES_REPLICAS_0_PORT":     "5432",
		"POSTGRES_REPLICAS_0_USERNAME": "reader",
		"POSTGRES_REPLICAS_1_HOST":     "replica-b",
		"POSTGRES_REPLICAS_1_PORT":     "5433",
		// index 2 has no port, so scanning stops before 3
		"POSTGRES_REPLICAS_2_HOST": "replica-c",
		"POSTGRES_REPLICAS_3_HOST": "replica-d",
		"POSTGRES_REPLICAS_3_PORT": "5434",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]

		return v, ok
	}

	replicas := replicasFromEnv(lookup)

	if assert.Len(t, replicas, 2) {
		assert.Equal(t, "replica-a", replicas[0].Host)
		assert.Equal(t, "reader", replicas[0].UserName)
		assert.Equal(t, "5433", replicas[1].Port)
	}
	assert.Empty(t, replicasFromEnv(func(string) (string, bool) { return "", false }))
}

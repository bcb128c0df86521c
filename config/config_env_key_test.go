package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"accessTokenExpireMinutes": 10080,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_ACCESSTOKENEXPIREMINUTES", want: "auth.accessTokenExpireMinutes"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestEnvKeyToPath_LegacyAliases(t *testing.T) {
	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "SECRET_KEY", want: "secretKey.access"},
		{envKey: "ALGORITHM", want: "auth.algorithm"},
		{envKey: "ACCESS_TOKEN_EXPIRE_MINUTES", want: "auth.accessTokenExpireMinutes"},
		{envKey: "HTTP_PORT", want: "http.port"},
	}

	existing := map[string]any{"http": map[string]any{"port": 8080}}
	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, envKeyToPath(tt.envKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DefaultAlgorithm, cfg.Auth.Algorithm)
	assert.Equal(t, DefaultAccessTokenExpireMinutes, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.False(t, cfg.Metrics.Enabled)
}

func TestAccessTokenTTL_NilConfigFallsBackToDefault(t *testing.T) {
	var auth *AuthConfig

	assert.Equal(t, time.Duration(DefaultAccessTokenExpireMinutes)*time.Minute, auth.AccessTokenTTL())
	assert.Equal(t, 30*time.Minute, (&AuthConfig{AccessTokenExpireMinutes: 30}).AccessTokenTTL())
}

func TestLoadWithEnv_AppliesLegacyEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte(`
env:
  serviceName: notes
http:
  port: 8080
storage:
  driver: memory
secretKey:
  access: from-file
auth:
  algorithm: HS256
  accessTokenExpireMinutes: 60
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 15, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 16, cfg.Server.MaxConcurrent)
	assert.Equal(t, "rules", cfg.Classifier.Provider)
	assert.Equal(t, 20*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.False(t, cfg.Scheduler.DeadlineSweep)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "info", cfg.Log.GetLevel())
}

func TestLoadFromEnvOverride(t *testing.T) {
	path := writeConfig(t, "classifier:\n  provider: gemini\n")
	t.Setenv("DAOCHAT_CLASSIFIER_API_KEY", "test-key")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Classifier.Provider)
	assert.Equal(t, "test-key", cfg.Classifier.APIKey)
}

func TestLoadFromValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"gemini without key", "classifier:\n  provider: gemini\n"},
		{"unknown provider", "classifier:\n  provider: oracle\n"},
		{"zero concurrency", "server:\n  max_concurrent: 0\n"},
		{"zero idle ttl", "session:\n  idle_ttl: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "daochat", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=daochat sslmode=disable", d.DSN())
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9090,
		"database_url": "postgres://localhost:5432/onboarding",
		"api_key": "test-key",
		"model": "gemini-2.5-flash",
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost:5432/onboarding", cfg.DatabaseURL)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeConfigFile(t, "not json"))
	assert.Error(t, err)
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://env-host/onboarding")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("CV_EXTRACTION_MODEL", "gemini-2.5-pro")

	cfg := &Config{Port: 9090, DatabaseURL: "postgres://file-host/onboarding"}
	cfg.ApplyEnv()

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "postgres://env-host/onboarding", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
}

func TestApplyEnv_IgnoresEmptyAndBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "")

	cfg := &Config{Port: 9090, DatabaseURL: "postgres://file-host/onboarding"}
	cfg.ApplyEnv()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://file-host/onboarding", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, (&Config{Port: 0}).Validate())
	assert.Error(t, (&Config{Port: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
}

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
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfigFile(t, `{"port": 9090, "database_url": "postgres://localhost/intake", "workers": 2}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/intake", cfg.DatabaseURL)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, "{ not json }")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}
	require.Error(t, cfg.Validate())

	cfg = &Config{Port: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := &Config{Workers: -1}
	require.Error(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsZeroValues(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://somewhere/db"}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultWorkers, merged.Workers)
	assert.Equal(t, int64(DefaultMaxUploadBytes), merged.MaxUploadBytes)
	assert.Equal(t, "postgres://somewhere/db", merged.DatabaseURL)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{Port: 9999, Workers: 1}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 9999, merged.Port)
	assert.Equal(t, 1, merged.Workers)
}

package rest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"host: https://api.example.com\napi_key: file-key\ntimeout: 30s\n",
	), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.Host)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_EnvFallback(t *testing.T) {
	t.Setenv(EnvHost, "https://env.example.com")
	t.Setenv(EnvAPIKey, "env-key")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Host)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadConfig_FileWinsOverEnv(t *testing.T) {
	t.Setenv(EnvHost, "https://env.example.com")
	t.Setenv(EnvAPIKey, "env-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"host: https://file.example.com\napi_key: file-key\n",
	), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.Host)
	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestLoadConfig_MissingValues(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvAPIKey, "")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{Host: "h", APIKey: "k"}},
		{name: "missing host", cfg: Config{APIKey: "k"}, wantErr: "host is required"},
		{name: "missing key", cfg: Config{Host: "h"}, wantErr: "api key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

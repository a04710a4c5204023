package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	assert.Equal(t, "INFO", cfg.Global.LogLevel)
	assert.Empty(t, cfg.Encoding.BinaryMediaTypes)
	assert.Equal(t, "127.0.0.1:8080", cfg.Service.LocalAddr)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "lambdabridge", cfg.Metrics.Namespace)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
global:
  log_level: DEBUG
encoding:
  binary_media_types:
    - application/octet-stream
    - image/png
service:
  local_addr: 127.0.0.1:9090
metrics:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "lambdabridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := NewDefault()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "DEBUG", cfg.Global.LogLevel)
	assert.Equal(t, []string{"application/octet-stream", "image/png"}, cfg.Encoding.BinaryMediaTypes)
	assert.Equal(t, "127.0.0.1:9090", cfg.Service.LocalAddr)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := NewDefault()
	assert.Error(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("LAMBDABRIDGE_LOG_LEVEL", "WARN")
	t.Setenv("LAMBDABRIDGE_BINARY_MEDIA_TYPES", "application/pdf,image/jpeg")
	t.Setenv("LAMBDABRIDGE_LOCAL_ADDR", "127.0.0.1:7070")

	cfg := NewDefault()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "WARN", cfg.Global.LogLevel)
	assert.Equal(t, []string{"application/pdf", "image/jpeg"}, cfg.Encoding.BinaryMediaTypes)
	assert.Equal(t, "127.0.0.1:7070", cfg.Service.LocalAddr)
}

func TestLoad_Precedence(t *testing.T) {
	content := `
global:
  log_level: DEBUG
service:
  local_addr: 127.0.0.1:9090
`
	path := filepath.Join(t.TempDir(), "lambdabridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LAMBDABRIDGE_LOG_LEVEL", "ERROR")

	cfg, err := Load(path)
	require.NoError(t, err)

	// env wins over file, file wins over default
	assert.Equal(t, "ERROR", cfg.Global.LogLevel)
	assert.Equal(t, "127.0.0.1:9090", cfg.Service.LocalAddr)
	assert.Equal(t, "lambdabridge", cfg.Metrics.Namespace)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Global.LogLevel = "LOUD" },
			wantErr: "invalid log_level",
		},
		{
			name:    "empty local addr",
			mutate:  func(c *Config) { c.Service.LocalAddr = "" },
			wantErr: "local_addr",
		},
		{
			name:    "blank media type",
			mutate:  func(c *Config) { c.Encoding.BinaryMediaTypes = []string{"  "} },
			wantErr: "binary_media_types",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("llm:\n  model: gpt-4o\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIVersion, cfg.LLM.APIVersion)
	assert.Equal(t, 120, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.Research.DefaultBreadth)
	assert.Equal(t, 2, cfg.Research.DefaultDepth)
	assert.Equal(t, 100*time.Millisecond, cfg.Research.Delay())
	assert.Equal(t, 1, cfg.Research.Parallelism)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("DR_TEST_KEY", "secret")
	cfg, err := Parse([]byte("llm:\n  model: m\n  api_key: ${DR_TEST_KEY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
}

func TestParseFallsBackToAzureEnv(t *testing.T) {
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4o-deploy")
	t.Setenv("AZURE_OPENAI_API_VERSION", "")

	cfg, err := Parse([]byte("llm:\n  by_azure: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.openai.azure.com", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o-deploy", cfg.LLM.Model)
	assert.Equal(t, DefaultAPIVersion, cfg.LLM.APIVersion)
}

func TestValidate(t *testing.T) {
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "")

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{name: "missing model", yaml: "llm: {}\n", wantErr: ErrMissingModel},
		{name: "azure without endpoint", yaml: "llm:\n  model: m\n  by_azure: true\n", wantErr: ErrMissingEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Parse([]byte("llm:\n  model: m\nsearch:\n  provider: bing\n"))
	assert.ErrorContains(t, err, "unknown search provider")
}

func TestNegativeDelayDisablesPause(t *testing.T) {
	cfg, err := Parse([]byte("llm:\n  model: m\nresearch:\n  iteration_delay: -1\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Research.Delay())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: m\nresearch:\n  parallelism: 4\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Research.Parallelism)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

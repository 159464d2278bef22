package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "none", cfg.Token)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.openai.com"),
		WithModel("gpt-4o-mini"),
		WithToken("sk-test"),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.Token)
}

func TestNormalizeHostSuffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestValidateErrors(t *testing.T) {
	cfg := NewConfig(WithHost(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithModel(""))
	assert.Error(t, cfg.Validate())
}

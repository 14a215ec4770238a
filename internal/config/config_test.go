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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, `
server:
  port: "9000"
  mode: debug
site:
  right_variant: purple
animation:
  min_period: 1s
  max_period: 1500ms
`)
	t.Setenv("PORTFOLIO_LOG__LEVEL", "debug")
	t.Setenv("PORTFOLIO_ANIMATION__GLYPH_INTERVAL", "20ms")
	t.Setenv("PORTFOLIO_LIVE__QUEUE", "32")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "purple", cfg.Site.RightVariant)
	assert.Equal(t, time.Second, cfg.Animation.MinPeriod)
	assert.Equal(t, 1500*time.Millisecond, cfg.Animation.MaxPeriod)
	assert.Equal(t, 20*time.Millisecond, cfg.Animation.GlyphInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.InitialDelay, "untouched keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Live.Queue)
}

func TestPortVariableWins(t *testing.T) {
	t.Setenv("PORTFOLIO_SERVER__PORT", "7000")
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"port", func(c *Config) { c.Server.Port = "" }},
		{"queue", func(c *Config) { c.Live.Queue = 0 }},
		{"period", func(c *Config) { c.Animation.MaxPeriod = c.Animation.MinPeriod - 1 }},
		{"typing", func(c *Config) { c.Typing.TypeSpeed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "server: [")
	_, err := Load(path)
	assert.Error(t, err)
}

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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
db:
  path: /tmp/runs.db
auth:
  signing_key: secret
  token_ttl: 30m
render:
  formats: [png, html]
motor:
  class: H
  rated_power_kw: 5.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/runs.db", cfg.DB.Path)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"png", "html"}, cfg.Render.Formats)
	assert.Equal(t, "H", cfg.Motor.Class)
	assert.InDelta(t, 5.5, cfg.Motor.RatedPowerKW, 1e-12)
	// untouched keys keep their defaults
	assert.InDelta(t, 82.0, cfg.Motor.EfficiencyPercent, 1e-12)
	assert.InDelta(t, 40.0, cfg.Motor.IntermittentDutyPercent, 1e-12)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.HTTP.WriteTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\n")
	t.Setenv("MOTORHEAT_PORT", "7000")
	t.Setenv("MOTORHEAT_DB_PATH", "env.db")
	t.Setenv("MOTORHEAT_RENDER_FORMATS", "html, PNG")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "env.db", cfg.DB.Path)
	assert.Equal(t, []string{"html", "png"}, cfg.Render.Formats)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoad_RejectsEmptySigningKey(t *testing.T) {
	path := writeConfig(t, "auth:\n  signing_key: \"  \"\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_DefaultMotorIsValid(t *testing.T) {
	path := writeConfig(t, "port: \"8080\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	m, err := cfg.Motor.ToMotor()
	require.NoError(t, err)
	assert.Equal(t, 180*60, m.ContinuousSeconds)
	assert.Equal(t, 60*60, m.ShortTimeSeconds)
	assert.InDelta(t, 0.4, m.DutyRatio, 1e-12)
}

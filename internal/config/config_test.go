package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup Load performs at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"ALGEBRIZ_DB", "ALGEBRIZ_LOG_LEVEL", "ALGEBRIZ_LEARNER", "ALGEBRIZ_LEVEL",
		"ALGEBRIZ_LLM_PROVIDER", "ALGEBRIZ_OPENAI_API_KEY", "ALGEBRIZ_ANTHROPIC_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Level, cfg.Level)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.LLM.Enabled())
}

func TestLoadExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "algebriz.yaml")
	writeFile(t, path, `
db: /tmp/journal.db
level: 4
learner: maya
llm:
  provider: openai
  openai:
    api_key: sk-test
  timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.Level)
	assert.Equal(t, "maya", cfg.LearnerID)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
}

func TestLoadDefaultLocation(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "algebriz", "config.yaml"), "level: 2\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "algebriz.yaml")
	writeFile(t, path, "level: 4\nlog_level: info\n")

	t.Setenv("ALGEBRIZ_LEVEL", "6")
	t.Setenv("ALGEBRIZ_LOG_LEVEL", "debug")
	t.Setenv("ALGEBRIZ_LEARNER", "sam")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Level)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sam", cfg.LearnerID)
}

func TestLoadBadLevelEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ALGEBRIZ_LEVEL", "three")

	_, err := Load("")
	assert.ErrorContains(t, err, "ALGEBRIZ_LEVEL")
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "level: [1, 2\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadDiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "ak")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "ak", cfg.LLM.Anthropic.APIKey)
}

func TestLoadExplicitProviderWinsOverDiscovery(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("ALGEBRIZ_LLM_PROVIDER", "mock")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoadRejectsUnconfiguredProvider(t *testing.T) {
	isolate(t)
	t.Setenv("ALGEBRIZ_LLM_PROVIDER", "openai")

	_, err := Load("")
	assert.ErrorContains(t, err, "llm:")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogLevel = "error"

	logger := cfg.Logger(&buf)
	logger.Warn("hidden")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

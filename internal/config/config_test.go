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

func TestLoadFileMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
logging:
  format: json
scheduler:
  hour: 7
  minute: 30
output:
  dir: /tmp/editions
sites:
  - name: cnn
    scanner: cnnbrasil
    baseUrl: https://example.com/economia/
    requestDelayMs: 0
    minContentLength: 50
`)

	cfg, err := LoadFile(path, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "news.db", cfg.Database.Path)
	assert.Equal(t, 7, cfg.Scheduler.Hour)
	assert.Equal(t, 30, cfg.Scheduler.Minute)
	assert.Equal(t, defaultTimezone, cfg.Scheduler.Timezone)
	assert.Equal(t, "/tmp/editions", cfg.Output.Dir)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, SiteConfig{
		Name:             "cnn",
		Scanner:          "cnnbrasil",
		BaseURL:          "https://example.com/economia/",
		MinContentLength: 50,
	}, cfg.Sites[0])
}

func TestLoadFileMidnightSchedule(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
scheduler:
  hour: 0
  minute: 0
`)

	cfg, err := LoadFile(path, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Scheduler.Hour)
	assert.Equal(t, 0, cfg.Scheduler.Minute)
}

func TestLoadFileKeepsScheduleWhenAbsent(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
scheduler:
  timezone: UTC
`)

	cfg, err := LoadFile(path, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Scheduler.Hour)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	base := defaultConfig()

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), base)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadFile(writeConfig(t, "sites: [unclosed"), base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse")
	assert.Equal(t, base.Database, cfg.Database)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  path: from-file.db
scheduler:
  timezone: UTC
`)
	t.Setenv(configPathEnv, path)
	t.Setenv(databasePathEnv, "from-env.db")
	t.Setenv(logLevelEnv, "debug")
	t.Setenv(telegramTokenEnv, "token")
	t.Setenv(telegramChatIDEnv, "chat")
	t.Setenv(sentimentURLEnv, "http://sentiment.local")

	cfg := Load()

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Notifications.Telegram.Enabled())
	assert.Equal(t, "http://sentiment.local", cfg.Sentiment.InferenceURL)
	assert.Equal(t, time.UTC, cfg.Scheduler.Location())
	assert.NotEmpty(t, cfg.Sites)
}

func TestLoadFallsBackOnUnknownTimezone(t *testing.T) {
	t.Setenv(configPathEnv, writeConfig(t, "scheduler:\n  timezone: Mars/Olympus\n"))

	cfg := Load()

	assert.Equal(t, time.UTC, cfg.Scheduler.Location())
	assert.Equal(t, 8, cfg.Scheduler.Hour)
}

func TestTelegramEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, TelegramConfig{BotToken: "x"}.Enabled())
	assert.True(t, TelegramConfig{BotToken: "x", ChatID: "y"}.Enabled())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_APITOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "gsk-test")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "123:abc", cfg.Telegram.TelegramAPIToken)
	require.Equal(t, "https://api.groq.com/openai/v1", cfg.Completion.BaseURL)
	require.Equal(t, "llama-3.3-70b-versatile", cfg.Completion.Model)
	require.InDelta(t, 0.7, cfg.Completion.Temperature, 0.0001)
	require.Equal(t, 2048, cfg.Completion.MaxTokens)
	require.Equal(t, 90*time.Second, cfg.Completion.Timeout)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.Equal(t, LookupErrorOpen, cfg.Membership.OnLookupError)
	require.Equal(t, "Codeninja AI", cfg.Branding.BotName)
	require.True(t, cfg.Render.Enabled)
	require.Equal(t, 16, cfg.Telegram.Workers)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "gsk-test")
	t.Setenv("TELEGRAM_APITOKEN", "")
	require.NoError(t, os.Unsetenv("TELEGRAM_APITOKEN"))

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := LoadConfig("")
	require.ErrorContains(t, err, "storage driver")
}

func TestLoadConfigRejectsUnknownLookupPolicy(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MEMBERSHIP_ON_LOOKUP_ERROR", "maybe")

	_, err := LoadConfig("")
	require.ErrorContains(t, err, "lookup error policy")
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REQUIRED_CHANNEL", "@from_env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
telegram:
  required_channel: "@from_file"
  workers: 4
branding:
  bot_name: "Test Bot"
storage:
  driver: redis
  redis:
    endpoint: "redis:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "@from_env", cfg.Telegram.RequiredChannel)
	require.Equal(t, 4, cfg.Telegram.Workers)
	require.Equal(t, "Test Bot", cfg.Branding.BotName)
	require.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	require.Equal(t, "redis:6379", cfg.Storage.Redis.Endpoint)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONTENT_PROVIDER", "")
	t.Setenv("LOCK_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ProviderNone, cfg.Content.Provider)
	assert.Equal(t, 20*time.Second, cfg.Content.Timeout)
	assert.Equal(t, LockMemory, cfg.Lock.Backend)
	assert.Equal(t, 72*time.Hour, cfg.Sweeper.StaleAfter)
	assert.Equal(t, "0 */15 * * * *", cfg.Sweeper.Schedule)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CONTENT_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("CONTENT_TIMEOUT", "5s")
	t.Setenv("SWEEP_STALE_AFTER", "not-a-duration")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Content.Provider)
	assert.Equal(t, 5*time.Second, cfg.Content.Timeout)
	assert.Equal(t, 72*time.Hour, cfg.Sweeper.StaleAfter)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Content: ContentConfig{Provider: ProviderNone},
			Lock:    LockConfig{Backend: LockMemory},
		}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"empty port":         func(c *Config) { c.Server.Port = "" },
		"unknown provider":   func(c *Config) { c.Content.Provider = "claude" },
		"gemini without key": func(c *Config) { c.Content.Provider = ProviderGemini },
		"openai without key": func(c *Config) { c.Content.Provider = ProviderOpenAI },
		"unknown lock":       func(c *Config) { c.Lock.Backend = "etcd" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "REDIS_URL", "PORT",
		"RESUME_MATCHER_THRESHOLD", "RESUME_MATCHER_PORT", "RESUME_MATCHER_RESUME_PARSER",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_DEFAULT_LIMIT", "RATE_LIMIT_DEFAULT_WINDOW", "RATE_LIMIT_WHITELIST",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Threshold)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ParserLLM, cfg.ResumeParser)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 24*time.Hour, cfg.EmbeddingCacheTTL)
	assert.Equal(t, int64(20<<20), cfg.UploadLimit)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1000, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.RateLimit.Whitelist)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "matcher.yaml", `
threshold: 0.8
reference-year: 2025
resume-parser: file
redis-url: redis://localhost:6379/0
rate-limit:
  limit: 30
  window: 30s
  whitelist: [127.0.0.1]
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Threshold)
	assert.Equal(t, 2025, cfg.ReferenceYear)
	assert.Equal(t, ParserFile, cfg.ResumeParser)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 30, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.RateLimit.Whitelist)
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "matcher.json", `{"port": 8080, "use-browser": true}`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.UseBrowser)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "matcher.yaml", "threshold: 0.8\nport: 8080\n")
	t.Setenv("RESUME_MATCHER_THRESHOLD", "0.9")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "2m")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Threshold)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
	assert.Equal(t, 2*time.Minute, cfg.RateLimit.Window)
}

func TestLoad_FlagsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESUME_MATCHER_THRESHOLD", "0.9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("threshold", 0.75, "")
	flags.Int("port", 5000, "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--threshold=0.6"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Threshold)
	assert.Equal(t, 5000, cfg.Port, "unchanged flags keep lower-priority values")
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load("/nonexistent/path/matcher.yaml", nil)
	assert.ErrorContains(t, err, "failed to read config file")

	bad := writeConfig(t, "matcher.json", `{ invalid json }`)
	_, err = Load(bad, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Threshold:    0.75,
			Port:         5000,
			UploadLimit:  1 << 20,
			ResumeParser: ParserNone,
			RateLimit:    RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"threshold zero", func(c *Config) { c.Threshold = 0 }, "threshold"},
		{"threshold above one", func(c *Config) { c.Threshold = 1.1 }, "threshold"},
		{"threshold one", func(c *Config) { c.Threshold = 1 }, ""},
		{"reference year", func(c *Config) { c.ReferenceYear = 1900 }, "reference-year"},
		{"reference year set", func(c *Config) { c.ReferenceYear = 2025 }, ""},
		{"port", func(c *Config) { c.Port = 70000 }, "port"},
		{"upload limit", func(c *Config) { c.UploadLimit = 0 }, "upload-limit"},
		{"cache ttl", func(c *Config) { c.EmbeddingCacheTTL = -time.Second }, "embedding-cache-ttl"},
		{"parser", func(c *Config) { c.ResumeParser = "pyresparser" }, "resume-parser"},
		{"rate limit", func(c *Config) { c.RateLimit.Limit = 0 }, "rate limit"},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRateLimitConfig_Limiter(t *testing.T) {
	rl := RateLimitConfig{
		Enabled:   true,
		Limit:     10,
		Window:    time.Minute,
		Whitelist: []string{"127.0.0.1"},
	}

	lc := rl.Limiter()
	assert.True(t, lc.Enabled)
	assert.Equal(t, 10, lc.DefaultLimit)
	assert.True(t, lc.Whitelist["127.0.0.1"])
	assert.NotEmpty(t, lc.EndpointConfigs)
}

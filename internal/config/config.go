// Package config loads matcher settings from a config file, the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_MATCHER_THRESHOLD
const EnvPrefix = "RESUME_MATCHER"

// Resume parser names accepted by ResumeParser
const (
	ParserLLM  = "llm"
	ParserFile = "file"
	ParserNone = "none"
)

// Config holds every runtime setting. Flags win over the environment, which
// wins over the config file.
type Config struct {
	GeminiAPIKey      string        `mapstructure:"gemini-api-key"`
	EmbeddingModel    string        `mapstructure:"embedding-model"`
	RedisURL          string        `mapstructure:"redis-url"`
	EmbeddingCacheTTL time.Duration `mapstructure:"embedding-cache-ttl"`

	Threshold     float64 `mapstructure:"threshold"`      // semantic match cut-off in (0,1]
	ReferenceYear int     `mapstructure:"reference-year"` // 0 means the current year
	ResumeParser  string  `mapstructure:"resume-parser"`
	UseBrowser    bool    `mapstructure:"use-browser"`

	Port        int           `mapstructure:"port"`
	UploadLimit int64         `mapstructure:"upload-limit"` // bytes per /match request
	Timeout     time.Duration `mapstructure:"request-timeout"`

	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`

	RateLimit RateLimitConfig `mapstructure:"rate-limit"`
}

// RateLimitConfig configures per-client throttling of the HTTP server
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Limit           int           `mapstructure:"limit"`
	Window          time.Duration `mapstructure:"window"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// envAliases are environment variables read without the prefix
var envAliases = map[string]string{
	"gemini-api-key":              "GEMINI_API_KEY",
	"redis-url":                   "REDIS_URL",
	"port":                        "PORT",
	"rate-limit.enabled":          "RATE_LIMIT_ENABLED",
	"rate-limit.limit":            "RATE_LIMIT_DEFAULT_LIMIT",
	"rate-limit.window":           "RATE_LIMIT_DEFAULT_WINDOW",
	"rate-limit.cleanup-interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"rate-limit.whitelist":        "RATE_LIMIT_WHITELIST",
	"rate-limit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gemini-api-key", "")
	v.SetDefault("embedding-model", "text-embedding-004")
	v.SetDefault("redis-url", "")
	v.SetDefault("embedding-cache-ttl", 24*time.Hour)
	v.SetDefault("threshold", 0.75)
	v.SetDefault("reference-year", 0)
	v.SetDefault("resume-parser", ParserLLM)
	v.SetDefault("use-browser", false)
	v.SetDefault("port", 5000)
	v.SetDefault("upload-limit", 20<<20)
	v.SetDefault("request-timeout", 2*time.Minute)
	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.limit", 1000)
	v.SetDefault("rate-limit.window", time.Minute)
	v.SetDefault("rate-limit.cleanup-interval", 5*time.Minute)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})
}

// Load reads configuration. path may be empty; flags may be nil. Only flags
// whose names match a config key take part.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+envKey(key), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		keys := make(map[string]bool)
		for _, key := range v.AllKeys() {
			keys[key] = true
		}
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if keys[f.Name] {
				bindErr = errors.Join(bindErr, v.BindPFlag(f.Name, f))
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.RateLimit.Whitelist = splitList(cfg.RateLimit.Whitelist)
	cfg.RateLimit.Blacklist = splitList(cfg.RateLimit.Blacklist)
	return &cfg, nil
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}

// splitList accepts both list values and a single comma-separated string
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("config error: 'threshold' must be in (0, 1], got %v", c.Threshold)
	}
	if c.ReferenceYear != 0 && (c.ReferenceYear < 1980 || c.ReferenceYear > 2100) {
		return fmt.Errorf("config error: 'reference-year' %d is not plausible", c.ReferenceYear)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.UploadLimit <= 0 {
		return fmt.Errorf("config error: 'upload-limit' must be positive")
	}
	if c.EmbeddingCacheTTL < 0 {
		return fmt.Errorf("config error: 'embedding-cache-ttl' must be non-negative")
	}
	switch c.ResumeParser {
	case ParserLLM, ParserFile, ParserNone:
	default:
		return fmt.Errorf("config error: unknown 'resume-parser' %q (want llm, file or none)", c.ResumeParser)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("config error: rate limit needs a positive limit and window")
	}
	return nil
}

// Limiter converts the rate limit settings for the HTTP server
func (r RateLimitConfig) Limiter() *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         r.Enabled,
		DefaultLimit:    r.Limit,
		DefaultWindow:   r.Window,
		CleanupInterval: r.CleanupInterval,
		Whitelist:       ratelimit.IPSet(r.Whitelist),
		Blacklist:       ratelimit.IPSet(r.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	}
}

package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider exposes the application configuration to the rest of the app.
// Handlers and services depend on this interface rather than on Config so tests
// can supply their own values.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetCacheTTL() time.Duration
	GetRedisURL() string
	GetI18nDir() string
	GetDefaultLanguage() string
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr         string
	AppBaseURL      string
	SessionSecret   string
	APIBaseURL      string
	APITimeout      time.Duration
	CacheTTL        time.Duration
	RedisURL        string
	I18nDir         string
	DefaultLanguage string
	LogFormat       string
	LogLevel        string
}

var _ Provider = (*Config)(nil)

// New loads configuration from the environment (and a .env file if present).
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load reads configuration through the given viper instance. Defaults are
// applied first and every key can be overridden by its upper-cased
// environment variable (API_BASE_URL, CACHE_TTL, ...).
func Load(v *viper.Viper) (*Config, error) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("app_base_url", "http://localhost:8080")
	v.SetDefault("session_secret", "")
	v.SetDefault("api_base_url", "")
	v.SetDefault("api_timeout", 10*time.Second)
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("redis_url", "")
	v.SetDefault("i18n_dir", "")
	v.SetDefault("i18n_default_lang", "en")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_level", "debug")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		AppAddr:         v.GetString("app_addr"),
		AppBaseURL:      strings.TrimSuffix(v.GetString("app_base_url"), "/"),
		SessionSecret:   v.GetString("session_secret"),
		APIBaseURL:      strings.TrimSuffix(v.GetString("api_base_url"), "/"),
		APITimeout:      v.GetDuration("api_timeout"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		RedisURL:        v.GetString("redis_url"),
		I18nDir:         v.GetString("i18n_dir"),
		DefaultLanguage: strings.ToLower(v.GetString("i18n_default_lang")),
		LogFormat:       v.GetString("log_format"),
		LogLevel:        v.GetString("log_level"),
	}

	if cfg.APIBaseURL == "" || cfg.SessionSecret == "" {
		return nil, errMissingRequired
	}
	return cfg, nil
}

func (c *Config) GetAppAddr() string             { return c.AppAddr }
func (c *Config) GetAppBaseURL() string          { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string       { return c.SessionSecret }
func (c *Config) GetAPIBaseURL() string          { return c.APIBaseURL }
func (c *Config) GetAPITimeout() time.Duration   { return c.APITimeout }
func (c *Config) GetCacheTTL() time.Duration     { return c.CacheTTL }
func (c *Config) GetRedisURL() string            { return c.RedisURL }
func (c *Config) GetI18nDir() string             { return c.I18nDir }
func (c *Config) GetDefaultLanguage() string     { return c.DefaultLanguage }
func (c *Config) GetLogFormat() string           { return c.LogFormat }
func (c *Config) GetLogLevel() string            { return c.LogLevel }

package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is read once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Inference InferenceConfig
	Extract   ExtractConfig
	Callback  CallbackConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InferenceConfig holds settings for the remote text-generation service.
// An empty APIKey means the service is unavailable and every component
// that depends on it degrades to its documented fallback.
type InferenceConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Configured reports whether inference credentials are present.
func (c *InferenceConfig) Configured() bool {
	return c.APIKey != ""
}

// Timeout returns the per-call inference timeout.
func (c *InferenceConfig) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ExtractConfig holds text-extraction settings.
type ExtractConfig struct {
	// MaxFallbackBase64Chars bounds the base64 payload sent to the
	// inference OCR fallback, to respect token limits.
	MaxFallbackBase64Chars int `mapstructure:"max_fallback_base64_chars"`
}

// CallbackConfig holds the optional downstream notification settings.
type CallbackConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the callback POST timeout.
func (c *CallbackConfig) Timeout() time.Duration {
	if c.TimeoutSecs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the PAYPROC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAYPROC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Inference defaults
	v.SetDefault("inference.api_key", "")
	v.SetDefault("inference.model", "gpt-4o-mini")
	v.SetDefault("inference.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("inference.timeout_secs", 60)

	// Extract defaults
	v.SetDefault("extract.max_fallback_base64_chars", 200000)

	// Callback defaults
	v.SetDefault("callback.url", "")
	v.SetDefault("callback.timeout_secs", 3)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "PAYPROC_SERVER_PORT",
		"server.read_timeout":               "PAYPROC_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "PAYPROC_SERVER_WRITE_TIMEOUT",
		"server.environment":                "PAYPROC_SERVER_ENVIRONMENT",
		"log.level":                         "PAYPROC_LOG_LEVEL",
		"log.format":                        "PAYPROC_LOG_FORMAT",
		"inference.api_key":                 "PAYPROC_INFERENCE_API_KEY",
		"inference.model":                   "PAYPROC_INFERENCE_MODEL",
		"inference.endpoint":                "PAYPROC_INFERENCE_ENDPOINT",
		"inference.timeout_secs":            "PAYPROC_INFERENCE_TIMEOUT_SECS",
		"extract.max_fallback_base64_chars": "PAYPROC_EXTRACT_MAX_FALLBACK_BASE64_CHARS",
		"callback.url":                      "PAYPROC_CALLBACK_URL",
		"callback.timeout_secs":             "PAYPROC_CALLBACK_TIMEOUT_SECS",
		"cors.allowed_origins":              "PAYPROC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PAYPROC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PAYPROC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Inference = InferenceConfig{
		APIKey:      v.GetString("inference.api_key"),
		Model:       v.GetString("inference.model"),
		Endpoint:    v.GetString("inference.endpoint"),
		TimeoutSecs: v.GetInt("inference.timeout_secs"),
	}
	cfg.Extract = ExtractConfig{
		MaxFallbackBase64Chars: v.GetInt("extract.max_fallback_base64_chars"),
	}
	cfg.Callback = CallbackConfig{
		URL:         v.GetString("callback.url"),
		TimeoutSecs: v.GetInt("callback.timeout_secs"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: strings.Split(v.GetString("cors.allowed_origins"), ","),
	}

	return cfg, nil
}

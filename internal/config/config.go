package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pyowdigitals/optin/internal/countdown"
)

// Provider exposes the application configuration to modules.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetLogFormat() string
	GetLogLevel() string
	GetSubmitDelay() time.Duration
	GetCountdownStart() countdown.Value
	GetCountdownInterval() time.Duration
	GetContentFile() string
	GetContentHotReload() bool
	GetStaticDir() string
	GetFormStateCapacity() int
	GetTracingEnabled() bool
	GetTracingServiceName() string
	GetTracingZipkinURL() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr         string
	AppBaseURL         string
	SessionSecret      string
	LogFormat          string
	LogLevel           string
	SubmitDelay        time.Duration
	CountdownStart     countdown.Value
	CountdownInterval  time.Duration
	ContentFile        string
	ContentHotReload   bool
	StaticDir          string
	FormStateCapacity  int
	TracingEnabled     bool
	TracingServiceName string
	TracingZipkinURL   string
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		ServerAddr:         ":8080",
		AppBaseURL:         "http://localhost:8080",
		LogFormat:          "text",
		LogLevel:           "debug",
		SubmitDelay:        time.Second,
		CountdownStart:     countdown.Initial,
		CountdownInterval:  time.Second,
		FormStateCapacity:  10000,
		TracingServiceName: "optin",
		TracingZipkinURL:   "http://localhost:9411/api/v2/spans",
	}
}

// New loads a .env file when present and reads configuration from the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("SERVER_ADDR", &cfg.ServerAddr)
	str("APP_BASE_URL", &cfg.AppBaseURL)
	str("SESSION_SECRET", &cfg.SessionSecret)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("CONTENT_FILE", &cfg.ContentFile)
	str("STATIC_DIR", &cfg.StaticDir)
	str("PUBSUB_TRACING_SERVICE_NAME", &cfg.TracingServiceName)
	str("PUBSUB_TRACING_ZIPKIN_URL", &cfg.TracingZipkinURL)

	var err error
	if cfg.SubmitDelay, err = durationVar(lookup, "SUBMIT_DELAY", cfg.SubmitDelay); err != nil {
		return nil, err
	}
	if cfg.CountdownInterval, err = durationVar(lookup, "COUNTDOWN_INTERVAL", cfg.CountdownInterval); err != nil {
		return nil, err
	}
	if cfg.CountdownInterval <= 0 {
		return nil, fmt.Errorf("COUNTDOWN_INTERVAL must be positive, got %s", cfg.CountdownInterval)
	}
	if v, ok := lookup("COUNTDOWN_START"); ok && v != "" {
		if cfg.CountdownStart, err = countdown.Parse(v); err != nil {
			return nil, fmt.Errorf("COUNTDOWN_START: %w", err)
		}
	}
	if cfg.ContentHotReload, err = boolVar(lookup, "CONTENT_HOT_RELOAD", cfg.ContentHotReload); err != nil {
		return nil, err
	}
	if cfg.TracingEnabled, err = boolVar(lookup, "PUBSUB_TRACING_ENABLED", cfg.TracingEnabled); err != nil {
		return nil, err
	}
	if v, ok := lookup("FORM_STATE_CAPACITY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("FORM_STATE_CAPACITY must be a positive integer, got %q", v)
		}
		cfg.FormStateCapacity = n
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET is not set, generating an ephemeral secret")
		cfg.SessionSecret = randomSecret()
	}
	return cfg, nil
}

func durationVar(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration, got %q", key, v)
	}
	return d, nil
}

func boolVar(lookup func(string) (string, bool), key string, def bool) (bool, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("config: read random secret: %v", err))
	}
	return hex.EncodeToString(b)
}

func (c *Config) GetServerAddr() string               { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string               { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string            { return c.SessionSecret }
func (c *Config) GetLogFormat() string                { return c.LogFormat }
func (c *Config) GetLogLevel() string                 { return c.LogLevel }
func (c *Config) GetSubmitDelay() time.Duration       { return c.SubmitDelay }
func (c *Config) GetCountdownStart() countdown.Value  { return c.CountdownStart }
func (c *Config) GetCountdownInterval() time.Duration { return c.CountdownInterval }
func (c *Config) GetContentFile() string              { return c.ContentFile }
func (c *Config) GetContentHotReload() bool           { return c.ContentHotReload }
func (c *Config) GetStaticDir() string                { return c.StaticDir }
func (c *Config) GetFormStateCapacity() int           { return c.FormStateCapacity }
func (c *Config) GetTracingEnabled() bool             { return c.TracingEnabled }
func (c *Config) GetTracingServiceName() string       { return c.TracingServiceName }
func (c *Config) GetTracingZipkinURL() string         { return c.TracingZipkinURL }

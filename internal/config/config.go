package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, breach sources,
// the local corpus and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":5000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// A comprehensive check runs every source, so keep this well above sources.requestTimeout.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"1m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSOrigins lists allowed origins; "*" allows any
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-default:"*" env-separator:"," yaml:"corsOrigins"`
		// RateLimitPerMinute caps requests per client IP on the API routes; 0 disables the limit
		RateLimitPerMinute int `env:"HTTP_RATE_LIMIT_PER_MINUTE" env-default:"60" yaml:"rateLimitPerMinute"`
		// RateLimitBurst is how many requests a client may send at once
		RateLimitBurst int `env:"HTTP_RATE_LIMIT_BURST" env-default:"10" yaml:"rateLimitBurst"`
	} `yaml:"http"`

	// Sources holds settings shared by all remote sources
	Sources struct {
		// RequestTimeout bounds every outbound call
		RequestTimeout time.Duration `env:"SOURCES_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// Delay is the pause between consecutive calls to remote sources
		Delay time.Duration `env:"SOURCES_DELAY" env-default:"1s" yaml:"delay"`
		// Parallel queries sources concurrently, pacing each remote source on its own
		Parallel bool `env:"SOURCES_PARALLEL" env-default:"false" yaml:"parallel"`
		// UserAgent is sent with every outbound request
		UserAgent string `env:"SOURCES_USER_AGENT" env-default:"BreachChecker/2.0" yaml:"userAgent"`
	} `yaml:"sources"`

	PwnedPasswords struct {
		BaseURL string `env:"PWNED_PASSWORDS_BASE_URL" env-default:"https://api.pwnedpasswords.com" yaml:"baseUrl"`
	} `yaml:"pwnedPasswords"`

	HIBP struct {
		Enabled bool   `env:"HIBP_ENABLED" env-default:"true" yaml:"enabled"`
		BaseURL string `env:"HIBP_BASE_URL" env-default:"https://haveibeenpwned.com/api/v3" yaml:"baseUrl"`
		// APIKey is optional; without it HIBP answers most account lookups with 401
		APIKey string `env:"HIBP_API_KEY" yaml:"apiKey"`
	} `yaml:"hibp"`

	DeHashed struct {
		Enabled bool   `env:"DEHASHED_ENABLED" env-default:"true" yaml:"enabled"`
		BaseURL string `env:"DEHASHED_BASE_URL" env-default:"https://api.dehashed.com" yaml:"baseUrl"`
		APIKey  string `env:"DEHASHED_API_KEY" env-default:"YOUR_DEHASHED_API_KEY" yaml:"apiKey"`
		// Size is the number of entries requested per email search
		Size int `env:"DEHASHED_SIZE" env-default:"10" yaml:"size"`
	} `yaml:"dehashed"`

	IntelX struct {
		Enabled    bool   `env:"INTELX_ENABLED" env-default:"false" yaml:"enabled"`
		BaseURL    string `env:"INTELX_BASE_URL" env-default:"https://2.intelx.io" yaml:"baseUrl"`
		APIKey     string `env:"INTELX_API_KEY" env-default:"YOUR_INTELX_API_KEY" yaml:"apiKey"`
		MaxResults int    `env:"INTELX_MAX_RESULTS" env-default:"50" yaml:"maxResults"`
	} `yaml:"intelx"`

	// LocalDB configures the flat file of known-breached emails
	LocalDB struct {
		Enabled       bool   `env:"LOCAL_DB_ENABLED" env-default:"true" yaml:"enabled"`
		Path          string `env:"LOCAL_DB_PATH" env-default:"local_breaches.txt" yaml:"path"`
		CaseSensitive bool   `env:"LOCAL_DB_CASE_SENSITIVE" env-default:"false" yaml:"caseSensitive"`
		// AutoLearn appends emails confirmed by a remote source to the file
		AutoLearn bool `env:"LOCAL_DB_AUTO_LEARN" env-default:"false" yaml:"autoLearn"`
	} `yaml:"localDb"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// An empty path reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultPublicInstances are the public SearXNG mirrors tried, in order, after the primary.
var DefaultPublicInstances = []string{
	"https://search.sapti.me",
	"https://searx.be",
	"https://searx.info",
	"https://search.mdosch.de",
	"https://searx.tiekoetter.com",
}

// Config holds the proxy configuration. Every field comes from the environment.
type Config struct {
	// HTTP server
	Port  string `env:"PORT" envDefault:"5000"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // console or json

	// Upstreams
	SearxngURL      string   `env:"SEARXNG_URL" envDefault:"http://localhost:8080"`
	PublicInstances []string `env:"PUBLIC_INSTANCES" envSeparator:","`
	ProxyURL        string   `env:"PROXY"`

	// Search behaviour
	ForceEngine   bool   `env:"FORCE_ENGINE" envDefault:"true"`
	FilterResults bool   `env:"FILTER_RESULTS" envDefault:"true"`
	DefaultEngine string `env:"DEFAULT_ENGINE" envDefault:"google"`

	// Upstream timeouts (seconds)
	SearchTimeoutSeconds  int `env:"SEARCH_TIMEOUT" envDefault:"10"`
	EnginesTimeoutSeconds int `env:"ENGINES_TIMEOUT" envDefault:"5"`
	HealthTimeoutSeconds  int `env:"HEALTH_TIMEOUT" envDefault:"3"`
	HealthFallbackProbes  int `env:"HEALTH_FALLBACK_PROBES" envDefault:"2"`

	// Response compression
	EnableCompression bool `env:"ENABLE_COMPRESSION" envDefault:"false"`
	MinSizeToCompress int  `env:"MIN_SIZE_TO_COMPRESS" envDefault:"1024"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// GC
	GCPercent      int  `env:"GC_PERCENT" envDefault:"100"`
	OptimizeMemory bool `env:"OPTIMIZE_MEMORY" envDefault:"false"`

	// Inbound server timeouts (seconds) and outbound connection pool
	HTTPReadTimeoutSeconds  int `env:"HTTP_READ_TIMEOUT" envDefault:"30"`
	HTTPWriteTimeoutSeconds int `env:"HTTP_WRITE_TIMEOUT" envDefault:"90"`
	HTTPIdleTimeoutSeconds  int `env:"HTTP_IDLE_TIMEOUT" envDefault:"120"`
	HTTPMaxConnsPerHost     int `env:"HTTP_MAX_CONNS_PER_HOST" envDefault:"20"`
}

// AppConfig is the process-wide configuration set by Init.
var AppConfig *Config

// Init loads the configuration into AppConfig and applies the GC settings.
func Init() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	applyGCSettings(cfg)
	return nil
}

// Load parses the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.SearxngURL = strings.TrimSuffix(strings.TrimSpace(c.SearxngURL), "/")

	instances := make([]string, 0, len(c.PublicInstances))
	for _, raw := range c.PublicInstances {
		if trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "/"); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	if len(instances) == 0 {
		instances = append(instances, DefaultPublicInstances...)
	}
	c.PublicInstances = instances

	if c.Debug && strings.EqualFold(c.LogLevel, "info") {
		c.LogLevel = "debug"
	}
	if strings.TrimSpace(c.DefaultEngine) == "" {
		c.DefaultEngine = "google"
	}
}

func (c *Config) validate() error {
	if err := validateBaseURL("SEARXNG_URL", c.SearxngURL); err != nil {
		return err
	}
	for _, instance := range c.PublicInstances {
		if err := validateBaseURL("PUBLIC_INSTANCES", instance); err != nil {
			return err
		}
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("PROXY is not a valid URL: %w", err)
		}
	}
	if c.SearchTimeoutSeconds <= 0 || c.EnginesTimeoutSeconds <= 0 || c.HealthTimeoutSeconds <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}
	if c.HealthFallbackProbes < 0 {
		return fmt.Errorf("HEALTH_FALLBACK_PROBES must not be negative")
	}
	return nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", name, raw)
	}
	return nil
}

// SearchTimeout bounds a single /search attempt.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutSeconds) * time.Second
}

// EnginesTimeout bounds the engine-list call.
func (c *Config) EnginesTimeout() time.Duration {
	return time.Duration(c.EnginesTimeoutSeconds) * time.Second
}

// HealthTimeout bounds each health probe.
func (c *Config) HealthTimeout() time.Duration {
	return time.Duration(c.HealthTimeoutSeconds) * time.Second
}

func (c *Config) HTTPReadTimeout() time.Duration {
	return time.Duration(c.HTTPReadTimeoutSeconds) * time.Second
}

func (c *Config) HTTPWriteTimeout() time.Duration {
	return time.Duration(c.HTTPWriteTimeoutSeconds) * time.Second
}

func (c *Config) HTTPIdleTimeout() time.Duration {
	return time.Duration(c.HTTPIdleTimeoutSeconds) * time.Second
}

// UseProxy reports whether outbound calls go through PROXY.
func (c *Config) UseProxy() bool {
	return c.ProxyURL != ""
}

func applyGCSettings(c *Config) {
	if c.GCPercent > 0 {
		debug.SetGCPercent(c.GCPercent)
	}
	if c.OptimizeMemory {
		debug.FreeOSMemory()
	}
}

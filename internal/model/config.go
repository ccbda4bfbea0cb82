package model

import "time"

// Config holds the complete molscan configuration
type Config struct {
	HTTP   HTTPConfig   `yaml:"http" mapstructure:"http"`
	Verify VerifyConfig `yaml:"verify" mapstructure:"verify"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Chat   ChatConfig   `yaml:"chat" mapstructure:"chat"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the page fetcher used for URL scans
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	IgnoreRobots bool          `yaml:"ignore_robots" mapstructure:"ignore_robots"`
}

// VerifyConfig controls the structure-verification lookup service
type VerifyConfig struct {
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst        int           `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls lookup memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ChatConfig controls the optional chat front-end
type ChatConfig struct {
	Model     string        `yaml:"model" mapstructure:"model"`
	BaseURL   string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	KeyTTL    time.Duration `yaml:"key_ttl" mapstructure:"key_ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults. PubChem asks clients to stay
// under 5 requests per second, hence the lookup rate limit.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Molscan/0.1 (+https://github.com/molscan/molscan)",
			MaxBodyBytes: 2_000_000,
		},
		Verify: VerifyConfig{
			BaseURL:      "https://pubchem.ncbi.nlm.nih.gov/rest/pug",
			Timeout:      10 * time.Second,
			MaxBodyBytes: 65_536,
			RatePerSec:   5,
			Burst:        5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Chat: ChatConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 1000,
			Timeout:   60 * time.Second,
			KeyTTL:    time.Hour,
		},
		Output: OutputConfig{},
	}
}

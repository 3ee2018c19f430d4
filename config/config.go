package config

import (
	"github.com/cockroachdb/errors"
	"github.com/jinzhu/configor"
)

// LogConfig - Logger settings
type LogConfig struct {
	Level string `yaml:"level" default:"warn" env:"LOG_LEVEL"`
	Path  string `yaml:"path" env:"LOG_PATH"` // Empty means stderr
}

// FetchConfig - Outbound HTTP settings
type FetchConfig struct {
	Timeout            int    `yaml:"timeout" default:"15" env:"FETCH_TIMEOUT"`                          // Page timeout in seconds
	SubresourceTimeout int    `yaml:"subresource_timeout" default:"5" env:"FETCH_SUBRESOURCE_TIMEOUT"` // robots.txt / sitemap.xml timeout in seconds
	UserAgent          string `yaml:"user_agent" default:"Mozilla/5.0 (compatible; seo-analyzer/1.0)" env:"FETCH_USER_AGENT"`
	MaxBodyBytes       int64  `yaml:"max_body_bytes" default:"10485760" env:"FETCH_MAX_BODY_BYTES"`
}

// ChecksConfig - Thresholds used by the report checks
type ChecksConfig struct {
	TitleMaxLength       int `yaml:"title_max_length" default:"40" env:"CHECKS_TITLE_MAX_LENGTH"`
	DescriptionMaxLength int `yaml:"description_max_length" default:"50" env:"CHECKS_DESCRIPTION_MAX_LENGTH"`
	SnippetLength        int `yaml:"snippet_length" default:"200" env:"CHECKS_SNIPPET_LENGTH"`
}

// WebConfig - Interactive page settings
type WebConfig struct {
	Addr string `yaml:"addr" default:"127.0.0.1:8501" env:"WEB_ADDR"`
}

// Config - Application configuration
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Checks ChecksConfig `yaml:"checks"`
	Web    WebConfig    `yaml:"web"`
}

// LoadConfig - Load configuration file. A missing file leaves defaults and
// environment overrides in place.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	err := configor.New(&configor.Config{
		Debug:      false,
		Verbose:    false,
		Silent:     true,
		AutoReload: false,
	}).Load(cfg, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate - Reject settings the analyzer cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Fetch.Timeout <= 0:
		return errors.Newf("config: fetch.timeout must be positive, got %d", c.Fetch.Timeout)
	case c.Fetch.SubresourceTimeout <= 0:
		return errors.Newf("config: fetch.subresource_timeout must be positive, got %d", c.Fetch.SubresourceTimeout)
	case c.Fetch.MaxBodyBytes <= 0:
		return errors.Newf("config: fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes)
	case c.Fetch.UserAgent == "":
		return errors.New("config: fetch.user_agent must not be empty")
	case c.Checks.TitleMaxLength <= 0:
		return errors.Newf("config: checks.title_max_length must be positive, got %d", c.Checks.TitleMaxLength)
	case c.Checks.DescriptionMaxLength <= 0:
		return errors.Newf("config: checks.description_max_length must be positive, got %d", c.Checks.DescriptionMaxLength)
	case c.Checks.SnippetLength <= 0:
		return errors.Newf("config: checks.snippet_length must be positive, got %d", c.Checks.SnippetLength)
	}
	return nil
}

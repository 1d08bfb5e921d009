// Package config holds the DanNet MCP server configuration, loaded with
// Viper from defaults, an optional TOML file, and DANNET_* environment
// variables.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/wordnet-dk/dannet-mcp/errors"
)

// Well-known DanNet deployments.
const (
	RemoteURL = "https://wordnet.dk"
	LocalURL  = "http://localhost:3456"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig controls the upstream DanNet endpoint and transport behavior.
type ServerConfig struct {
	// BaseURL overrides endpoint selection entirely when set.
	BaseURL string `mapstructure:"base_url"`
	// Local forces the local development instance (localhost:3456).
	Local bool `mapstructure:"local"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// MaxRetries is the number of retries after a failed attempt.
	MaxRetries int `mapstructure:"max_retries"`
	// ProbeTimeoutSeconds bounds the local-instance availability probe.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds"`
	// RequestsPerMinute throttles outbound requests; 0 disables throttling.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.local", false)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.max_retries", 3)
	v.SetDefault("server.probe_timeout_seconds", 3)
	v.SetDefault("server.requests_per_minute", 0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads configuration from defaults and DANNET_* environment variables.
func Load() (*Config, error) {
	return LoadWithViper(newViper())
}

// LoadFromFile loads configuration from a specific TOML file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// DANNET_MCP_LOCAL=true is the documented toggle for agent runtimes that
	// can only pass environment variables, kept alongside server.local.
	if strings.EqualFold(v.GetString("mcp_local"), "true") {
		config.Server.Local = true
	}

	return &config, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("DANNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

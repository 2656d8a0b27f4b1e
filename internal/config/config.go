// Package config provides configuration types and loading for tickd.
//
// Configuration is file-based (tickd.yaml) with environment variable
// overrides. Every field has a sensible default so the server runs with
// no config file at all.
package config

import "fmt"

// Config is the top-level configuration for the tickd server.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// ErrorLog configures the append-only error log file.
	ErrorLog ErrorLogConfig `yaml:"error_log" mapstructure:"error_log"`

	// Seed controls whether the store starts with the built-in sample
	// items. Default: true.
	Seed bool `yaml:"seed" mapstructure:"seed"`
}

// ServerConfig configures the HTTP server listener.
type ServerConfig struct {
	// Host is the interface to bind. Default: "127.0.0.1".
	Host string `yaml:"host" mapstructure:"host" validate:"required"`

	// Port is the TCP port to listen on. Default: 8484.
	Port int `yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`

	// LogLevel controls slog verbosity. Default: "info".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// ErrorLogConfig configures the file the error sink appends to.
type ErrorLogConfig struct {
	// Path is the error log file. Parent directories are created on
	// first write. Default: "logs/errors.log".
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SetDefaults applies default values for unset optional fields.
func (c *Config) SetDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8484
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.ErrorLog.Path == "" {
		c.ErrorLog.Path = "logs/errors.log"
	}
}

// DefaultConfig returns a Config populated with all defaults.
func DefaultConfig() *Config {
	cfg := &Config{Seed: true}
	cfg.SetDefaults()
	return cfg
}

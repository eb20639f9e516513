// Package config loads server configuration from file, environment and
// defaults.
package config

import "errors"

// Defaults for server configuration.
const (
	DefaultListenAddr  = "127.0.0.1:3001"
	DefaultCommitLimit = 1000
	DefaultChunkSize   = 100
	DefaultPageSize    = 100
	DefaultLogLevel    = "info"
)

// ErrInvalidLimit is returned when a configured limit is not positive.
var ErrInvalidLimit = errors.New("limit must be positive")

// Config is the top-level configuration struct for repoviz.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	OTLP   OTLPConfig   `mapstructure:"otlp"`
}

// ServerConfig holds the HTTP surface knobs.
type ServerConfig struct {
	ListenAddr  string `mapstructure:"listen_addr"`
	RepoPath    string `mapstructure:"repo_path"`
	CommitLimit int    `mapstructure:"commit_limit"`
	ChunkSize   int    `mapstructure:"chunk_size"`
	PageSize    int    `mapstructure:"page_size"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// OTLPConfig holds telemetry export settings. An empty endpoint disables
// export entirely.
type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
	Headers  string `mapstructure:"headers"`
}

// Validate checks configured values for consistency.
func (c *Config) Validate() error {
	if c.Server.CommitLimit <= 0 || c.Server.ChunkSize <= 0 || c.Server.PageSize <= 0 {
		return ErrInvalidLimit
	}

	return nil
}

package config

import "time"

// Config holds server configuration values.
type Config struct {
	IRCAddr             string        `mapstructure:"irc_addr" yaml:"irc_addr"`
	HTTPAddr            string        `mapstructure:"http_addr" yaml:"http_addr"`
	ServerName          string        `mapstructure:"server_name" yaml:"server_name"`
	ClientHost          string        `mapstructure:"client_host" yaml:"client_host"`
	ReadHeaderTimeout   time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RegistrationTimeout time.Duration `mapstructure:"registration_timeout" yaml:"registration_timeout"`
	LogLevel            string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat           string        `mapstructure:"log_format" yaml:"log_format"`
	DatabasePath        string        `mapstructure:"database_path" yaml:"database_path"`
	ServerPasswordHash  string        `mapstructure:"server_password_hash" yaml:"server_password_hash"`
	JWTSecret           string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer           string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience         string        `mapstructure:"jwt_audience" yaml:"jwt_audience"`
	JWTTTL              time.Duration `mapstructure:"jwt_ttl" yaml:"jwt_ttl"`
	MaxChannels         int           `mapstructure:"max_channels" yaml:"max_channels"`
	SendQueueSize       int           `mapstructure:"send_queue_size" yaml:"send_queue_size"`
	MaxLineBytes        int           `mapstructure:"max_line_bytes" yaml:"max_line_bytes"`
	FloodLinesPerMinute int           `mapstructure:"flood_lines_per_minute" yaml:"flood_lines_per_minute"`
	WSEnabled           bool          `mapstructure:"ws_enabled" yaml:"ws_enabled"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		IRCAddr:             ":6667",
		HTTPAddr:            ":8080",
		ServerName:          "wirechat.local",
		ClientHost:          "localhost",
		ReadHeaderTimeout:   5 * time.Second,
		ShutdownTimeout:     5 * time.Second,
		RegistrationTimeout: 30 * time.Second,
		LogLevel:            "info",
		LogFormat:           "console",
		DatabasePath:        "",
		JWTIssuer:           "wirechat-ircd",
		JWTAudience:         "wirechat-admin",
		JWTTTL:              24 * time.Hour,
		MaxChannels:         20,
		SendQueueSize:       64,
		MaxLineBytes:        512,
		FloodLinesPerMinute: 600,
		WSEnabled:           true,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
// WSEnabled is a bool and is left to the loader.
func (c *Config) UpdateFrom(other Config) {
	if other.IRCAddr != "" {
		c.IRCAddr = other.IRCAddr
	}
	if other.HTTPAddr != "" {
		c.HTTPAddr = other.HTTPAddr
	}
	if other.ServerName != "" {
		c.ServerName = other.ServerName
	}
	if other.ClientHost != "" {
		c.ClientHost = other.ClientHost
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.RegistrationTimeout != 0 {
		c.RegistrationTimeout = other.RegistrationTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.DatabasePath != "" {
		c.DatabasePath = other.DatabasePath
	}
	if other.ServerPasswordHash != "" {
		c.ServerPasswordHash = other.ServerPasswordHash
	}
	if other.JWTSecret != "" {
		c.JWTSecret = other.JWTSecret
	}
	if other.JWTIssuer != "" {
		c.JWTIssuer = other.JWTIssuer
	}
	if other.JWTAudience != "" {
		c.JWTAudience = other.JWTAudience
	}
	if other.JWTTTL != 0 {
		c.JWTTTL = other.JWTTTL
	}
	if other.MaxChannels != 0 {
		c.MaxChannels = other.MaxChannels
	}
	if other.SendQueueSize != 0 {
		c.SendQueueSize = other.SendQueueSize
	}
	if other.MaxLineBytes != 0 {
		c.MaxLineBytes = other.MaxLineBytes
	}
	if other.FloodLinesPerMinute != 0 {
		c.FloodLinesPerMinute = other.FloodLinesPerMinute
	}
}

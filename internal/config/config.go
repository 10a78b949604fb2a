package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	// Heartbeats are sent by the server every HeartbeatOutgoing and expected
	// from the client every HeartbeatIncoming. Zero disables that direction.
	HeartbeatOutgoing time.Duration `mapstructure:"heartbeat_outgoing" yaml:"heartbeat_outgoing"`
	HeartbeatIncoming time.Duration `mapstructure:"heartbeat_incoming" yaml:"heartbeat_incoming"`
	DisconnectDelay   time.Duration `mapstructure:"disconnect_delay" yaml:"disconnect_delay"`

	SendBuffer         int   `mapstructure:"send_buffer" yaml:"send_buffer"`
	MaxMessageBytes    int64 `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	RateLimitPerMinute int   `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		ReadHeaderTimeout:  5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "info",
		LogFormat:          "console",
		AllowedOrigins:     []string{"*"},
		HeartbeatOutgoing:  25 * time.Second,
		HeartbeatIncoming:  25 * time.Second,
		DisconnectDelay:    5 * time.Second,
		SendBuffer:         32,
		MaxMessageBytes:    64 << 10,
		RateLimitPerMinute: 0,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.HeartbeatOutgoing != 0 {
		c.HeartbeatOutgoing = other.HeartbeatOutgoing
	}
	if other.HeartbeatIncoming != 0 {
		c.HeartbeatIncoming = other.HeartbeatIncoming
	}
	if other.DisconnectDelay != 0 {
		c.DisconnectDelay = other.DisconnectDelay
	}
	if other.SendBuffer != 0 {
		c.SendBuffer = other.SendBuffer
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.RateLimitPerMinute != 0 {
		c.RateLimitPerMinute = other.RateLimitPerMinute
	}
}

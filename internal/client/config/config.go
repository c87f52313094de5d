// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the student-records CLI client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend TCP endpoint.
//   - EnvelopeKey: 32-byte pre-shared key for the wire envelope. Must match
//     the server's key.
//   - DialTimeout: how long to wait for the TCP connection to come up.
type Config struct {
	ServerEndpointAddr string
	EnvelopeKey        string
	DialTimeout        time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:12345"
	c.EnvelopeKey = "0123456789abcdef0123456789abcdef"
	c.DialTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

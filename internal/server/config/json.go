package config

import (
	"encoding/json"
	"os"
	"time"

	"studentdesk/internal/flagx"
	"studentdesk/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration so files may express them as strings ("15m") or integer
// nanoseconds. After unmarshalling, values are copied into the runtime
// Config struct.
type JsonConfig struct {
	EndpointAddr           string         `json:"endpoint_addr"`
	DatabaseDSN            string         `json:"database_dsn"`
	EnvelopeKey            string         `json:"envelope_key"`
	SessionTTL             timex.Duration `json:"session_ttl"`
	SessionCleanupInterval timex.Duration `json:"session_cleanup_interval"`
	LockoutThreshold       int            `json:"lockout_threshold"`
	LockoutWindow          timex.Duration `json:"lockout_window"`
	IdleTimeout            timex.Duration `json:"idle_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics, since the operator explicitly asked for it.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.EnvelopeKey = c.EnvelopeKey
	config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	config.SessionCleanupInterval = time.Duration(c.SessionCleanupInterval.Duration)
	config.LockoutThreshold = c.LockoutThreshold
	config.LockoutWindow = time.Duration(c.LockoutWindow.Duration)
	config.IdleTimeout = time.Duration(c.IdleTimeout.Duration)
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"studentdesk/internal/flagx"
	"studentdesk/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. The timeout uses
// timex.Duration so files may express it as a string ("5s") or integer
// nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	EnvelopeKey        string         `json:"envelope_key"`
	DialTimeout        timex.Duration `json:"dial_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; when
// neither is set, no JSON file is loaded.
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

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.EnvelopeKey = c.EnvelopeKey
	config.DialTimeout = time.Duration(c.DialTimeout.Duration)
}

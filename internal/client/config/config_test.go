package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:12345", c.ServerEndpointAddr)
	assert.Len(t, c.EnvelopeKey, 32)
	assert.Equal(t, 5*time.Second, c.DialTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, "127.0.0.1:12345", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.DialTimeout)
}

func TestParseJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	data := `{"server_endpoint_addr": "srv:9999", "envelope_key": "ffffffffffffffffffffffffffffffff", "dial_timeout": "10s"}`
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	origArgs := os.Args
	os.Args = []string{"client", "-c", file}
	defer func() { os.Args = origArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "srv:9999", c.ServerEndpointAddr)
	assert.Equal(t, "ffffffffffffffffffffffffffffffff", c.EnvelopeKey)
	assert.Equal(t, 10*time.Second, c.DialTimeout)
}

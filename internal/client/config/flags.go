package config

import (
	"flag"
	"os"
	"time"

	"studentdesk/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server address (host:port)
//	-k string   envelope pre-shared key (32 bytes)
//	-t int      dial timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server address")
	fs.StringVar(&config.EnvelopeKey, "k", config.EnvelopeKey, "envelope pre-shared key")
	dialTimeout := fs.Int("t", int(config.DialTimeout.Seconds()), "dial timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DialTimeout = time.Duration(*dialTimeout) * time.Second
}

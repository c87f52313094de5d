package config

import (
	"flag"
	"os"
	"time"

	"studentdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   TCP bind address (e.g., ":12345")
//	-d string   PostgreSQL DSN
//	-k string   envelope pre-shared key (32 bytes)
//	-s int      session TTL, hours
//	-l int      lockout threshold, attempts
//	-w int      lockout window, minutes
//	-i int      idle read timeout, seconds (0 disables)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-s", "-l", "-w", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.EnvelopeKey, "k", config.EnvelopeKey, "envelope pre-shared key")

	sessionTTL := fs.Int("s", int(config.SessionTTL.Hours()), "session TTL (in hours)")
	fs.IntVar(&config.LockoutThreshold, "l", config.LockoutThreshold, "failed logins before lockout")
	lockoutWindow := fs.Int("w", int(config.LockoutWindow.Minutes()), "lockout window (in minutes)")
	idleTimeout := fs.Int("i", int(config.IdleTimeout.Seconds()), "idle read timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Hour
	config.LockoutWindow = time.Duration(*lockoutWindow) * time.Minute
	config.IdleTimeout = time.Duration(*idleTimeout) * time.Second
}

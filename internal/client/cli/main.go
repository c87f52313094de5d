package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"studentdesk/internal/client/config"
	"studentdesk/internal/client/wire"
)

// Main wires the configuration, dials the server, and runs the REPL until
// the user leaves.
func Main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	client, err := wire.Dial(cfg.ServerEndpointAddr, []byte(cfg.EnvelopeKey), cfg.DialTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer client.Close()

	app := NewApp(client, os.Stdin, os.Stdout)

	statusFn := func() string {
		if app.isLoggedIn() {
			return app.username
		}
		return "not logged in"
	}

	runREPL(ctx, app, statusFn, bufio.NewScanner(os.Stdin))
}

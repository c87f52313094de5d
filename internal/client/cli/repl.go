package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Ping(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	GetData(ctx context.Context) error
	SubmitRequest(ctx context.Context) error
	GetRequests(ctx context.Context) error
	Exit(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the student-records CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - ping           — check server liveness
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - data           — show the student record
//	  - submit         — submit a request or complaint
//	  - requests       — list submitted requests
//	  - exit | quit    — close the session and leave
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sd> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: data, submit, requests, exit")
			} else {
				printlnFn("Available commands: ping, register, login, exit")
			}

		case "ping":
			_ = a.Ping(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "data":
			_ = a.GetData(ctx)

		case "submit":
			_ = a.SubmitRequest(ctx)

		case "requests":
			_ = a.GetRequests(ctx)

		case "exit", "quit":
			if a.isLoggedIn() {
				_ = a.Exit(ctx)
			}
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

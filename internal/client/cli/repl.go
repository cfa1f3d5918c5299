package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/rentafind/rentafind/internal/client/auth"
	"github.com/rentafind/rentafind/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	authState() auth.State
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context) error
	MyListings(ctx context.Context) error
	AddListing(ctx context.Context) error
	DeleteListing(ctx context.Context, id string) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
}

// authRequired marks the commands gated by the route guard.
var authRequired = map[string]bool{
	"my":      true,
	"add":     true,
	"delete":  true,
	"profile": true,
	"update":  true,
}

// runREPL starts a simple read–eval–print loop for the Rentafind CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Auth-gated commands pass through guard.Decide first: while the session is
// still restoring the command is deferred, and without a session the user is
// pointed at login instead.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if authRequired[cmd] {
			switch guard.Decide(true, a.authState()) {
			case guard.Defer:
				printlnFn("Still restoring your session, try again in a moment.")
				continue
			case guard.Redirect:
				printlnFn("Please log in first ('login').")
				continue
			}
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search, my, add, delete <id>, profile, update, logout, exit")
			} else {
				printlnFn("Available commands: search, login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "s", "search":
			_ = a.Search(ctx)

		case "my":
			_ = a.MyListings(ctx)

		case "add":
			_ = a.AddListing(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteListing(ctx, args[0])

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

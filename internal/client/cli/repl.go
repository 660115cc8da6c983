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
	isReady() bool
	Login(ctx context.Context) error
	PasswordLogin(ctx context.Context) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context) error
	Account(ctx context.Context) error
	ListClients(ctx context.Context) error
	AddClient(ctx context.Context) error
	Team(ctx context.Context) error
	Invite(ctx context.Context, args []string) error
	InviteShow(ctx context.Context, token string) error
	InviteResend(ctx context.Context, token string) error
	InviteAccept(ctx context.Context, token string) error
}

// runREPL starts a simple read-eval-print loop for the WerkMate CLI.
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
//	Not signed in:
//	  - help                    — show available commands
//	  - login                   — sign in via the browser
//	  - login-pw                — sign in with email and password
//	  - invite-show <token>     — inspect an invite
//	  - invite-resend <token>   — re-send an invite email
//	  - exit | quit             — leave the program
//
//	Signed in:
//	  - help                    — show available commands
//	  - whoami                  — show the signed-in identity
//	  - account                 — show the active workspace
//	  - clients                 — list clients
//	  - addclient               — add a client (interactive prompts)
//	  - team                    — list team members
//	  - invite <email> [role]   — invite a team member
//	  - invite-show <token>     — inspect an invite
//	  - invite-resend <token>   — re-send an invite email
//	  - invite-accept <token>   — accept an invite
//	  - logout [forget]         — sign out; "forget" also drops the
//	    remembered workspace
//	  - exit | quit             — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wm %s > ", statusFn()))
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

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, account, clients, addclient, team, invite, invite-show, invite-resend, invite-accept, logout [forget], exit")
			} else {
				printlnFn("Available commands: login, login-pw, invite-show, invite-resend, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "login-pw":
			_ = a.PasswordLogin(ctx)

		case "logout":
			_ = a.Logout(ctx, args)

		case "whoami":
			_ = a.Whoami(ctx)

		case "account":
			_ = a.Account(ctx)

		case "clients":
			_ = a.ListClients(ctx)

		case "addclient":
			_ = a.AddClient(ctx)

		case "team":
			_ = a.Team(ctx)

		case "invite":
			if len(args) == 0 {
				printlnFn("Usage: invite <email> [role]")
				continue
			}
			_ = a.Invite(ctx, args)

		case "invite-show":
			if len(args) == 0 {
				printlnFn("Usage: invite-show <token>")
				continue
			}
			_ = a.InviteShow(ctx, args[0])

		case "invite-resend":
			if len(args) == 0 {
				printlnFn("Usage: invite-resend <token>")
				continue
			}
			_ = a.InviteResend(ctx, args[0])

		case "invite-accept":
			if len(args) == 0 {
				printlnFn("Usage: invite-accept <token>")
				continue
			}
			_ = a.InviteAccept(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/linkjournal/internal/apperr"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
	Topics(ctx context.Context) error
	NewTopic(ctx context.Context) error
	RenameTopic(ctx context.Context, args []string) error
	DeleteTopic(ctx context.Context, args []string) error
	Journals(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Important(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the LinkJournal CLI.
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
//	  - help           - show available commands
//	  - signup         - create an account
//	  - login          - authenticate
//	  - reset          - request a password reset email
//	  - exit | quit    - leave the program
//
//	Logged in:
//	  - help                 - show available commands
//	  - topics               - list topics
//	  - newtopic             - create a topic
//	  - renametopic <id>     - rename a topic
//	  - deltopic <id>        - delete a topic (journals survive)
//	  - journals [topic-id]  - list journals, optionally for one topic
//	  - show <id>            - show a single journal
//	  - add                  - add a journal
//	  - edit <id>            - edit a journal
//	  - del <id>             - delete a journal
//	  - important <id>       - toggle the important flag
//	  - profile              - show the backend profile
//	  - avatar <file>        - upload a new profile picture
//	  - logout               - log out
//	  - exit | quit          - leave the program
//
// Errors returned by command handlers surface as a single line with the
// classifier's user-facing message; the loop itself never aborts on them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lj> %s > ", statusFn()))
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

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: topics, newtopic, renametopic, deltopic, journals, show, add, edit, del, important, profile, avatar, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, reset, exit")
			}

		case "signup":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "topics":
			err = a.Topics(ctx)

		case "newtopic":
			err = a.NewTopic(ctx)

		case "renametopic":
			err = a.RenameTopic(ctx, args)

		case "deltopic":
			err = a.DeleteTopic(ctx, args)

		case "j", "journals":
			err = a.Journals(ctx, args)

		case "show":
			err = a.Show(ctx, args)

		case "add":
			err = a.Add(ctx)

		case "edit":
			err = a.Edit(ctx, args)

		case "del":
			err = a.Delete(ctx, args)

		case "important":
			err = a.Important(ctx, args)

		case "profile":
			err = a.Profile(ctx)

		case "avatar":
			err = a.Avatar(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(apperr.Classify(err).UserMessage)
		}
	}
}

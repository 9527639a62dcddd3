package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn and printfFn are test seams for user-facing output. In
// tests, replace them with stubs that capture what was printed.
var printlnFn = fmt.Println
var printfFn = fmt.Printf

// Root runs the read-eval-print loop. It reads a line, parses the first
// token as the command, and dispatches to methods on the App. Unknown
// commands are reported back to the user. The loop exits on EOF or when
// the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop carries
// on; every failure is terminal for that attempt only and must be
// re-triggered by the user (no automatic retry anywhere).
func (a *App) Root(ctx context.Context) {
	printlnFn("Book Review Platform CLI (type 'help' for commands)")

	for {
		printfFn("brp %s> ", a.getStatus())
		// Commands and prompt answers come through the same buffered
		// reader; a second buffer over stdin would swallow input.
		line, readErr := a.reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			a.printHelp()

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "adminlogin":
			err = a.AdminLogin(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "l", "list":
			err = a.List(ctx)
		case "filter":
			err = a.Filter(ctx)
		case "my":
			err = a.MyReviews(ctx)
		case "add":
			err = a.AddReview(ctx)
		case "edit":
			err = a.EditReview(ctx)
		case "delete":
			err = a.DeleteReview(ctx)

		case "users":
			err = a.Users(ctx)
		case "deluser":
			err = a.DeleteUser(ctx)
		case "allreviews":
			err = a.AllReviews(ctx)
		case "archive":
			err = a.ArchiveReview(ctx)
		case "stats":
			err = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func (a *App) printHelp() {
	switch {
	case !a.isLoggedIn():
		printlnFn("Available commands: register, login, adminlogin, exit")
	case a.session.IsAdmin():
		printlnFn("Available commands: (l)ist, filter, my, add, edit, delete, users, deluser, allreviews, archive, stats, logout, exit")
	default:
		printlnFn("Available commands: (l)ist, filter, my, add, edit, delete, logout, exit")
	}
}

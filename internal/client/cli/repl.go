package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Select(ctx context.Context, paths []string) error
	Files(ctx context.Context) error
	Upload(ctx context.Context) error
}

// runREPL reads a line from in, treats the first token as the command
// and dispatches to a. The loop exits on EOF, on "exit"/"quit", or when ctx
// is done.
//
//	help                 show available commands
//	register | login     authenticate
//	logout | whoami      session commands
//	select <paths...>    choose files to upload (replaces the selection)
//	files                list the selection
//	upload               send the selection
//	exit | quit          leave the program
//
// Errors returned by handlers are ignored here; handlers report them. The
// same reader feeds the prompts inside handlers, so no input is buffered
// away from them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("rdrop%s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: select, files, upload, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, select, files, upload, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "select":
			_ = a.Select(ctx, args)

		case "files", "ls":
			_ = a.Files(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Mine(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Retry(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	User(ctx context.Context, id int64) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

const (
	helpLoggedOut = "Available commands: register, login, (l)ist, search <text>, show <id>, user <id>, add, edit <id>, delete <id>, retry, exit"
	helpLoggedIn  = "Available commands: (l)ist, mine, search <text>, show <id>, user <id>, add, edit <id>, delete <id>, retry, whoami, logout, exit"
)

// runREPL reads commands from r until EOF or "exit"/"quit" and dispatches
// them to a. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "neko %s> ", statusFn())

		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "mine":
			cmdErr = a.Mine(ctx)
		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "retry":
			cmdErr = a.Retry(ctx)

		case "show", "user", "edit", "delete":
			id, ok := parseIDArg(w, cmd, args)
			if !ok {
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, id)
			case "user":
				cmdErr = a.User(ctx, id)
			case "edit":
				cmdErr = a.Edit(ctx, id)
			case "delete":
				cmdErr = a.Delete(ctx, id)
			}

		case "add":
			cmdErr = a.Add(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

func parseIDArg(w io.Writer, cmd string, args []string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(w, "Invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}

// AngelaMos | 2026
// repl.go

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	checkPending(ctx context.Context) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Apply(ctx context.Context, args []string) error
	My(ctx context.Context) error
	SetStatus(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	All(ctx context.Context) error
}

func helpText(a execIface) string {
	switch {
	case a.isAdmin():
		return "Commands: list, show <n|id>, apply <n|id>, my, status <n|id> <STATUS>, " +
			"create, delete <n|id>, toggle <n|id>, all, logout, exit"
	case a.isLoggedIn():
		return "Commands: list, show <n|id>, apply <n|id>, my, status <n|id> <STATUS>, logout, exit"
	default:
		return "Commands: list, show <n|id>, register, login, exit"
	}
}

// runREPL reads commands until EOF or exit and writes its own output to
// out. Command errors are reported by the commands themselves; the
// pending-apply check runs before the first prompt and after every command.
func runREPL(
	ctx context.Context,
	a execIface,
	statusFn func() string,
	reader *bufio.Reader,
	out io.Writer,
) {
	say := func(args ...any) {
		fmt.Fprintln(out, args...) //nolint:errcheck // terminal output
	}

	_ = a.checkPending(ctx) //nolint:errcheck // reported by checkPending

	for {
		fmt.Fprintf(out, "internhub %s> ", statusFn()) //nolint:errcheck // terminal output

		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				say("read input:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			say(helpText(a))

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "apply":
			_ = a.Apply(ctx, args)

		case "my":
			_ = a.My(ctx)

		case "status":
			_ = a.SetStatus(ctx, args)

		case "create":
			_ = a.Create(ctx)

		case "delete":
			_ = a.Delete(ctx, args)

		case "toggle":
			_ = a.Toggle(ctx, args)

		case "all":
			_ = a.All(ctx)

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
			continue
		}

		_ = a.checkPending(ctx) //nolint:errcheck // reported by checkPending
	}
}

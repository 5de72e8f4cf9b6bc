// AngelaMos | 2026
// repl_test.go

package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	admin    bool
	calls    []string
	checks   int
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) checkPending(context.Context) error {
	f.checks++
	return nil
}

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(context.Context) error { return f.record("list") }
func (f *fakeExec) Show(_ context.Context, args []string) error {
	return f.record("show", args...)
}
func (f *fakeExec) Apply(_ context.Context, args []string) error {
	return f.record("apply", args...)
}
func (f *fakeExec) My(context.Context) error { return f.record("my") }
func (f *fakeExec) SetStatus(_ context.Context, args []string) error {
	return f.record("status", args...)
}
func (f *fakeExec) Create(context.Context) error { return f.record("create") }
func (f *fakeExec) Delete(_ context.Context, args []string) error {
	return f.record("delete", args...)
}
func (f *fakeExec) Toggle(_ context.Context, args []string) error {
	return f.record("toggle", args...)
}
func (f *fakeExec) All(context.Context) error { return f.record("all") }

func TestRunREPL_DispatchesCommands(t *testing.T) {

	input := strings.Join([]string{
		"login",
		"LIST",
		"show 2",
		"apply 1",
		"my",
		"status 1 applied",
		"create",
		"delete abc",
		"toggle 3",
		"all",
		"register",
		"logout",
		"exit",
		"list",
	}, "\n") + "\n"

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" },
		bufio.NewReader(strings.NewReader(input)), io.Discard)

	assert.Equal(t, []string{
		"login", "list", "show 2", "apply 1", "my", "status 1 applied",
		"create", "delete abc", "toggle 3", "all", "register", "logout",
	}, exec.calls)
	assert.Equal(t, 13, exec.checks)
}

func TestRunREPL_UnknownAndBlankLines(t *testing.T) {
	var out bytes.Buffer

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" },
		bufio.NewReader(strings.NewReader("\n   \nfrobnicate\nquit\n")), &out)

	assert.Empty(t, exec.calls)
	assert.Equal(t, 1, exec.checks)
	assert.Contains(t, out.String(), "Unknown command: frobnicate\n")
	assert.True(t, strings.HasSuffix(out.String(), "Bye!\n"))
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	var out bytes.Buffer

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "ada@b.io (USER)" },
		bufio.NewReader(strings.NewReader("my")), &out)

	assert.Equal(t, []string{"my"}, exec.calls)
	assert.True(t, strings.HasPrefix(out.String(), "internhub ada@b.io (USER)> "))
	assert.NotContains(t, out.String(), "Bye!")
}

func TestHelpText_ByRole(t *testing.T) {
	guest := helpText(&fakeExec{})
	assert.Contains(t, guest, "login")
	assert.NotContains(t, guest, "apply")

	user := helpText(&fakeExec{loggedIn: true})
	assert.Contains(t, user, "apply")
	assert.NotContains(t, user, "create")

	admin := helpText(&fakeExec{loggedIn: true, admin: true})
	assert.Contains(t, admin, "create")
	assert.Contains(t, admin, "all")
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/client/client"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return f.err
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) ChangeEmail(ctx context.Context) error {
	f.calls = append(f.calls, "email")
	return nil
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	f.calls = append(f.calls, "password")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"whoami",
		"email",
		"password now",
		"logout",
		"foobar",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"login", "whoami", "email", "password", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls: got %v, want %v", exec.calls, want)
	}

	joined := strings.Join(*out, "\n")
	for _, s := range []string{
		"Available commands: register, login, exit",
		"Available commands: whoami, email, password, logout, exit",
		"Unknown command: foobar",
		"Bye!",
	} {
		if !strings.Contains(joined, s) {
			t.Fatalf("output lacks %q:\n%s", s, joined)
		}
	}
}

func TestRunREPL_EOFEnds(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("register")))

	if len(exec.calls) != 1 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ReportsHandlerErrors(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{err: &client.ValidationError{Violations: []apperrors.FieldViolation{
		{Field: "username", Message: "Username is in use. Please choose a different username."},
	}}}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("register\nquit\n")))

	joined := strings.Join(*out, "\n")
	if !strings.Contains(joined, "Please correct the following:\n  username: Username is in use.") {
		t.Fatalf("validation error not shown:\n%s", joined)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{client.ErrUnavailable, "Server unavailable, try again later"},
		{client.ErrInvalidCredentials, "Invalid username or password"},
		{errNotLoggedIn, "Error: please log in first"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := describeError(tt.err); got != tt.want {
			t.Fatalf("describeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

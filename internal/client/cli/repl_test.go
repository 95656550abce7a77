package cli

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mkravets/linkjournal/internal/apperr"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string

	errFor map[string]error
}

func (f *fakeExec) record(cmd string, args ...string) error {
	f.calls = append(f.calls, cmd)
	f.args = append(f.args, args...)
	if f.errFor != nil {
		return f.errFor[cmd]
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	return f.record("signup")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Reset(ctx context.Context) error { return f.record("reset") }
func (f *fakeExec) Topics(ctx context.Context) error {
	return f.record("topics")
}
func (f *fakeExec) NewTopic(ctx context.Context) error { return f.record("newtopic") }
func (f *fakeExec) RenameTopic(ctx context.Context, args []string) error {
	return f.record("renametopic", args...)
}
func (f *fakeExec) DeleteTopic(ctx context.Context, args []string) error {
	return f.record("deltopic", args...)
}
func (f *fakeExec) Journals(ctx context.Context, args []string) error {
	return f.record("journals", args...)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args...)
}
func (f *fakeExec) Add(ctx context.Context) error { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args...)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("del", args...)
}
func (f *fakeExec) Important(ctx context.Context, args []string) error {
	return f.record("important", args...)
}
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }
func (f *fakeExec) Avatar(ctx context.Context, args []string) error {
	return f.record("avatar", args...)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"topics",
		"journals topic-1",
		"show j-1",
		"important j-1",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "topics", "journals", "show", "important"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	wantArgs := []string{"topic-1", "j-1", "j-1"}
	if len(exec.args) != len(wantArgs) {
		t.Fatalf("args mismatch: got %v, want %v", exec.args, wantArgs)
	}
	for i, a := range wantArgs {
		if exec.args[i] != a {
			t.Fatalf("args mismatch: got %v, want %v", exec.args, wantArgs)
		}
	}
}

func TestRunREPL_ErrorsPrintUserMessage(t *testing.T) {
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			if s, ok := v.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{
		loggedIn: true,
		errFor: map[string]error{
			"topics": apperr.FromStatus(http.StatusUnauthorized, "missing token"),
		},
	}
	sc := bufio.NewScanner(strings.NewReader("topics\nexit\n"))

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	found := false
	for _, line := range printed {
		if line == "Please log in to continue." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the classified user message, printed: %v", printed)
	}
}

func TestRunREPL_EmptyLinesAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n   \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

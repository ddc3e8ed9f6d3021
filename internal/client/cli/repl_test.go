package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	signedIn bool
	calls    []string
	failWith error
}

func (f *fakeExec) rec(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.failWith
}

func (f *fakeExec) isSignedIn() bool { return f.signedIn }

func (f *fakeExec) Signup(context.Context) error { return f.rec("signup") }
func (f *fakeExec) Login(context.Context) error {
	f.signedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.signedIn = false
	return f.rec("logout")
}
func (f *fakeExec) Status(context.Context) error                   { return f.rec("status") }
func (f *fakeExec) Cases(context.Context) error                    { return f.rec("cases") }
func (f *fakeExec) NewCase(context.Context) error                  { return f.rec("newcase") }
func (f *fakeExec) EditCase(_ context.Context, a []string) error   { return f.rec("editcase", a...) }
func (f *fakeExec) SelectCase(_ context.Context, a []string) error { return f.rec("selectcase", a...) }
func (f *fakeExec) DeleteCase(_ context.Context, a []string) error { return f.rec("deletecase", a...) }
func (f *fakeExec) Docs(context.Context) error                     { return f.rec("docs") }
func (f *fakeExec) AddDoc(context.Context) error                   { return f.rec("adddoc") }
func (f *fakeExec) RmDoc(_ context.Context, a []string) error      { return f.rec("rmdoc", a...) }
func (f *fakeExec) Timeline(context.Context) error                 { return f.rec("timeline") }
func (f *fakeExec) AddEvent(context.Context) error                 { return f.rec("addevent") }
func (f *fakeExec) EditEvent(_ context.Context, a []string) error  { return f.rec("editevent", a...) }
func (f *fakeExec) RmEvent(_ context.Context, a []string) error    { return f.rec("rmevent", a...) }
func (f *fakeExec) Violations(context.Context) error               { return f.rec("violations") }
func (f *fakeExec) Violate(_ context.Context, a []string) error    { return f.rec("violate", a...) }
func (f *fakeExec) Details(_ context.Context, a []string) error    { return f.rec("details", a...) }
func (f *fakeExec) Parent(_ context.Context, a []string) error     { return f.rec("parent", a...) }
func (f *fakeExec) Pref(_ context.Context, a []string) error       { return f.rec("pref", a...) }
func (f *fakeExec) Templates(context.Context) error                { return f.rec("templates") }
func (f *fakeExec) Generate(_ context.Context, a []string) error   { return f.rec("generate", a...) }

// captureOutput swaps the REPL print seams for a buffer.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&sb, a...) }
	printFn = func(a ...any) (int, error) { return fmt.Fprint(&sb, a...) }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &sb
}

func runLines(ex execIface, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), ex, func() string { return "ck> " }, r)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)
	ex := &fakeExec{}

	runLines(ex,
		"help",
		"",
		"login",
		"newcase",
		"SelectCase 2",
		"violate fourthAmendment on",
		"generate analysis out.txt",
		"details edit",
		"pref theme dark",
		"logout",
		"logout",
		"foobar",
		"exit",
		"cases",
	)

	assert.Equal(t, []string{
		"login",
		"newcase",
		"selectcase 2",
		"violate fourthAmendment on",
		"generate analysis out.txt",
		"details edit",
		"pref theme dark",
		"logout",
	}, ex.calls, "commands after exit are not read")
	assert.Contains(t, out.String(), "violate <key> on|off")
	assert.Contains(t, out.String(), "Not signed in.")
	assert.Contains(t, out.String(), "Unknown command: foobar")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_EOFWithoutExit(t *testing.T) {
	captureOutput(t)
	ex := &fakeExec{}
	runLines(ex, "cases", "docs")
	assert.Equal(t, []string{"cases", "docs"}, ex.calls, "last line without newline is still run")
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	out := captureOutput(t)

	runLines(&fakeExec{failWith: errors.New("boom")}, "cases", "quit")
	assert.Contains(t, out.String(), "Error: boom")

	out.Reset()
	runLines(&fakeExec{failWith: usage("rmdoc <n|id>")}, "rmdoc", "quit")
	assert.Contains(t, out.String(), "Usage: rmdoc <n|id>")
	assert.NotContains(t, out.String(), "Error:")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)
	ex := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := bufio.NewReader(strings.NewReader("cases\n"))
	runREPL(ctx, ex, func() string { return "" }, r)
	assert.Empty(t, ex.calls)
}

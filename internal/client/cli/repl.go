package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing REPL output.
var printlnFn = fmt.Println

// printFn writes the prompt without a trailing newline.
var printFn = fmt.Print

// errUsage marks an error whose message is the usage line of a command.
var errUsage = errors.New("usage")

func usage(line string) error {
	return fmt.Errorf("%w: %s", errUsage, line)
}

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isSignedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error

	Cases(ctx context.Context) error
	NewCase(ctx context.Context) error
	EditCase(ctx context.Context, args []string) error
	SelectCase(ctx context.Context, args []string) error
	DeleteCase(ctx context.Context, args []string) error

	Docs(ctx context.Context) error
	AddDoc(ctx context.Context) error
	RmDoc(ctx context.Context, args []string) error

	Timeline(ctx context.Context) error
	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context, args []string) error
	RmEvent(ctx context.Context, args []string) error

	Violations(ctx context.Context) error
	Violate(ctx context.Context, args []string) error

	Details(ctx context.Context, args []string) error
	Parent(ctx context.Context, args []string) error
	Pref(ctx context.Context, args []string) error

	Templates(ctx context.Context) error
	Generate(ctx context.Context, args []string) error
}

const helpText = `Account:    signup, login, logout, status
Cases:      cases, newcase, editcase [n], selectcase <n|none>, deletecase <n>
Documents:  docs, adddoc, rmdoc <n>
Timeline:   timeline, addevent, editevent <n>, rmevent <n>
Violations: violations, violate <key> on|off
Details:    details [edit], parent [edit], pref [<name> <value>]
Generate:   templates, generate <template> [file.txt]
Other:      help, exit | quit`

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF or on "exit"/"quit". Handler errors are printed and the
// loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, _ = printFn(promptFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", strings.TrimPrefix(err.Error(), "usage: "))
			} else {
				printlnFn("Error:", err)
			}
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil

	case "signup":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		if !a.isSignedIn() {
			printlnFn("Not signed in.")
			return nil
		}
		return a.Logout(ctx)
	case "status":
		return a.Status(ctx)

	case "cases":
		return a.Cases(ctx)
	case "newcase":
		return a.NewCase(ctx)
	case "editcase":
		return a.EditCase(ctx, args)
	case "selectcase":
		return a.SelectCase(ctx, args)
	case "deletecase":
		return a.DeleteCase(ctx, args)

	case "docs":
		return a.Docs(ctx)
	case "adddoc":
		return a.AddDoc(ctx)
	case "rmdoc":
		return a.RmDoc(ctx, args)

	case "timeline":
		return a.Timeline(ctx)
	case "addevent":
		return a.AddEvent(ctx)
	case "editevent":
		return a.EditEvent(ctx, args)
	case "rmevent":
		return a.RmEvent(ctx, args)

	case "violations":
		return a.Violations(ctx)
	case "violate":
		return a.Violate(ctx, args)

	case "details":
		return a.Details(ctx, args)
	case "parent":
		return a.Parent(ctx, args)
	case "pref":
		return a.Pref(ctx, args)

	case "templates":
		return a.Templates(ctx)
	case "generate":
		return a.Generate(ctx, args)

	default:
		printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
		return nil
	}
}

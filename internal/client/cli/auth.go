package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/syncer"
)

// Input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getEditedText = GetEditedText
	getYesNo      = GetYesNo
)

var errNoServer = errors.New("no sync server configured (set -s or server_url)")

// Signup creates a cloud account. Case data already on this device is kept
// and uploaded when the account has no data yet.
func (a *App) Signup(ctx context.Context) error {
	if a.config.ServerURL == "" {
		return errNoServer
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	return a.reportAuth(a.sync.Signup(ctx, strings.TrimSpace(email), string(password), name))
}

func (a *App) Login(ctx context.Context) error {
	if a.config.ServerURL == "" {
		return errNoServer
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	return a.reportAuth(a.sync.Login(ctx, strings.TrimSpace(email), string(password)))
}

// reportAuth turns rejected credentials into a message; other errors are
// returned as is.
func (a *App) reportAuth(err error) error {
	var ae *client.AuthError
	switch {
	case err == nil:
		if a.sync.Mode() == syncer.ModeCloud {
			a.printf("Signed in as %s.\n", a.sync.Auth().Email)
		} else {
			a.printf("Signed in as %s, but cloud sync is unavailable; working offline.\n", a.sync.Auth().Email)
		}
		return nil
	case errors.As(err, &ae):
		a.printf("Sign-in failed: %s\n", ae.Message)
		return nil
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable; your data stays on this device.\n")
		return nil
	default:
		return err
	}
}

func (a *App) Logout(ctx context.Context) error {
	return a.sync.Logout(ctx)
}

func (a *App) Status(ctx context.Context) error {
	auth := a.sync.Auth()
	snap := a.store.Snapshot()

	if auth.Enabled() {
		a.printf("Account:    %s\n", auth.Email)
	} else {
		a.printf("Account:    not signed in\n")
	}
	a.printf("Sync mode:  %s\n", a.sync.Mode())
	if a.config.ServerURL != "" {
		a.printf("Server:     %s\n", a.config.ServerURL)
	}
	if c, ok := a.store.ActiveCase(); ok {
		a.printf("Case:       %s\n", c.CaseName)
	} else {
		a.printf("Case:       none selected\n")
	}
	a.printf("Records:    %d case(s), %d document(s), %d event(s), %d violation(s)\n",
		len(snap.Cases), len(snap.Documents), len(snap.TimelineEvents), snap.Violations.Count())
	if st := a.prefs.SelectedState(ctx); st != "" {
		a.printf("State:      %s\n", st)
	}
	return nil
}

package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
)

// Details shows the case details record; "details edit" edits it.
func (a *App) Details(ctx context.Context, args []string) error {
	d := a.store.Snapshot().CaseDetails
	if len(args) == 0 {
		a.printf("Case number:  %s\n", orDash(d.CaseNumber))
		a.printf("County:       %s\n", orDash(d.County))
		a.printf("Date opened:  %s\n", orDash(d.DateOpened))
		a.printf("Caseworker:   %s\n", orDash(d.CaseworkerName))
		a.printf("Attorney:     %s\n", orDash(d.AttorneyName))
		return nil
	}
	if len(args) != 1 || args[0] != "edit" {
		return usage("details [edit]")
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Case number", &d.CaseNumber},
		{"County", &d.County},
		{"Date opened", &d.DateOpened},
		{"Caseworker name", &d.CaseworkerName},
		{"Attorney name", &d.AttorneyName},
	}
	for _, f := range fields {
		v, err := getEditedText(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	a.store.SetCaseDetails(d)
	a.printf("Case details saved.\n")
	return nil
}

// Parent shows the parent identity used on generated documents; "parent
// edit" edits it. It is stored on this device only.
func (a *App) Parent(ctx context.Context, args []string) error {
	p := a.prefs.ParentInfo(ctx)
	if len(args) == 0 {
		a.printf("Name:     %s\n", orDash(p.Name))
		a.printf("Address:  %s\n", orDash(p.Address))
		a.printf("City:     %s\n", orDash(p.City))
		a.printf("State:    %s\n", orDash(p.State))
		a.printf("Zip:      %s\n", orDash(p.Zip))
		a.printf("Phone:    %s\n", orDash(p.Phone))
		a.printf("Email:    %s\n", orDash(p.Email))
		return nil
	}
	if len(args) != 1 || args[0] != "edit" {
		return usage("parent [edit]")
	}

	next := models.ParentInfo{}
	fields := []struct {
		prompt string
		cur    string
		dst    *string
	}{
		{"Full name", p.Name, &next.Name},
		{"Street address", p.Address, &next.Address},
		{"City", p.City, &next.City},
		{"State", p.State, &next.State},
		{"Zip", p.Zip, &next.Zip},
		{"Phone", p.Phone, &next.Phone},
		{"Email", p.Email, &next.Email},
	}
	for _, f := range fields {
		v, err := getEditedText(a.reader, f.prompt, f.cur, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if err := a.prefs.SetParentInfo(ctx, next); err != nil {
		return err
	}
	a.printf("Parent information saved.\n")
	return nil
}

// Pref lists preferences, or sets one with "pref <name> <value>".
func (a *App) Pref(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		all := a.prefs.All(ctx)
		names := make([]string, 0, len(all))
		for n := range all {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			a.printf("%-14s %s\n", n, orDash(all[n]))
		}
		return nil
	case 2:
		if err := a.prefs.Set(ctx, args[0], args[1]); err != nil {
			return err
		}
		a.printf("%s = %s\n", args[0], args[1])
		return nil
	default:
		return usage("pref [<name> <value>]  names: " + strings.Join(storage.Names(), ", "))
	}
}

package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

func (a *App) caseIDs() []string {
	snap := a.store.Snapshot()
	ids := make([]string, len(snap.Cases))
	for i, c := range snap.Cases {
		ids[i] = c.ID
	}
	return ids
}

func (a *App) Cases(ctx context.Context) error {
	snap := a.store.Snapshot()
	if len(snap.Cases) == 0 {
		a.printf("No cases yet. Use 'newcase' to add one.\n")
		return nil
	}
	for i, c := range snap.Cases {
		mark := " "
		if c.ID == snap.ActiveCaseID {
			mark = "*"
		}
		a.printf("%s %d. %s  docket: %s  county: %s  criminal: %s  [%s]\n",
			mark, i+1, c.CaseName, orDash(c.DocketNumber), orDash(c.County), criminalLabel(c.CriminalCase), shortID(c.ID))
	}
	return nil
}

func (a *App) NewCase(ctx context.Context) error {
	var c models.Case
	var err error

	if c.CaseName, err = getSimpleText(a.reader, "Case name", a.out); err != nil {
		return err
	}
	if c.DocketNumber, err = getSimpleText(a.reader, "Docket number", a.out); err != nil {
		return err
	}
	if c.County, err = getSimpleText(a.reader, "County", a.out); err != nil {
		return err
	}
	if c.CriminalCase, err = getYesNo(a.reader, "Related criminal case?", a.out); err != nil {
		return err
	}
	if c.Notes, err = getMultiline(a.reader, "Notes", a.out); err != nil {
		return err
	}

	created, err := a.store.CreateCase(c)
	if err != nil {
		return err
	}
	a.printf("Created case %q, now active.\n", created.CaseName)
	return nil
}

// EditCase edits the referenced case, or the active one without args.
// Blank answers keep the current value.
func (a *App) EditCase(ctx context.Context, args []string) error {
	id, err := a.caseRefOrActive(args)
	if err != nil {
		return err
	}
	cur, _ := a.store.Snapshot().FindCase(id)

	var p models.CasePatch
	name, err := getEditedText(a.reader, "Case name", cur.CaseName, a.out)
	if err != nil {
		return err
	}
	docket, err := getEditedText(a.reader, "Docket number", cur.DocketNumber, a.out)
	if err != nil {
		return err
	}
	county, err := getEditedText(a.reader, "County", cur.County, a.out)
	if err != nil {
		return err
	}
	criminal, err := getYesNo(a.reader, "Related criminal case? (currently "+criminalLabel(cur.CriminalCase)+")", a.out)
	if err != nil {
		return err
	}
	notes, err := getEditedText(a.reader, "Notes", cur.Notes, a.out)
	if err != nil {
		return err
	}

	p.CaseName, p.DocketNumber, p.County, p.Notes = &name, &docket, &county, &notes
	p.CriminalCase = criminal
	if err := a.store.PatchCase(id, p); err != nil {
		return err
	}
	a.printf("Case updated.\n")
	return nil
}

func (a *App) SelectCase(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("selectcase <n|id|none>")
	}
	if strings.EqualFold(args[0], "none") {
		if err := a.store.SelectCase(""); err != nil {
			return err
		}
		a.printf("No case selected.\n")
		return nil
	}

	id, err := resolveRef(args[0], a.caseIDs())
	if err != nil {
		return err
	}
	if err := a.store.SelectCase(id); err != nil {
		return err
	}
	c, _ := a.store.ActiveCase()
	a.printf("Active case: %s\n", c.CaseName)
	return nil
}

func (a *App) DeleteCase(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("deletecase <n|id>")
	}
	id, err := resolveRef(args[0], a.caseIDs())
	if err != nil {
		return err
	}
	c, _ := a.store.Snapshot().FindCase(id)

	answer, err := getSimpleText(a.reader, "Delete case \""+c.CaseName+"\"? Type yes to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.store.DeleteCase(id); err != nil {
		return err
	}
	if active, ok := a.store.ActiveCase(); ok {
		a.printf("Case deleted. Active case: %s\n", active.CaseName)
	} else {
		a.printf("Case deleted. No case selected.\n")
	}
	return nil
}

func (a *App) caseRefOrActive(args []string) (string, error) {
	if len(args) > 0 {
		return resolveRef(args[0], a.caseIDs())
	}
	c, ok := a.store.ActiveCase()
	if !ok {
		return "", usage("editcase <n|id> (no active case)")
	}
	return c.ID, nil
}

func criminalLabel(v *bool) string {
	switch {
	case v == nil:
		return "unknown"
	case *v:
		return "yes"
	default:
		return "no"
	}
}

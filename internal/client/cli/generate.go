package cli

import (
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/docgen"
)

func (a *App) Templates(ctx context.Context) error {
	for _, e := range a.gen.Templates() {
		a.printf("%-17s %s\n", e.Name, e.Title)
		if e.Description != "" {
			a.printf("%-17s %s\n", "", e.Description)
		}
	}
	return nil
}

// Generate renders a template to the terminal, or to a .txt file when a
// path is given.
func (a *App) Generate(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("generate <template> [file.txt]  (see 'templates')")
	}

	in := docgen.Input{
		Snapshot: a.store.Snapshot(),
		Parent:   a.prefs.ParentInfo(ctx),
		State:    a.prefs.SelectedState(ctx),
		Date:     a.now(),
	}
	text, err := a.gen.Render(args[0], in)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return docgen.Export(a.out, text)
	}
	path, err := docgen.WriteFile(args[1], text)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "document generated", "template", args[0], "path", path)
	a.printf("Wrote %s\n", path)
	return nil
}

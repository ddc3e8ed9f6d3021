package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

func (a *App) Violations(ctx context.Context) error {
	v := a.store.Snapshot().Violations
	var cat models.Category
	for _, key := range v.Keys() {
		if c := models.CategoryOf(key); c != cat {
			cat = c
			a.printf("%s\n", cat)
		}
		mark := " "
		if v.Get(key) {
			mark = "x"
		}
		a.printf("  [%s] %-22s %s\n", mark, key, a.gen.Label(key))
	}
	a.printf("%d of %d marked.\n", v.Count(), len(v.Keys()))
	return nil
}

func (a *App) Violate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("violate <key> on|off")
	}

	var on bool
	switch strings.ToLower(args[1]) {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
	default:
		return usage("violate <key> on|off")
	}

	key := models.ViolationKey(args[0])
	if !models.IsViolationKey(key) {
		// Keys are camelCase; accept any capitalisation.
		for _, k := range models.ViolationKeys() {
			if strings.EqualFold(string(k), args[0]) {
				key = k
				break
			}
		}
	}
	if err := a.store.SetViolation(key, on); err != nil {
		return err
	}

	state := "cleared"
	if on {
		state = "marked"
	}
	a.printf("%s %s.\n", a.gen.Label(key), state)
	return nil
}

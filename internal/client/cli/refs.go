package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errAmbiguous = errors.New("ambiguous reference")

// resolveRef maps a user reference onto one of ids: a 1-based list number,
// an exact id, or a unique id prefix. List numbers win over prefixes.
func resolveRef(ref string, ids []string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1], nil
	}

	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", errAmbiguous, ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry matches %q", ref)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

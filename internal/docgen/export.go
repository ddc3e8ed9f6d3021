package docgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/filex"
)

// Export writes text as UTF-8, ending with a newline.
func Export(w io.Writer, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteFile exports text to path, adding a .txt extension when path has
// none and creating missing parent directories. It returns the path written.
func WriteFile(path, text string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Export(f, text); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

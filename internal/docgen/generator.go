package docgen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

var ErrUnknownTemplate = errors.New("unknown template")

//go:embed catalog.yaml violations.yaml templates/*.tmpl
var assets embed.FS

const (
	catalogFile    = "catalog.yaml"
	violationsFile = "violations.yaml"
	templatesDir   = "templates"
)

// Entry describes one template of the catalog.
type Entry struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	File        string   `yaml:"file"`
	Description string   `yaml:"description"`
	Slots       []string `yaml:"slots"`
}

type catalog struct {
	Templates []Entry `yaml:"templates"`
}

type writeup struct {
	Label    string `yaml:"label"`
	Analysis string `yaml:"analysis"`
}

type writeups struct {
	Fallback   string             `yaml:"fallback"`
	Violations map[string]writeup `yaml:"violations"`
}

type Generator struct {
	entries  []Entry
	tmpl     map[string]*template.Template
	writeups map[models.ViolationKey]writeup
	fallback string
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// NewGenerator loads catalog.yaml, violations.yaml and templates/ from fsys.
func NewGenerator(fsys fs.FS) (*Generator, error) {
	var cat catalog
	if err := readYAML(fsys, catalogFile, &cat); err != nil {
		return nil, err
	}
	var wu writeups
	if err := readYAML(fsys, violationsFile, &wu); err != nil {
		return nil, err
	}

	g := &Generator{
		tmpl:     make(map[string]*template.Template, len(cat.Templates)),
		writeups: make(map[models.ViolationKey]writeup, len(wu.Violations)),
		fallback: strings.TrimSpace(wu.Fallback),
	}
	if g.fallback == "" {
		return nil, fmt.Errorf("%s: fallback paragraph is required", violationsFile)
	}

	for k, w := range wu.Violations {
		key := models.ViolationKey(k)
		if !models.IsViolationKey(key) {
			return nil, fmt.Errorf("%s: %w: %q", violationsFile, models.ErrUnknownViolation, k)
		}
		w.Label = strings.TrimSpace(w.Label)
		w.Analysis = strings.TrimSpace(w.Analysis)
		g.writeups[key] = w
	}

	for _, e := range cat.Templates {
		if e.Name == "" || e.File == "" {
			return nil, fmt.Errorf("%s: template entry needs name and file", catalogFile)
		}
		if _, dup := g.tmpl[e.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate template %q", catalogFile, e.Name)
		}
		for _, s := range e.Slots {
			if _, ok := slotFields[s]; !ok {
				return nil, fmt.Errorf("%s: template %q: unknown slot %q", catalogFile, e.Name, s)
			}
		}

		src, err := fs.ReadFile(fsys, path.Join(templatesDir, e.File))
		if err != nil {
			return nil, fmt.Errorf("read template %q: %w", e.Name, err)
		}
		t, err := template.New(e.Name).Funcs(funcs).Option("missingkey=error").Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", e.Name, err)
		}
		if err := checkSlots(e, t); err != nil {
			return nil, fmt.Errorf("%s: template %q: %w", catalogFile, e.Name, err)
		}
		g.tmpl[e.Name] = t
		g.entries = append(g.entries, e)
	}
	return g, nil
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	g, err := NewGenerator(assets)
	if err != nil {
		panic(fmt.Sprintf("docgen: embedded templates: %v", err))
	}
	return g
})

// Default returns the generator built from the embedded template set.
func Default() *Generator {
	return defaultGenerator()
}

// Templates lists the catalog in declaration order.
func (g *Generator) Templates() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Lookup returns the catalog entry for name.
func (g *Generator) Lookup(name string) (Entry, bool) {
	for _, e := range g.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Render produces the text of template name for in.
func (g *Generator) Render(name string, in Input) (string, error) {
	t, ok := g.tmpl[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, g.buildView(in)); err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	return buf.String(), nil
}

// Label is the display label of a violation key.
func (g *Generator) Label(key models.ViolationKey) string {
	return g.writeup(key).Label
}

func (g *Generator) writeup(key models.ViolationKey) writeup {
	w := g.writeups[key]
	if w.Label == "" {
		w.Label = humanize(string(key))
	}
	if w.Analysis == "" {
		w.Analysis = g.fallback
	}
	return w
}

// humanize turns "noTimelyHearing" into "No Timely Hearing".
func humanize(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func readYAML(fsys fs.FS, name string, dst any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

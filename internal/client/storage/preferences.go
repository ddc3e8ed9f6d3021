package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

// ErrUnknownPreference is returned by Set for names outside the preference set.
var ErrUnknownPreference = errors.New("unknown preference")

const (
	DefaultTheme    = "light"
	DefaultFontSize = 16
)

type prefKind int

const (
	kindString prefKind = iota
	kindBool
	kindInt
)

// prefNames maps user-facing names to storage keys.
var prefNames = map[string]struct {
	key  string
	kind prefKind
}{
	"state":         {KeySelectedState, kindString},
	"theme":         {KeyTheme, kindString},
	"onboarding":    {KeyOnboardingSeen, kindBool},
	"tour":          {KeyTourSeen, kindBool},
	"font-size":     {KeyFontSize, kindInt},
	"high-contrast": {KeyHighContrast, kindBool},
}

// Preferences are independent scalar settings, one key each. Getters fall
// back to defaults when a key is missing or unreadable.
type Preferences struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewPreferences(repo metadata.Repository, logger logging.Logger) *Preferences {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Preferences{repo: repo, logger: logger}
}

func (p *Preferences) SelectedState(ctx context.Context) string {
	return p.getString(ctx, KeySelectedState, "")
}

func (p *Preferences) SetSelectedState(ctx context.Context, v string) error {
	return p.repo.Set(ctx, KeySelectedState, []byte(v))
}

func (p *Preferences) Theme(ctx context.Context) string {
	return p.getString(ctx, KeyTheme, DefaultTheme)
}

func (p *Preferences) SetTheme(ctx context.Context, v string) error {
	return p.repo.Set(ctx, KeyTheme, []byte(v))
}

func (p *Preferences) OnboardingSeen(ctx context.Context) bool {
	return p.getBool(ctx, KeyOnboardingSeen)
}

func (p *Preferences) SetOnboardingSeen(ctx context.Context, v bool) error {
	return p.repo.Set(ctx, KeyOnboardingSeen, []byte(strconv.FormatBool(v)))
}

func (p *Preferences) TourSeen(ctx context.Context) bool {
	return p.getBool(ctx, KeyTourSeen)
}

func (p *Preferences) SetTourSeen(ctx context.Context, v bool) error {
	return p.repo.Set(ctx, KeyTourSeen, []byte(strconv.FormatBool(v)))
}

func (p *Preferences) FontSize(ctx context.Context) int {
	data, ok := p.get(ctx, KeyFontSize)
	if !ok {
		return DefaultFontSize
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return DefaultFontSize
	}
	return n
}

func (p *Preferences) SetFontSize(ctx context.Context, v int) error {
	return p.repo.Set(ctx, KeyFontSize, []byte(strconv.Itoa(v)))
}

func (p *Preferences) HighContrast(ctx context.Context) bool {
	return p.getBool(ctx, KeyHighContrast)
}

func (p *Preferences) SetHighContrast(ctx context.Context, v bool) error {
	return p.repo.Set(ctx, KeyHighContrast, []byte(strconv.FormatBool(v)))
}

// ParentInfo returns the stored parent identity block (zero value if unset).
func (p *Preferences) ParentInfo(ctx context.Context) models.ParentInfo {
	var info models.ParentInfo
	data, ok := p.get(ctx, KeyParentInfo)
	if !ok {
		return info
	}
	if err := json.Unmarshal(data, &info); err != nil {
		p.logger.Warn(ctx, "stored parent info is corrupt", "error", err)
		return models.ParentInfo{}
	}
	return info
}

func (p *Preferences) SetParentInfo(ctx context.Context, info models.ParentInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return p.repo.Set(ctx, KeyParentInfo, data)
}

// Set stores a preference by its user-facing name, validating the value.
func (p *Preferences) Set(ctx context.Context, name, value string) error {
	def, ok := prefNames[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
	switch def.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true/false: %w", name, err)
		}
		value = strconv.FormatBool(b)
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s expects a positive number", name)
		}
		value = strconv.Itoa(n)
	}
	return p.repo.Set(ctx, def.key, []byte(value))
}

// All returns every preference by user-facing name with effective values.
func (p *Preferences) All(ctx context.Context) map[string]string {
	return map[string]string{
		"state":         p.SelectedState(ctx),
		"theme":         p.Theme(ctx),
		"onboarding":    strconv.FormatBool(p.OnboardingSeen(ctx)),
		"tour":          strconv.FormatBool(p.TourSeen(ctx)),
		"font-size":     strconv.Itoa(p.FontSize(ctx)),
		"high-contrast": strconv.FormatBool(p.HighContrast(ctx)),
	}
}

// Names lists the user-facing preference names, sorted.
func Names() []string {
	names := make([]string, 0, len(prefNames))
	for n := range prefNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p *Preferences) get(ctx context.Context, key string) ([]byte, bool) {
	data, err := p.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			p.logger.Error(ctx, "read preference", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (p *Preferences) getString(ctx context.Context, key, def string) string {
	data, ok := p.get(ctx, key)
	if !ok || len(data) == 0 {
		return def
	}
	return string(data)
}

func (p *Preferences) getBool(ctx context.Context, key string) bool {
	data, ok := p.get(ctx, key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(string(data))
	return err == nil && b
}

// Package storage is the client's local persistence layer: the case snapshot,
// stored credentials and user preferences, each under its own key of the
// local metadata table.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

// Storage keys. The snapshot key is shared with other clients of the same
// data, so it must not change.
const (
	KeySnapshot       = "cps_defense_data"
	KeyAuth           = "cps_auth"
	KeySelectedState  = "selected_state"
	KeyTheme          = "theme"
	KeyOnboardingSeen = "onboarding_seen"
	KeyTourSeen       = "tour_seen"
	KeyFontSize       = "font_size"
	KeyHighContrast   = "high_contrast"
	KeyParentInfo     = "parent_info"
)

// Local persists the snapshot and credentials. Snapshot reads and writes are
// best effort: failures are logged and never reach the caller.
type Local struct {
	repo   metadata.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewLocal(repo metadata.Repository, logger logging.Logger) *Local {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Local{repo: repo, logger: logger, now: time.Now}
}

// Save stamps LastSaved and overwrites the stored snapshot. On failure the
// previously stored value is left as it was.
func (l *Local) Save(ctx context.Context, s models.Snapshot) {
	s = s.Clone()
	s.LastSaved = l.now().UTC()

	data, err := s.Encode()
	if err != nil {
		l.logger.Error(ctx, "encode snapshot", "error", err)
		return
	}
	if err := l.repo.Set(ctx, KeySnapshot, data); err != nil {
		l.logger.Error(ctx, "save snapshot", "error", err)
		return
	}
	l.logger.Debug(ctx, "snapshot saved", "bytes", len(data))
}

// Load returns the stored snapshot, or DefaultSnapshot when nothing usable is
// stored.
func (l *Local) Load(ctx context.Context) models.Snapshot {
	data, err := l.repo.Get(ctx, KeySnapshot)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			l.logger.Error(ctx, "load snapshot", "error", err)
		}
		return models.DefaultSnapshot()
	}

	s, err := models.DecodeSnapshot(data)
	if err != nil {
		l.logger.Warn(ctx, "stored snapshot is corrupt, starting empty", "error", err)
		return models.DefaultSnapshot()
	}
	return s
}

// SaveAuth stores credentials for the next start.
func (l *Local) SaveAuth(ctx context.Context, a models.AuthState) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return l.repo.Set(ctx, KeyAuth, data)
}

// LoadAuth returns stored credentials; ok is false when none are usable.
func (l *Local) LoadAuth(ctx context.Context) (a models.AuthState, ok bool) {
	data, err := l.repo.Get(ctx, KeyAuth)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			l.logger.Error(ctx, "load auth", "error", err)
		}
		return models.AuthState{}, false
	}
	if err := json.Unmarshal(data, &a); err != nil {
		l.logger.Warn(ctx, "stored auth is corrupt", "error", err)
		return models.AuthState{}, false
	}
	return a, a.Enabled()
}

// ClearAuth forgets stored credentials. Case data is untouched.
func (l *Local) ClearAuth(ctx context.Context) error {
	return l.repo.Delete(ctx, KeyAuth)
}

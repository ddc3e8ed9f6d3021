// Package store holds the in-memory case snapshot and notifies observers on
// every change.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ErrUnknownViolation is re-exported so callers need not import models.
var ErrUnknownViolation = models.ErrUnknownViolation

// Store owns the current snapshot. All methods are safe for concurrent use.
// Observers run synchronously on the mutating goroutine, after the lock is
// released.
type Store struct {
	mu        sync.RWMutex
	snap      models.Snapshot
	observers []func()
	newID     func() string
	now       func() time.Time
}

func New() *Store {
	return &Store{
		snap:  models.DefaultSnapshot(),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Observe registers fn to be called after every mutation.
func (s *Store) Observe(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Replace swaps in a whole snapshot, e.g. one loaded from disk or the server.
func (s *Store) Replace(snap models.Snapshot) {
	s.mutate(func(cur *models.Snapshot) error {
		*cur = snap.Clone()
		fixActive(cur)
		return nil
	})
}

func (s *Store) ReplaceDocuments(docs []models.Document) {
	s.mutate(func(cur *models.Snapshot) error {
		cur.Documents = append([]models.Document{}, docs...)
		return nil
	})
}

func (s *Store) ReplaceTimeline(events []models.TimelineEvent) {
	s.mutate(func(cur *models.Snapshot) error {
		cur.TimelineEvents = append([]models.TimelineEvent{}, events...)
		return nil
	})
}

func (s *Store) ReplaceCases(cases []models.Case) {
	s.mutate(func(cur *models.Snapshot) error {
		c := models.Snapshot{Cases: cases}.Clone()
		cur.Cases = c.Cases
		fixActive(cur)
		return nil
	})
}

func (s *Store) ReplaceViolations(v models.Violations) {
	s.mutate(func(cur *models.Snapshot) error {
		cur.Violations = v
		return nil
	})
}

func (s *Store) ReplaceCaseDetails(d models.CaseDetails) {
	s.SetCaseDetails(d)
}

// AddDocument appends doc with a fresh id, tagged with the active case.
func (s *Store) AddDocument(doc models.Document) (models.Document, error) {
	if strings.TrimSpace(doc.Title) == "" {
		return models.Document{}, fmt.Errorf("%w: document title is required", ErrInvalidInput)
	}
	err := s.mutate(func(cur *models.Snapshot) error {
		doc.ID = s.uniqueID(cur)
		if doc.CaseID == "" {
			doc.CaseID = cur.ActiveCaseID
		}
		if doc.Date == "" {
			doc.Date = s.now().Format(time.DateOnly)
		}
		cur.Documents = append(cur.Documents, doc)
		return nil
	})
	return doc, err
}

func (s *Store) RemoveDocument(id string) error {
	return s.mutate(func(cur *models.Snapshot) error {
		for i, d := range cur.Documents {
			if d.ID == id {
				cur.Documents = append(cur.Documents[:i:i], cur.Documents[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("document %q: %w", id, ErrNotFound)
	})
}

// DocumentsForCase returns the documents tagged with caseID. Untagged
// documents belong to every case.
func (s *Store) DocumentsForCase(caseID string) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Document{}
	for _, d := range s.snap.Documents {
		if d.CaseID == "" || d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) AddTimelineEvent(ev models.TimelineEvent) (models.TimelineEvent, error) {
	if strings.TrimSpace(ev.Title) == "" {
		return models.TimelineEvent{}, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	err := s.mutate(func(cur *models.Snapshot) error {
		ev.ID = s.uniqueID(cur)
		if ev.CaseID == "" {
			ev.CaseID = cur.ActiveCaseID
		}
		cur.TimelineEvents = append(cur.TimelineEvents, ev)
		return nil
	})
	return ev, err
}

// EditTimelineEvent replaces the event with id, keeping id and case tag.
func (s *Store) EditTimelineEvent(id string, ev models.TimelineEvent) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	return s.mutate(func(cur *models.Snapshot) error {
		for i, e := range cur.TimelineEvents {
			if e.ID == id {
				ev.ID = id
				if ev.CaseID == "" {
					ev.CaseID = e.CaseID
				}
				cur.TimelineEvents[i] = ev
				return nil
			}
		}
		return fmt.Errorf("timeline event %q: %w", id, ErrNotFound)
	})
}

func (s *Store) RemoveTimelineEvent(id string) error {
	return s.mutate(func(cur *models.Snapshot) error {
		for i, e := range cur.TimelineEvents {
			if e.ID == id {
				cur.TimelineEvents = append(cur.TimelineEvents[:i:i], cur.TimelineEvents[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("timeline event %q: %w", id, ErrNotFound)
	})
}

func (s *Store) SetViolation(key models.ViolationKey, value bool) error {
	return s.mutate(func(cur *models.Snapshot) error {
		return cur.Violations.Set(key, value)
	})
}

func (s *Store) SetCaseDetails(d models.CaseDetails) {
	s.mutate(func(cur *models.Snapshot) error {
		cur.CaseDetails = d
		return nil
	})
}

// CreateCase adds a case and makes it active.
func (s *Store) CreateCase(c models.Case) (models.Case, error) {
	if strings.TrimSpace(c.CaseName) == "" {
		return models.Case{}, fmt.Errorf("%w: case name is required", ErrInvalidInput)
	}
	err := s.mutate(func(cur *models.Snapshot) error {
		now := s.now()
		c.ID = s.uniqueID(cur)
		c.CreatedAt = now
		c.UpdatedAt = now
		cur.Cases = append(cur.Cases, c)
		cur.ActiveCaseID = c.ID
		return nil
	})
	return c, err
}

// EditCase replaces every editable field of case id.
func (s *Store) EditCase(id string, c models.Case) error {
	if strings.TrimSpace(c.CaseName) == "" {
		return fmt.Errorf("%w: case name is required", ErrInvalidInput)
	}
	return s.mutate(func(cur *models.Snapshot) error {
		i := caseIndex(cur, id)
		if i < 0 {
			return fmt.Errorf("case %q: %w", id, ErrNotFound)
		}
		c.ID = id
		c.CreatedAt = cur.Cases[i].CreatedAt
		c.UpdatedAt = s.now()
		cur.Cases[i] = c
		return nil
	})
}

// PatchCase applies the non-nil fields of p to case id.
func (s *Store) PatchCase(id string, p models.CasePatch) error {
	if p.CaseName != nil && strings.TrimSpace(*p.CaseName) == "" {
		return fmt.Errorf("%w: case name is required", ErrInvalidInput)
	}
	return s.mutate(func(cur *models.Snapshot) error {
		i := caseIndex(cur, id)
		if i < 0 {
			return fmt.Errorf("case %q: %w", id, ErrNotFound)
		}
		c := &cur.Cases[i]
		if p.CaseName != nil {
			c.CaseName = *p.CaseName
		}
		if p.DocketNumber != nil {
			c.DocketNumber = *p.DocketNumber
		}
		if p.County != nil {
			c.County = *p.County
		}
		if p.CriminalCase != nil {
			v := *p.CriminalCase
			c.CriminalCase = &v
		}
		if p.Notes != nil {
			c.Notes = *p.Notes
		}
		c.UpdatedAt = s.now()
		return nil
	})
}

// DeleteCase removes case id. When it was active, the first remaining case
// becomes active, or none.
func (s *Store) DeleteCase(id string) error {
	return s.mutate(func(cur *models.Snapshot) error {
		i := caseIndex(cur, id)
		if i < 0 {
			return fmt.Errorf("case %q: %w", id, ErrNotFound)
		}
		cur.Cases = append(cur.Cases[:i:i], cur.Cases[i+1:]...)
		fixActive(cur)
		return nil
	})
}

// SelectCase makes id active. An empty id clears the selection.
func (s *Store) SelectCase(id string) error {
	return s.mutate(func(cur *models.Snapshot) error {
		if id != "" && caseIndex(cur, id) < 0 {
			return fmt.Errorf("case %q: %w", id, ErrNotFound)
		}
		cur.ActiveCaseID = id
		return nil
	})
}

// ActiveCase returns the selected case, if any.
func (s *Store) ActiveCase() (models.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.ActiveCaseID == "" {
		return models.Case{}, false
	}
	c, ok := s.snap.FindCase(s.snap.ActiveCaseID)
	if !ok {
		return models.Case{}, false
	}
	return models.Snapshot{Cases: []models.Case{c}}.Clone().Cases[0], true
}

// mutate applies fn under the write lock. Observers are notified only when
// fn succeeds; a failed fn leaves the state untouched.
func (s *Store) mutate(fn func(cur *models.Snapshot) error) error {
	s.mu.Lock()
	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.snap = next
	obs := append([]func(){}, s.observers...)
	s.mu.Unlock()

	for _, o := range obs {
		o()
	}
	return nil
}

func (s *Store) uniqueID(cur *models.Snapshot) string {
	for {
		id := s.newID()
		if !idTaken(cur, id) {
			return id
		}
	}
}

func idTaken(cur *models.Snapshot, id string) bool {
	for _, d := range cur.Documents {
		if d.ID == id {
			return true
		}
	}
	for _, e := range cur.TimelineEvents {
		if e.ID == id {
			return true
		}
	}
	return caseIndex(cur, id) >= 0
}

func caseIndex(cur *models.Snapshot, id string) int {
	for i, c := range cur.Cases {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// fixActive moves a dangling ActiveCaseID to the first case, or to none.
// An empty selection stays empty.
func fixActive(cur *models.Snapshot) {
	if cur.ActiveCaseID == "" || caseIndex(cur, cur.ActiveCaseID) >= 0 {
		return
	}
	cur.ActiveCaseID = ""
	if len(cur.Cases) > 0 {
		cur.ActiveCaseID = cur.Cases[0].ID
	}
}

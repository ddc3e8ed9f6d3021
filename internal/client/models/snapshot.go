// Package models defines the client's case data: cases, documents, timeline
// events, case details, the violation schema and the persisted snapshot.
package models

import (
	"encoding/json"
	"time"
)

// Case is a single CPS matter. CriminalCase is nil when unknown.
type Case struct {
	ID           string    `json:"id"`
	CaseName     string    `json:"caseName"`
	DocketNumber string    `json:"docketNumber"`
	County       string    `json:"county"`
	CriminalCase *bool     `json:"criminalCase,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// CasePatch carries a partial case update; nil fields are left untouched.
type CasePatch struct {
	CaseName     *string
	DocketNumber *string
	County       *string
	CriminalCase *bool
	Notes        *string
}

// Document is an uploaded or transcribed record. CaseID optionally tags the
// case that was active when the document was added.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	CaseID  string `json:"caseId,omitempty"`
}

// TimelineEvent is one dated entry of the case chronology.
type TimelineEvent struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CaseID      string `json:"caseId,omitempty"`
}

// CaseDetails is the free-standing metadata record shown on the dashboard.
type CaseDetails struct {
	CaseNumber     string `json:"caseNumber"`
	County         string `json:"county"`
	DateOpened     string `json:"dateOpened"`
	CaseworkerName string `json:"caseworkerName"`
	AttorneyName   string `json:"attorneyName"`
}

// Snapshot is the full persisted state of the case store.
type Snapshot struct {
	Documents      []Document      `json:"documents"`
	TimelineEvents []TimelineEvent `json:"timelineEvents"`
	CaseDetails    CaseDetails     `json:"caseDetails"`
	Violations     Violations      `json:"violations"`
	Cases          []Case          `json:"cases"`
	ActiveCaseID   string          `json:"activeCaseId"`
	LastSaved      time.Time       `json:"lastSaved,omitzero"`
}

// DefaultSnapshot is the state of a fresh install.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Documents:      []Document{},
		TimelineEvents: []TimelineEvent{},
		Cases:          []Case{},
	}
}

// DecodeSnapshot parses a stored snapshot. Missing fields keep their
// DefaultSnapshot values so older and newer payloads both load.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	s := DefaultSnapshot()
	if err := json.Unmarshal(b, &s); err != nil {
		return DefaultSnapshot(), err
	}
	s.normalize()
	return s, nil
}

// Encode serialises the snapshot.
func (s Snapshot) Encode() ([]byte, error) {
	c := s.Clone()
	c.normalize()
	return json.Marshal(c)
}

// IsEmpty reports whether the snapshot carries no user data at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Documents) == 0 &&
		len(s.TimelineEvents) == 0 &&
		len(s.Cases) == 0 &&
		s.Violations.Count() == 0 &&
		s.CaseDetails == (CaseDetails{})
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Documents = append([]Document(nil), s.Documents...)
	c.TimelineEvents = append([]TimelineEvent(nil), s.TimelineEvents...)
	c.Cases = make([]Case, len(s.Cases))
	for i, cs := range s.Cases {
		c.Cases[i] = cs.clone()
	}
	c.normalize()
	return c
}

// FindCase returns the case with id.
func (s Snapshot) FindCase(id string) (Case, bool) {
	for _, c := range s.Cases {
		if c.ID == id {
			return c, true
		}
	}
	return Case{}, false
}

func (s *Snapshot) normalize() {
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.TimelineEvents == nil {
		s.TimelineEvents = []TimelineEvent{}
	}
	if s.Cases == nil {
		s.Cases = []Case{}
	}
}

func (c Case) clone() Case {
	if c.CriminalCase != nil {
		v := *c.CriminalCase
		c.CriminalCase = &v
	}
	return c
}

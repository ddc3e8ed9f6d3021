package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownViolation is returned when a key outside the violation schema is used.
var ErrUnknownViolation = errors.New("unknown violation key")

// ViolationKey names one flag of the closed violation schema.
type ViolationKey string

// Category groups violation keys for display and reporting.
type Category string

const (
	CategoryConstitutional Category = "Constitutional"
	CategoryProcedural     Category = "Procedural"
	CategoryEvidence       Category = "Evidence"
	CategoryRights         Category = "Rights"
	CategoryServices       Category = "Services"
)

const (
	FourthAmendment     ViolationKey = "fourthAmendment"
	FourteenthAmendment ViolationKey = "fourteenthAmendment"
	DueProcess          ViolationKey = "dueProcess"
	EqualProtection     ViolationKey = "equalProtection"
	FirstAmendment      ViolationKey = "firstAmendment"

	NoWarrant       ViolationKey = "noWarrant"
	NoNotice        ViolationKey = "noNotice"
	ImproperRemoval ViolationKey = "improperRemoval"
	NoTimelyHearing ViolationKey = "noTimelyHearing"
	MissedDeadlines ViolationKey = "missedDeadlines"

	FalsifiedReports      ViolationKey = "falsifiedReports"
	HearsayReliance       ViolationKey = "hearsayReliance"
	WithheldEvidence      ViolationKey = "withheldEvidence"
	CoercedStatements     ViolationKey = "coercedStatements"
	ImproperInterviews    ViolationKey = "improperInterviews"
	NoMirandaWarning      ViolationKey = "noMirandaWarning"
	DeniedCounsel         ViolationKey = "deniedCounsel"
	DeniedVisitation      ViolationKey = "deniedVisitation"
	PrivacyViolation      ViolationKey = "privacyViolation"
	ReligiousInterference ViolationKey = "religiousInterference"

	NoReasonableEfforts ViolationKey = "noReasonableEfforts"
	InadequateServices  ViolationKey = "inadequateServices"
	NoCasePlan          ViolationKey = "noCasePlan"
	NoReunificationPlan ViolationKey = "noReunificationPlan"
)

type schemaEntry struct {
	key      ViolationKey
	category Category
}

// violationSchema fixes both the key set and its iteration order.
var violationSchema = [...]schemaEntry{
	{FourthAmendment, CategoryConstitutional},
	{FourteenthAmendment, CategoryConstitutional},
	{DueProcess, CategoryConstitutional},
	{EqualProtection, CategoryConstitutional},
	{FirstAmendment, CategoryConstitutional},

	{NoWarrant, CategoryProcedural},
	{NoNotice, CategoryProcedural},
	{ImproperRemoval, CategoryProcedural},
	{NoTimelyHearing, CategoryProcedural},
	{MissedDeadlines, CategoryProcedural},

	{FalsifiedReports, CategoryEvidence},
	{HearsayReliance, CategoryEvidence},
	{WithheldEvidence, CategoryEvidence},
	{CoercedStatements, CategoryEvidence},
	{ImproperInterviews, CategoryEvidence},

	{NoMirandaWarning, CategoryRights},
	{DeniedCounsel, CategoryRights},
	{DeniedVisitation, CategoryRights},
	{PrivacyViolation, CategoryRights},
	{ReligiousInterference, CategoryRights},

	{NoReasonableEfforts, CategoryServices},
	{InadequateServices, CategoryServices},
	{NoCasePlan, CategoryServices},
	{NoReunificationPlan, CategoryServices},
}

const violationCount = len(violationSchema)

var violationIndex = func() map[ViolationKey]int {
	m := make(map[ViolationKey]int, violationCount)
	for i, e := range violationSchema {
		m[e.key] = i
	}
	return m
}()

// ViolationKeys returns every schema key in schema order.
func ViolationKeys() []ViolationKey {
	keys := make([]ViolationKey, violationCount)
	for i, e := range violationSchema {
		keys[i] = e.key
	}
	return keys
}

// IsViolationKey reports whether key belongs to the schema.
func IsViolationKey(key ViolationKey) bool {
	_, ok := violationIndex[key]
	return ok
}

// CategoryOf returns the category of key, or "" for unknown keys.
func CategoryOf(key ViolationKey) Category {
	i, ok := violationIndex[key]
	if !ok {
		return ""
	}
	return violationSchema[i].category
}

// Violations holds one boolean per schema key. It is a value type: copies are
// independent and the key set can never grow or shrink.
type Violations struct {
	flags [violationCount]bool
}

// Get returns the flag for key; unknown keys read as false.
func (v Violations) Get(key ViolationKey) bool {
	i, ok := violationIndex[key]
	return ok && v.flags[i]
}

// Set updates the flag for key.
func (v *Violations) Set(key ViolationKey, value bool) error {
	i, ok := violationIndex[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownViolation, key)
	}
	v.flags[i] = value
	return nil
}

// Keys returns the schema keys; identical for every Violations value.
func (v Violations) Keys() []ViolationKey {
	return ViolationKeys()
}

// Active returns the keys set to true, in schema order.
func (v Violations) Active() []ViolationKey {
	var out []ViolationKey
	for i, e := range violationSchema {
		if v.flags[i] {
			out = append(out, e.key)
		}
	}
	return out
}

// Count returns the number of keys set to true.
func (v Violations) Count() int {
	n := 0
	for _, f := range v.flags {
		if f {
			n++
		}
	}
	return n
}

// MarshalJSON writes every key in schema order.
func (v Violations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range violationSchema {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(string(e.key))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if v.flags[i] {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any subset of the schema. Keys that are missing stay
// false and keys that are not in the schema are dropped.
func (v *Violations) UnmarshalJSON(b []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var next Violations
	for k, val := range raw {
		if i, ok := violationIndex[ViolationKey(k)]; ok {
			next.flags[i] = val
		}
	}
	*v = next
	return nil
}

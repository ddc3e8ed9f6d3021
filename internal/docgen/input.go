package docgen

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

const (
	PlaceholderCaseNumber     = "[CASE NUMBER]"
	PlaceholderCounty         = "[COUNTY]"
	PlaceholderDateOpened     = "[DATE OPENED]"
	PlaceholderCaseworkerName = "[CASEWORKER NAME]"
	PlaceholderAttorneyName   = "[ATTORNEY NAME]"
	PlaceholderYourName       = "[YOUR NAME]"
	PlaceholderYourAddress    = "[YOUR ADDRESS]"
	PlaceholderCityStateZip   = "[CITY, STATE ZIP]"
	PlaceholderPhone          = "[PHONE]"
	PlaceholderEmail          = "[EMAIL]"
	PlaceholderState          = "[STATE]"
	PlaceholderDate           = "[DATE]"
	PlaceholderCaseName       = "[CASE NAME]"
	PlaceholderDocketNumber   = "[DOCKET NUMBER]"
)

// DateLayout formats Input.Date in generated text.
const DateLayout = "January 2, 2006"

// slotFields maps every slot a catalog entry may declare to the view field
// that carries it.
var slotFields = map[string]string{
	"case_number":     "CaseNumber",
	"county":          "County",
	"date_opened":     "DateOpened",
	"caseworker_name": "CaseworkerName",
	"attorney_name":   "AttorneyName",
	"your_name":       "ParentName",
	"your_address":    "ParentAddress",
	"city_state_zip":  "CityStateZip",
	"phone":           "Phone",
	"email":           "Email",
	"state":           "State",
	"date":            "Date",
	"case_name":       "CaseName",
	"docket_number":   "DocketNumber",
	"violations":      "Violations",
	"documents":       "Documents",
	"timeline":        "Timeline",
}

// Input is everything a template may draw on.
type Input struct {
	Snapshot models.Snapshot
	Parent   models.ParentInfo
	// State is the selected jurisdiction; Parent.State is used when empty.
	State string
	// Date is printed as the document date. Zero renders [DATE].
	Date time.Time
}

type violationView struct {
	N        int
	Key      models.ViolationKey
	Label    string
	Category models.Category
	Analysis string
}

// view is the template data. Every string field is either a value or its
// placeholder, never empty.
type view struct {
	CaseNumber     string
	County         string
	DateOpened     string
	CaseworkerName string
	AttorneyName   string
	ParentName     string
	ParentAddress  string
	CityStateZip   string
	Phone          string
	Email          string
	State          string
	Date           string
	CaseName       string
	DocketNumber   string

	Violations []violationView
	Documents  []models.Document
	Timeline   []models.TimelineEvent
}

func (g *Generator) buildView(in Input) view {
	snap := in.Snapshot
	d := snap.CaseDetails
	active, _ := snap.FindCase(snap.ActiveCaseID)

	v := view{
		CaseNumber:     orPlaceholder(d.CaseNumber, PlaceholderCaseNumber),
		County:         orPlaceholder(firstNonEmpty(d.County, active.County), PlaceholderCounty),
		DateOpened:     orPlaceholder(d.DateOpened, PlaceholderDateOpened),
		CaseworkerName: orPlaceholder(d.CaseworkerName, PlaceholderCaseworkerName),
		AttorneyName:   orPlaceholder(d.AttorneyName, PlaceholderAttorneyName),
		ParentName:     orPlaceholder(in.Parent.Name, PlaceholderYourName),
		ParentAddress:  orPlaceholder(in.Parent.Address, PlaceholderYourAddress),
		CityStateZip:   orPlaceholder(cityStateZip(in.Parent), PlaceholderCityStateZip),
		Phone:          orPlaceholder(in.Parent.Phone, PlaceholderPhone),
		Email:          orPlaceholder(in.Parent.Email, PlaceholderEmail),
		State:          orPlaceholder(firstNonEmpty(in.State, in.Parent.State), PlaceholderState),
		Date:           PlaceholderDate,
		CaseName:       orPlaceholder(active.CaseName, PlaceholderCaseName),
		DocketNumber:   orPlaceholder(active.DocketNumber, PlaceholderDocketNumber),
		Documents:      slices.Clone(snap.Documents),
		Timeline:       slices.Clone(snap.TimelineEvents),
	}
	// Records tagged with another case stay out of this case's documents.
	if snap.ActiveCaseID != "" {
		v.Documents = slices.DeleteFunc(v.Documents, func(doc models.Document) bool {
			return doc.CaseID != "" && doc.CaseID != snap.ActiveCaseID
		})
		v.Timeline = slices.DeleteFunc(v.Timeline, func(ev models.TimelineEvent) bool {
			return ev.CaseID != "" && ev.CaseID != snap.ActiveCaseID
		})
	}
	if !in.Date.IsZero() {
		v.Date = in.Date.Format(DateLayout)
	}

	// Chronological order; ties keep entry order.
	slices.SortStableFunc(v.Timeline, func(a, b models.TimelineEvent) int {
		return cmp.Compare(a.Date, b.Date)
	})

	for i, key := range snap.Violations.Active() {
		w := g.writeup(key)
		v.Violations = append(v.Violations, violationView{
			N:        i + 1,
			Key:      key,
			Label:    w.Label,
			Category: models.CategoryOf(key),
			Analysis: w.Analysis,
		})
	}
	return v
}

func cityStateZip(p models.ParentInfo) string {
	city := strings.TrimSpace(p.City)
	stateZip := strings.TrimSpace(strings.TrimSpace(p.State) + " " + strings.TrimSpace(p.Zip))
	switch {
	case city != "" && stateZip != "":
		return city + ", " + stateZip
	case city != "":
		return city
	default:
		return stateZip
	}
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

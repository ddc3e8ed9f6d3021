package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
	"github.com/dmitrijs2005/casekeeper/internal/client/store"
	"github.com/dmitrijs2005/casekeeper/internal/client/syncer"
	"github.com/dmitrijs2005/casekeeper/internal/docgen"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

type fakeSync struct {
	mode     syncer.Mode
	auth     models.AuthState
	loginErr error
	calls    []string
}

func (f *fakeSync) Start(context.Context) { f.calls = append(f.calls, "start") }

func (f *fakeSync) Signup(_ context.Context, email, password, name string) error {
	f.calls = append(f.calls, "signup "+email+" "+password+" "+name)
	return f.signIn(email)
}

func (f *fakeSync) Login(_ context.Context, email, password string) error {
	f.calls = append(f.calls, "login "+email+" "+password)
	return f.signIn(email)
}

func (f *fakeSync) signIn(email string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.auth = models.AuthState{AccessToken: "tok", UserID: "u1", Email: email}
	f.mode = syncer.ModeCloud
	return nil
}

func (f *fakeSync) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.auth, f.mode = models.AuthState{}, syncer.ModeLocalOnly
	return nil
}

func (f *fakeSync) Mode() syncer.Mode      { return f.mode }
func (f *fakeSync) Auth() models.AuthState { return f.auth }
func (f *fakeSync) Flush(context.Context)  { f.calls = append(f.calls, "flush") }
func (f *fakeSync) Close()                 { f.calls = append(f.calls, "close") }

var testNow = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer, *fakeSync) {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var out bytes.Buffer
	fs := &fakeSync{}
	a := &App{
		config: &config.Config{ServerURL: "http://sync.test"},
		store:  store.New(),
		sync:   fs,
		prefs:  storage.NewPreferences(metadata.NewSQLiteRepository(db), nil),
		gen:    docgen.Default(),
		logger: logging.Nop(),
		reader: readerFromLines(lines...),
		out:    &out,
		now:    func() time.Time { return testNow },
	}
	return a, &out, fs
}

func TestApp_CaseScenario(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t,
		"Case A", "", "Kent", "n", "",
		"Case B", "24-JC-2", "", "", "first note", "",
		"yes",
	)

	require.NoError(t, a.NewCase(ctx))
	require.NoError(t, a.NewCase(ctx))
	require.NoError(t, a.SelectCase(ctx, []string{"2"}))
	require.NoError(t, a.DeleteCase(ctx, []string{"2"}))

	active, ok := a.store.ActiveCase()
	require.True(t, ok)
	assert.Equal(t, "Case A", active.CaseName)
	assert.Equal(t, "Kent", active.County)
	require.NotNil(t, active.CriminalCase)
	assert.False(t, *active.CriminalCase)
	assert.Contains(t, out.String(), "Case deleted. Active case: Case A")

	out.Reset()
	require.NoError(t, a.Cases(ctx))
	assert.Contains(t, out.String(), "* 1. Case A")
}

func TestApp_DeleteCaseNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t, "no")
	_, err := a.store.CreateCase(models.Case{CaseName: "Keep"})
	require.NoError(t, err)

	require.NoError(t, a.DeleteCase(ctx, []string{"1"}))
	assert.Len(t, a.store.Snapshot().Cases, 1)
	assert.Contains(t, out.String(), "Cancelled.")

	require.ErrorIs(t, a.DeleteCase(ctx, nil), errUsage)
}

func TestApp_EditCaseKeepsBlankFields(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, "", "24-JC-9", "", "", "")
	c, err := a.store.CreateCase(models.Case{CaseName: "In re J.D.", County: "Kent"})
	require.NoError(t, err)

	require.NoError(t, a.EditCase(ctx, nil))
	got, _ := a.store.Snapshot().FindCase(c.ID)
	assert.Equal(t, "In re J.D.", got.CaseName)
	assert.Equal(t, "24-JC-9", got.DocketNumber)
	assert.Equal(t, "Kent", got.County)
}

func TestApp_SelectCaseNone(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t)
	_, err := a.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)

	require.NoError(t, a.SelectCase(ctx, []string{"none"}))
	_, ok := a.store.ActiveCase()
	assert.False(t, ok)
	require.Error(t, a.SelectCase(ctx, []string{"7"}))
}

func TestApp_DocumentsAndTimeline(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t,
		"Report A", "pdf", "2024-01-01", "...", "",
		"2024-01-02", "Visit", "CPS home visit",
		"", "Home visit", "",
	)

	require.NoError(t, a.AddDoc(ctx))
	require.NoError(t, a.AddEvent(ctx))
	require.NoError(t, a.EditEvent(ctx, []string{"1"}))

	snap := a.store.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, models.Document{ID: snap.Documents[0].ID, Title: "Report A", Content: "...", Date: "2024-01-01", Type: "pdf"}, snap.Documents[0])
	require.Len(t, snap.TimelineEvents, 1)
	assert.Equal(t, "Home visit", snap.TimelineEvents[0].Title)
	assert.Equal(t, "CPS home visit", snap.TimelineEvents[0].Description)

	out.Reset()
	require.NoError(t, a.Docs(ctx))
	require.NoError(t, a.Timeline(ctx))
	assert.Contains(t, out.String(), "1. Report A  type: pdf  date: 2024-01-01")
	assert.Contains(t, out.String(), "1. 2024-01-02  Home visit")

	require.NoError(t, a.RmDoc(ctx, []string{"1"}))
	require.NoError(t, a.RmEvent(ctx, []string{"1"}))
	assert.True(t, a.store.Snapshot().IsEmpty())
	require.ErrorIs(t, a.RmEvent(ctx, nil), errUsage)
}

func TestApp_DocsFilteredByActiveCase(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t)
	first, _ := a.store.CreateCase(models.Case{CaseName: "First"})
	_, err := a.store.AddDocument(models.Document{Title: "first doc"})
	require.NoError(t, err)
	_, _ = a.store.CreateCase(models.Case{CaseName: "Second"})
	_, err = a.store.AddDocument(models.Document{Title: "second doc"})
	require.NoError(t, err)

	require.NoError(t, a.Docs(ctx))
	assert.Contains(t, out.String(), "second doc")
	assert.NotContains(t, out.String(), "first doc")

	out.Reset()
	require.NoError(t, a.SelectCase(ctx, []string{first.ID}))
	require.NoError(t, a.Docs(ctx))
	assert.Contains(t, out.String(), "first doc")
}

func TestApp_Violations(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t)

	require.NoError(t, a.Violate(ctx, []string{"FourthAmendment", "on"}))
	assert.True(t, a.store.Snapshot().Violations.Get(models.FourthAmendment))
	assert.Contains(t, out.String(), "Fourth Amendment Violation marked.")

	require.ErrorIs(t, a.Violate(ctx, []string{"madeUp", "on"}), models.ErrUnknownViolation)
	require.ErrorIs(t, a.Violate(ctx, []string{"dueProcess", "maybe"}), errUsage)

	out.Reset()
	require.NoError(t, a.Violations(ctx))
	assert.Contains(t, out.String(), "Constitutional")
	assert.Contains(t, out.String(), "[x] fourthAmendment")
	assert.Contains(t, out.String(), "1 of 24 marked.")
}

func TestApp_DetailsParentPref(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t,
		"2024-0042", "Kent", "", "Pat Smith", "",
		"Jane Doe", "1 Main St", "Grand Rapids", "MI", "49503", "", "",
	)

	require.NoError(t, a.Details(ctx, []string{"edit"}))
	assert.Equal(t, models.CaseDetails{CaseNumber: "2024-0042", County: "Kent", CaseworkerName: "Pat Smith"}, a.store.Snapshot().CaseDetails)

	require.NoError(t, a.Parent(ctx, []string{"edit"}))
	assert.Equal(t, "Jane Doe", a.prefs.ParentInfo(ctx).Name)

	require.NoError(t, a.Pref(ctx, []string{"state", "Michigan"}))
	require.Error(t, a.Pref(ctx, []string{"font-size", "huge"}))
	require.ErrorIs(t, a.Pref(ctx, []string{"theme"}), errUsage)

	out.Reset()
	require.NoError(t, a.Pref(ctx, nil))
	assert.Contains(t, out.String(), "state          Michigan")
	require.NoError(t, a.Details(ctx, nil))
	assert.Contains(t, out.String(), "Caseworker:   Pat Smith")
	require.ErrorIs(t, a.Details(ctx, []string{"show"}), errUsage)
}

func TestApp_Generate(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t)
	_, err := a.store.AddDocument(models.Document{Title: "Report A", Date: "2024-01-01", Type: "pdf"})
	require.NoError(t, err)
	_, err = a.store.AddTimelineEvent(models.TimelineEvent{Date: "2024-01-02", Title: "Visit", Description: "CPS home visit"})
	require.NoError(t, err)
	require.NoError(t, a.store.SetViolation(models.FourthAmendment, true))

	require.NoError(t, a.Generate(ctx, []string{"analysis"}))
	assert.Contains(t, out.String(), "1. Fourth Amendment Violation")
	assert.Contains(t, out.String(), "Prepared: February 1, 2024")

	path := filepath.Join(t.TempDir(), "analysis")
	require.NoError(t, a.Generate(ctx, []string{"analysis", path}))
	b, err := os.ReadFile(path + ".txt")
	require.NoError(t, err)
	assert.Contains(t, string(b), "DOCUMENTS REVIEWED (1)")

	require.ErrorIs(t, a.Generate(ctx, []string{"letter"}), docgen.ErrUnknownTemplate)
	require.ErrorIs(t, a.Generate(ctx, nil), errUsage)

	out.Reset()
	require.NoError(t, a.Templates(ctx))
	assert.Contains(t, out.String(), "email-visitation")
}

func TestApp_GenerateScopedToActiveCase(t *testing.T) {
	ctx := context.Background()
	a, out, _ := newTestApp(t)

	caseA, err := a.store.CreateCase(models.Case{CaseName: "Case A"})
	require.NoError(t, err)
	_, err = a.store.AddDocument(models.Document{Title: "A-only report"})
	require.NoError(t, err)
	_, err = a.store.CreateCase(models.Case{CaseName: "Case B"})
	require.NoError(t, err)
	_, err = a.store.AddDocument(models.Document{Title: "B-only report"})
	require.NoError(t, err)
	require.NoError(t, a.store.SelectCase(caseA.ID))

	require.Len(t, a.visibleDocs(), 1)
	require.NoError(t, a.Generate(ctx, []string{"analysis"}))
	assert.Contains(t, out.String(), "A-only report")
	assert.NotContains(t, out.String(), "B-only report")
}

func TestApp_SignupLoginLogout(t *testing.T) {
	ctx := context.Background()
	a, out, fs := newTestApp(t, "Ann", "ann@example.com", "pw1", "ann@example.com", "pw2")

	require.NoError(t, a.Signup(ctx))
	assert.Equal(t, "signup ann@example.com pw1 Ann", fs.calls[0])
	assert.Contains(t, out.String(), "Signed in as ann@example.com.")
	assert.True(t, a.isSignedIn())
	assert.Equal(t, "ck (ann@example.com cloud)> ", a.prompt())

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isSignedIn())
	assert.Equal(t, "ck (offline local-only)> ", a.prompt())

	fs.loginErr = &client.AuthError{Status: 401, Message: "Invalid credentials"}
	require.NoError(t, a.Login(ctx))
	assert.Contains(t, out.String(), "Sign-in failed: Invalid credentials")
	assert.False(t, a.isSignedIn())
}

func TestApp_LoginWithoutServer(t *testing.T) {
	a, _, fs := newTestApp(t)
	a.config.ServerURL = ""
	require.ErrorIs(t, a.Login(context.Background()), errNoServer)
	require.ErrorIs(t, a.Signup(context.Background()), errNoServer)
	assert.Empty(t, fs.calls)
}

func TestApp_StatusAndClose(t *testing.T) {
	ctx := context.Background()
	a, out, fs := newTestApp(t)
	_, err := a.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)

	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Account:    not signed in")
	assert.Contains(t, out.String(), "Sync mode:  local-only")
	assert.Contains(t, out.String(), "Case:       A")

	require.NoError(t, a.Close(ctx))
	assert.Equal(t, []string{"flush", "close"}, fs.calls)
}

func TestNewApp_WiresRealComponents(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := &config.Config{ServerURL: "", DBPath: filepath.Join(dir, "ck.db"), SyncDelay: time.Second, LogFile: filepath.Join(dir, "ck.log")}

	a, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	a.out = &bytes.Buffer{}

	a.sync.Start(ctx)
	_, err = a.store.CreateCase(models.Case{CaseName: "Persisted"})
	require.NoError(t, err)
	require.NoError(t, a.Close(ctx))

	b, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	b.sync.Start(ctx)
	active, ok := b.store.ActiveCase()
	require.True(t, ok)
	assert.Equal(t, "Persisted", active.CaseName)
	require.NoError(t, b.Close(ctx))
}

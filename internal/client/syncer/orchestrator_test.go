package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/store"
)

type fakeLocal struct {
	mu      sync.Mutex
	snap    models.Snapshot
	saves   int
	auth    models.AuthState
	hasAuth bool
}

func (f *fakeLocal) Save(_ context.Context, s models.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s.Clone()
	f.saves++
}

func (f *fakeLocal) Load(context.Context) models.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snap.Cases == nil {
		return models.DefaultSnapshot()
	}
	return f.snap.Clone()
}

func (f *fakeLocal) SaveAuth(_ context.Context, a models.AuthState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth, f.hasAuth = a, true
	return nil
}

func (f *fakeLocal) LoadAuth(context.Context) (models.AuthState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth, f.hasAuth
}

func (f *fakeLocal) ClearAuth(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth, f.hasAuth = models.AuthState{}, false
	return nil
}

func (f *fakeLocal) stored() (models.Snapshot, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.Clone(), f.saves
}

type fakeRemote struct {
	mu       sync.Mutex
	loadData *models.Snapshot
	loadErr  error
	saveErr  error
	authErr  error
	saved    []models.Snapshot
	tokens   []string
}

func (f *fakeRemote) Signup(_ context.Context, email, _, _ string) (models.AuthState, error) {
	return f.authResult(email)
}

func (f *fakeRemote) Login(_ context.Context, email, _ string) (models.AuthState, error) {
	return f.authResult(email)
}

func (f *fakeRemote) authResult(email string) (models.AuthState, error) {
	if f.authErr != nil {
		return models.AuthState{}, f.authErr
	}
	return models.AuthState{AccessToken: "tok", UserID: "u1", Email: email}, nil
}

func (f *fakeRemote) SaveData(_ context.Context, token string, s models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s.Clone())
	return nil
}

func (f *fakeRemote) LoadData(context.Context, string) (*models.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.loadData == nil {
		return nil, nil
	}
	c := f.loadData.Clone()
	return &c, nil
}

func (f *fakeRemote) saveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

func (f *fakeRemote) lastSaved() models.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[len(f.saved)-1]
}

type recordingNotifier struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (r *recordingNotifier) Info(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, m)
}

func (r *recordingNotifier) Warn(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, m)
}

func (r *recordingNotifier) warnCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warns)
}

type fixture struct {
	store  *store.Store
	local  *fakeLocal
	remote *fakeRemote
	notes  *recordingNotifier
	orch   *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  store.New(),
		local:  &fakeLocal{},
		remote: &fakeRemote{},
		notes:  &recordingNotifier{},
	}
	f.orch = New(f.store, f.local, f.remote, f.notes, nil, testDelay)
	t.Cleanup(f.orch.Close)
	return f
}

func TestOrchestrator_LocalOnlyNeverCallsRemote(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)
	f.orch.Start(context.Background())

	_, err := f.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)
	require.NoError(t, f.store.SetViolation(models.NoWarrant, true))

	time.Sleep(3 * testDelay)
	assert.Equal(t, ModeLocalOnly, f.orch.Mode())
	assert.Zero(t, f.remote.saveCalls())

	snap, saves := f.local.stored()
	assert.Equal(t, 2, saves)
	assert.True(t, snap.Violations.Get(models.NoWarrant))
	f.orch.Close()
}

func TestOrchestrator_StartLoadsLocalSnapshot(t *testing.T) {
	f := newFixture(t)
	seed := models.DefaultSnapshot()
	seed.Cases = []models.Case{{ID: "c1", CaseName: "Seeded"}}
	seed.ActiveCaseID = "c1"
	f.local.snap = seed

	f.orch.Start(context.Background())

	active, ok := f.store.ActiveCase()
	require.True(t, ok)
	assert.Equal(t, "Seeded", active.CaseName)
	_, saves := f.local.stored()
	assert.Zero(t, saves, "loading does not write back")
}

func TestOrchestrator_DebouncedPushCarriesLastState(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)
	f.orch.Start(context.Background())
	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))
	require.Equal(t, ModeCloud, f.orch.Mode())

	keys := models.ViolationKeys()[:5]
	for _, k := range keys {
		require.NoError(t, f.store.SetViolation(k, true))
	}

	require.Eventually(t, func() bool { return f.remote.saveCalls() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDelay)
	assert.Equal(t, 1, f.remote.saveCalls())
	assert.Equal(t, keys, f.remote.lastSaved().Violations.Active())

	_, saves := f.local.stored()
	assert.Equal(t, 5, saves, "every change is saved locally")
	f.orch.Close()
}

func TestOrchestrator_RemoteDataReplacesStore(t *testing.T) {
	f := newFixture(t)
	remote := models.DefaultSnapshot()
	remote.Documents = []models.Document{{ID: "r1", Title: "From cloud"}}
	f.remote.loadData = &remote
	f.orch.Start(context.Background())

	_, err := f.store.AddDocument(models.Document{Title: "local only"})
	require.NoError(t, err)
	f.orch.Flush(context.Background())

	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))

	snap := f.store.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, "From cloud", snap.Documents[0].Title)

	local, _ := f.local.stored()
	assert.Equal(t, "From cloud", local.Documents[0].Title, "local copy rewritten")
	assert.Zero(t, f.remote.saveCalls(), "adopting remote data does not push it back")
}

func TestOrchestrator_EmptyRemoteKeepsLocalAndPushes(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)
	f.orch.Start(context.Background())
	_, err := f.store.CreateCase(models.Case{CaseName: "Kept"})
	require.NoError(t, err)

	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, ModeCloud, f.orch.Mode())

	require.Eventually(t, func() bool { return f.remote.saveCalls() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Kept", f.remote.lastSaved().Cases[0].CaseName)
	f.orch.Close()
}

func TestOrchestrator_LoadFailureStaysLocal(t *testing.T) {
	f := newFixture(t)
	f.remote.loadErr = client.ErrUnavailable
	f.orch.Start(context.Background())

	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, ModeLocalOnly, f.orch.Mode())
	assert.Equal(t, 1, f.notes.warnCount())

	_, err := f.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)
	time.Sleep(3 * testDelay)
	assert.Zero(t, f.remote.saveCalls())
}

func TestOrchestrator_SaveFailureDegrades(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)
	f.remote.saveErr = &client.SyncError{Op: "save", Status: 500, Message: "boom"}
	f.orch.Start(context.Background())
	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))

	_, err := f.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.orch.Mode() == ModeLocalOnly }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, f.notes.warnCount())

	_, err = f.store.CreateCase(models.Case{CaseName: "B"})
	require.NoError(t, err)
	time.Sleep(3 * testDelay)
	assert.Equal(t, 1, f.remote.saveCalls(), "no further pushes this session")

	local, _ := f.local.stored()
	assert.Len(t, local.Cases, 2)
	f.orch.Close()
}

func TestOrchestrator_AuthErrorReturned(t *testing.T) {
	f := newFixture(t)
	f.remote.authErr = &client.AuthError{Status: 401, Message: "Invalid credentials"}
	f.orch.Start(context.Background())

	err := f.orch.Login(context.Background(), "a@b.c", "bad")
	var ae *client.AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Invalid credentials", ae.Message)
	assert.Equal(t, ModeLocalOnly, f.orch.Mode())
	_, ok := f.local.LoadAuth(context.Background())
	assert.False(t, ok)
}

func TestOrchestrator_SignupPersistsAuthAndRestores(t *testing.T) {
	f := newFixture(t)
	f.orch.Start(context.Background())
	require.NoError(t, f.orch.Signup(context.Background(), "a@b.c", "pw", "Ann"))

	auth, ok := f.local.LoadAuth(context.Background())
	require.True(t, ok)
	assert.Equal(t, "tok", auth.AccessToken)

	next := New(store.New(), f.local, f.remote, nil, nil, testDelay)
	defer next.Close()
	next.Start(context.Background())
	assert.Equal(t, ModeCloud, next.Mode())
	assert.Equal(t, "a@b.c", next.Auth().Email)
}

func TestOrchestrator_LogoutKeepsData(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture(t)
	f.orch.Start(context.Background())
	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))

	_, err := f.store.CreateCase(models.Case{CaseName: "A"})
	require.NoError(t, err)
	require.NoError(t, f.orch.Logout(context.Background()))

	time.Sleep(3 * testDelay)
	assert.Zero(t, f.remote.saveCalls(), "pending push cancelled")
	assert.Equal(t, ModeLocalOnly, f.orch.Mode())
	assert.Len(t, f.store.Snapshot().Cases, 1)
	_, ok := f.local.LoadAuth(context.Background())
	assert.False(t, ok)
	f.orch.Close()
}

func TestOrchestrator_FlushPushesImmediately(t *testing.T) {
	f := newFixture(t)
	f.orch.Start(context.Background())
	require.NoError(t, f.orch.Login(context.Background(), "a@b.c", "pw"))

	require.NoError(t, f.store.SetViolation(models.DueProcess, true))
	f.orch.Flush(context.Background())
	assert.Equal(t, 1, f.remote.saveCalls())

	f.orch.Flush(context.Background())
	assert.Equal(t, 1, f.remote.saveCalls(), "nothing pending")
}

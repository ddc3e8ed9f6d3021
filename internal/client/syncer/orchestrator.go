package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/store"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

const DefaultDelay = time.Second

type Mode int

const (
	ModeLocalOnly Mode = iota
	ModeCloud
)

func (m Mode) String() string {
	if m == ModeCloud {
		return "cloud"
	}
	return "local-only"
}

// LocalStore is the persistence the orchestrator needs; storage.Local
// implements it.
type LocalStore interface {
	Save(ctx context.Context, s models.Snapshot)
	Load(ctx context.Context) models.Snapshot
	SaveAuth(ctx context.Context, a models.AuthState) error
	LoadAuth(ctx context.Context) (models.AuthState, bool)
	ClearAuth(ctx context.Context) error
}

type Orchestrator struct {
	store    *store.Store
	local    LocalStore
	remote   client.Client
	notifier Notifier
	logger   logging.Logger
	debounce *Debouncer

	startOnce sync.Once

	mu      sync.Mutex
	mode    Mode
	auth    models.AuthState
	baseCtx context.Context
}

// New wires an orchestrator. A zero delay uses DefaultDelay; nil notifier
// and logger are replaced by no-ops.
func New(st *store.Store, local LocalStore, remote client.Client, notifier Notifier, logger logging.Logger, delay time.Duration) *Orchestrator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if notifier == nil {
		notifier = NopNotifier()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	o := &Orchestrator{
		store:    st,
		local:    local,
		remote:   remote,
		notifier: notifier,
		logger:   logger.With("component", "syncer"),
		baseCtx:  context.Background(),
	}
	o.debounce = NewDebouncer(delay, o.pushScheduled)
	return o
}

// Start loads the local snapshot into the store, begins observing it and,
// when credentials were persisted, authenticates against the server.
func (o *Orchestrator) Start(ctx context.Context) {
	o.startOnce.Do(func() {
		o.mu.Lock()
		o.baseCtx = context.WithoutCancel(ctx)
		o.mu.Unlock()

		o.store.Replace(o.local.Load(ctx))
		o.store.Observe(o.Changed)
	})

	if auth, ok := o.local.LoadAuth(ctx); ok && auth.Enabled() {
		o.logger.Info(ctx, "restoring session", "user_id", auth.UserID)
		o.Authenticate(ctx, auth)
	}
}

func (o *Orchestrator) Mode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// Auth returns the current credentials; zero when signed out.
func (o *Orchestrator) Auth() models.AuthState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.auth
}

// Signup creates a remote account and authenticates with it. Rejections are
// returned as *client.AuthError.
func (o *Orchestrator) Signup(ctx context.Context, email, password, name string) error {
	auth, err := o.remote.Signup(ctx, email, password, name)
	if err != nil {
		return err
	}
	o.persistAndAuthenticate(ctx, auth)
	return nil
}

func (o *Orchestrator) Login(ctx context.Context, email, password string) error {
	auth, err := o.remote.Login(ctx, email, password)
	if err != nil {
		return err
	}
	o.persistAndAuthenticate(ctx, auth)
	return nil
}

func (o *Orchestrator) persistAndAuthenticate(ctx context.Context, auth models.AuthState) {
	if err := o.local.SaveAuth(ctx, auth); err != nil {
		o.logger.Warn(ctx, "persist auth failed", "error", err)
	}
	o.Authenticate(ctx, auth)
}

// Authenticate loads remote data with auth. On success the session enters
// cloud mode; remote data, when present, replaces the store. On failure the
// session stays local-only.
func (o *Orchestrator) Authenticate(ctx context.Context, auth models.AuthState) Mode {
	o.mu.Lock()
	o.auth = auth
	o.mode = ModeLocalOnly
	o.mu.Unlock()

	data, err := o.remote.LoadData(ctx, auth.AccessToken)
	if err != nil {
		o.logger.Warn(ctx, "remote load failed", "error", err)
		o.notifier.Warn(fmt.Sprintf("Could not load cloud data, working offline: %v", err))
		return ModeLocalOnly
	}

	// Credentials may have changed while the request was in flight.
	if !o.sameToken(auth.AccessToken) {
		return o.Mode()
	}

	if data != nil {
		// Mode is still local-only, so this only rewrites the local copy.
		o.store.Replace(*data)
	}

	o.mu.Lock()
	o.mode = ModeCloud
	o.mu.Unlock()
	o.logger.Info(ctx, "cloud sync enabled", "user_id", auth.UserID, "remote_data", data != nil)
	o.notifier.Info("Cloud sync enabled")

	if data == nil && !o.store.Snapshot().IsEmpty() {
		o.debounce.Trigger()
	}
	return ModeCloud
}

// Changed is the store observer: save locally, then schedule a push when
// in cloud mode.
func (o *Orchestrator) Changed() {
	ctx := o.ctx()
	o.local.Save(ctx, o.store.Snapshot())
	if o.Mode() == ModeCloud {
		o.debounce.Trigger()
	}
}

// Logout drops credentials and any pending push. Case data stays on the
// device.
func (o *Orchestrator) Logout(ctx context.Context) error {
	o.debounce.Cancel()
	o.mu.Lock()
	o.auth = models.AuthState{}
	o.mode = ModeLocalOnly
	o.mu.Unlock()

	if err := o.local.ClearAuth(ctx); err != nil {
		return fmt.Errorf("clear auth: %w", err)
	}
	o.notifier.Info("Signed out, working offline")
	return nil
}

// Flush runs a pending push now. It is a no-op when nothing is scheduled.
func (o *Orchestrator) Flush(ctx context.Context) {
	if o.debounce.Cancel() {
		o.push(ctx)
	}
}

// Close stops the debouncer, waiting for a push in progress.
func (o *Orchestrator) Close() {
	o.debounce.Stop()
}

func (o *Orchestrator) pushScheduled() {
	o.push(o.ctx())
}

// push sends the snapshot as it is now, not as it was when scheduled.
func (o *Orchestrator) push(ctx context.Context) {
	o.mu.Lock()
	if o.mode != ModeCloud {
		o.mu.Unlock()
		return
	}
	token := o.auth.AccessToken
	o.mu.Unlock()

	snap := o.store.Snapshot()
	if err := o.remote.SaveData(ctx, token, snap); err != nil {
		o.degrade(ctx, token, err)
		return
	}
	o.logger.Debug(ctx, "snapshot pushed", "documents", len(snap.Documents), "cases", len(snap.Cases))
}

func (o *Orchestrator) degrade(ctx context.Context, token string, err error) {
	o.mu.Lock()
	changed := o.mode == ModeCloud && o.auth.AccessToken == token
	if changed {
		o.mode = ModeLocalOnly
	}
	o.mu.Unlock()

	o.logger.Error(ctx, "remote save failed", "error", err)
	if changed {
		o.notifier.Warn(fmt.Sprintf("Cloud sync failed, changes are saved on this device only: %v", err))
	}
}

func (o *Orchestrator) sameToken(token string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.auth.AccessToken == token
}

func (o *Orchestrator) ctx() context.Context {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.baseCtx
}

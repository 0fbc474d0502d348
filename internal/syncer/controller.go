// Package syncer reconciles the three config stores: the quota-limited
// local store (pre-cloud data), the local cache mirror, and the remote
// per-user document. It owns the cache-freshness rule, the offline
// fallback and the one-time local-to-remote migration flow.
//
// Consistency policy: once a remote document exists it is the source of
// truth, permanently. Conflicts resolve last-writer-wins by the
// server-assigned lastModified; there is no cross-device locking.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/auth"
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/saver"
	"github.com/MrSnakeDoc/stash/internal/store/cache"
	"github.com/MrSnakeDoc/stash/internal/store/kv"
	"github.com/MrSnakeDoc/stash/internal/store/local"
	"github.com/MrSnakeDoc/stash/internal/store/remote"
)

// Remote is the slice of the remote store the controller depends on.
// *remote.Store satisfies it; tests substitute fakes.
type Remote interface {
	LoadUserConfig(ctx context.Context, userID string) (*domain.Config, error)
	LastModified(ctx context.Context, userID string) (int64, error)
	SaveUserConfig(ctx context.Context, userID string, cfg *domain.Config) error
	DeleteUserConfig(ctx context.Context, userID string) error
	HasUserConfig(ctx context.Context, userID string) (bool, error)
	SaveUserProfile(ctx context.Context, userID string, profile remote.Profile) error
	Subscribe(userID string, handler remote.ChangeHandler) func()
}

// Options tunes the controller.
type Options struct {
	// DebounceDelay is the save-coalescing window.
	DebounceDelay time.Duration
}

// Controller orchestrates loads, saves, migration and live updates.
type Controller struct {
	local   *local.Store
	cache   *cache.Cache
	prefs   kv.Store // device store holding persisted decisions
	remote  Remote   // nil when the daemon runs without a remote backend
	session auth.Provider
	saver   *saver.Saver
	logger  logger.Logger
	now     func() time.Time

	mu          sync.Mutex
	mig         migrationState
	lastSyncErr error
	unsubRemote func()
	unsubAuth   func()
	nextSubID   int
	changeSubs  map[int]func(*domain.Config)
}

// New wires a controller. remoteStore may be nil, in which case every
// path degrades to the local store.
func New(localStore *local.Store, cacheStore *cache.Cache, prefs kv.Store,
	remoteStore Remote, session auth.Provider, log logger.Logger, opts Options,
) *Controller {
	c := &Controller{
		local:      localStore,
		cache:      cacheStore,
		prefs:      prefs,
		remote:     remoteStore,
		session:    session,
		logger:     log,
		now:        time.Now,
		mig:        migrationState{Status: MigrationChecking},
		changeSubs: make(map[int]func(*domain.Config)),
	}
	c.saver = saver.New(c.remoteSave, opts.DebounceDelay, log, c.recordSyncError)
	return c
}

// remoteSave is the SaveFunc behind the debounced coordinator: it resolves
// the user at write time so a sign-out between schedule and fire cannot
// write under a stale identity.
func (c *Controller) remoteSave(ctx context.Context, cfg *domain.Config) error {
	uid, ok := c.session.CurrentUser()
	if !ok {
		return errors.Mark(errors.New("no authenticated user"), errs.ErrRemoteRejected)
	}
	if c.remote == nil {
		return errors.Mark(errors.New("remote store not configured"), errs.ErrRemoteRejected)
	}
	return c.remote.SaveUserConfig(ctx, string(uid), cfg)
}

func (c *Controller) recordSyncError(err error) {
	c.mu.Lock()
	c.lastSyncErr = err
	c.mu.Unlock()
}

// LastSyncError returns the most recent background sync failure, if any.
func (c *Controller) LastSyncError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSyncErr
}

// Start hooks the controller into the auth stream. Call Stop to tear down.
func (c *Controller) Start(ctx context.Context) {
	c.unsubAuth = c.session.OnAuthStateChanged(func(uid auth.UserID, signedIn bool) {
		if signedIn {
			c.handleSignIn(ctx, uid)
		} else {
			c.handleSignOut(ctx)
		}
	})
	if uid, ok := c.session.CurrentUser(); ok {
		c.handleSignIn(ctx, uid)
	}
}

// Stop detaches from auth and remote streams and flushes any debounced
// save still waiting on its timer.
func (c *Controller) Stop() {
	if c.unsubAuth != nil {
		c.unsubAuth()
		c.unsubAuth = nil
	}
	c.detachRemote()
	if err := c.saver.Shutdown(context.Background()); err != nil {
		c.logger.Error("final save failed on shutdown", logger.Error(err))
	}
}

func (c *Controller) handleSignIn(ctx context.Context, uid auth.UserID) {
	c.logger.Info("user signed in", logger.String("user_id", string(uid)))

	if c.remote == nil {
		c.setMigration(migrationState{Status: MigrationCompleted})
		return
	}

	// Profile write is a side effect of sign-in: log-and-continue.
	p := c.session.Profile()
	if err := c.remote.SaveUserProfile(ctx, string(uid), remote.Profile{
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
	}); err != nil {
		c.logger.Warn("failed to save user profile", logger.Error(err))
	}

	c.checkMigration(ctx, uid)

	unsub := c.remote.Subscribe(string(uid), c.handleRemoteChange)
	c.mu.Lock()
	c.unsubRemote = unsub
	c.mu.Unlock()
}

func (c *Controller) handleSignOut(ctx context.Context) {
	c.logger.Info("user signed out")
	c.detachRemote()
	c.cache.Clear(ctx)
	c.setMigration(migrationState{Status: MigrationChecking})
}

func (c *Controller) detachRemote() {
	c.mu.Lock()
	unsub := c.unsubRemote
	c.unsubRemote = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// handleRemoteChange consumes the subscription stream, the single source
// of post-write truth. Errors mean "state unknown": the cache is kept.
func (c *Controller) handleRemoteChange(cfg *domain.Config, err error) {
	ctx := context.Background()

	if err != nil {
		c.logger.Warn("config subscription error, remote state unknown", logger.Error(err))
		c.recordSyncError(err)
		return
	}
	if cfg == nil {
		c.logger.Info("remote config deleted, clearing cache")
		c.cache.Clear(ctx)
		c.notify(nil)
		return
	}
	if ts, ok := c.cache.Timestamp(ctx); ok && ts >= cfg.LastModified {
		c.logger.Debug("remote change not newer than cache, skipping",
			logger.Int64("cache_ts", ts),
			logger.Int64("remote_ts", cfg.LastModified))
		return
	}
	c.cache.Save(ctx, cfg)
	c.notify(cfg)
}

// Load returns the reconciled config. Signed out (or no remote backend):
// the local store. Signed in: the cache when it is at least as fresh as
// the remote document, the remote document otherwise (refreshing the
// cache), and the stale cache as a last resort when the remote is
// unreachable. A signed-in user without a remote document still sees the
// local store; that data is what the migration flow offers to upload.
func (c *Controller) Load(ctx context.Context) (*domain.Config, error) {
	uid, signedIn := c.session.CurrentUser()
	if !signedIn || c.remote == nil {
		return c.local.LoadConfig(ctx)
	}

	remoteTS, err := c.remote.LastModified(ctx, string(uid))
	if err != nil {
		if errs.IsConnectivity(err) {
			if cached := c.cache.Load(ctx); cached != nil {
				c.logger.Warn("remote unreachable, serving stale cache", logger.Error(err))
				return cached, nil
			}
		}
		return nil, err
	}

	if remoteTS == 0 {
		// No resolved remote document yet.
		return c.local.LoadConfig(ctx)
	}

	if c.cache.IsValid(ctx, remoteTS) {
		if cached := c.cache.Load(ctx); cached != nil {
			return cached, nil
		}
	}

	cfg, err := c.remote.LoadUserConfig(ctx, string(uid))
	if err != nil {
		if errs.IsConnectivity(err) {
			if cached := c.cache.Load(ctx); cached != nil {
				c.logger.Warn("remote unreachable, serving stale cache", logger.Error(err))
				return cached, nil
			}
		}
		return nil, err
	}
	if cfg == nil {
		return c.local.LoadConfig(ctx)
	}
	c.cache.Save(ctx, cfg)
	return cfg, nil
}

// Save persists a new config version. Signed in: the cache mirrors the
// optimistic update immediately and the remote write is debounced. Signed
// out: the local store takes the write synchronously. Returns the stamped
// config actually persisted.
func (c *Controller) Save(ctx context.Context, cfg *domain.Config) (*domain.Config, error) {
	if _, signedIn := c.session.CurrentUser(); !signedIn || c.remote == nil {
		saved, err := c.local.SaveConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.notify(saved)
		return saved, nil
	}

	stamped := cfg.Clone()
	stamped.LastModified = c.now().UnixMilli()
	if stamped.Version == "" {
		stamped.Version = domain.SchemaVersion
	}
	c.cache.Save(ctx, stamped)
	c.saver.Schedule(stamped)
	c.notify(stamped)
	return stamped, nil
}

// SaveNow bypasses the debounce window: flush-on-exit semantics. The write
// error propagates to the caller.
func (c *Controller) SaveNow(ctx context.Context, cfg *domain.Config) error {
	if _, signedIn := c.session.CurrentUser(); !signedIn || c.remote == nil {
		_, err := c.local.SaveConfig(ctx, cfg)
		return err
	}
	stamped := cfg.Clone()
	stamped.LastModified = c.now().UnixMilli()
	c.cache.Save(ctx, stamped)
	return c.saver.Flush(ctx, stamped)
}

// Apply loads the current config, runs the transformation and saves the
// result. This is the one-stop path the HTTP handlers use.
func (c *Controller) Apply(ctx context.Context, fn func(*domain.Config) (*domain.Config, error)) (*domain.Config, error) {
	cfg, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(cfg)
	if err != nil {
		return nil, err
	}
	return c.Save(ctx, next)
}

// DeleteRemote wipes the user's remote document (the "reset cloud data"
// path); subscribers on every device observe the deletion.
func (c *Controller) DeleteRemote(ctx context.Context) error {
	uid, signedIn := c.session.CurrentUser()
	if !signedIn || c.remote == nil {
		return errors.Mark(errors.New("no remote config to delete"), errs.ErrNotFound)
	}
	if err := c.remote.DeleteUserConfig(ctx, string(uid)); err != nil {
		return err
	}
	c.cache.Clear(ctx)
	return nil
}

// OnChange registers a callback invoked with every new config version this
// device observes (local mutations and remote pushes); nil signals that
// the remote document was deleted. Returns an unsubscribe function.
func (c *Controller) OnChange(fn func(*domain.Config)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.changeSubs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.changeSubs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) notify(cfg *domain.Config) {
	c.mu.Lock()
	subs := make([]func(*domain.Config), 0, len(c.changeSubs))
	for _, fn := range c.changeSubs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(cfg)
	}
}

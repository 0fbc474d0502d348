package syncer

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/auth"
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// MigrationStatus is the per-session state of the one-time local-to-remote
// migration offer.
type MigrationStatus string

const (
	// MigrationChecking: sign-in happened, remote existence not yet known.
	MigrationChecking MigrationStatus = "checking"
	// MigrationPending: no remote document, local data exists. The UI
	// should prompt.
	MigrationPending MigrationStatus = "pending"
	// MigrationMigrating: the upload is in flight.
	MigrationMigrating MigrationStatus = "migrating"
	// MigrationCompleted: a remote document exists (pre-existing or just
	// migrated); remote is authoritative from here on, permanently.
	MigrationCompleted MigrationStatus = "completed"
	// MigrationSkipped: the user postponed; they will be asked again in a
	// later session.
	MigrationSkipped MigrationStatus = "skipped"
	// MigrationNever: the user permanently declined; persists across
	// sessions.
	MigrationNever MigrationStatus = "never"
)

const migrationDecisionKey = "migration_decision"

type migrationState struct {
	Status      MigrationStatus
	LocalConfig *domain.Config // preserved source data while pending/migrating
	Progress    int            // coarse 0-100 indicator, UI feedback only
	Err         string
}

// MigrationInfo is the externally visible migration state.
type MigrationInfo struct {
	Status       MigrationStatus `json:"status"`
	HasLocalData bool            `json:"hasLocalData"`
	Progress     int             `json:"progress"`
	Error        string          `json:"error,omitempty"`
}

// Migration returns the current migration state.
func (c *Controller) Migration() MigrationInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return MigrationInfo{
		Status:       c.mig.Status,
		HasLocalData: c.mig.LocalConfig != nil,
		Progress:     c.mig.Progress,
		Error:        c.mig.Err,
	}
}

func (c *Controller) setMigration(st migrationState) {
	c.mu.Lock()
	c.mig = st
	c.mu.Unlock()
}

// checkMigration runs on sign-in, before the remote document's existence
// is known, and resolves Checking into one of the terminal-ish states.
func (c *Controller) checkMigration(ctx context.Context, uid auth.UserID) {
	c.setMigration(migrationState{Status: MigrationChecking})

	has, err := c.remote.HasUserConfig(ctx, string(uid))
	if err != nil {
		// Existence unknown: don't offer a migration that might clobber an
		// existing remote document.
		c.logger.Warn("failed to check remote config existence", logger.Error(err))
		c.setMigration(migrationState{Status: MigrationCompleted, Err: err.Error()})
		return
	}
	if has {
		// Remote already authoritative; never offer migration again.
		c.setMigration(migrationState{Status: MigrationCompleted})
		return
	}

	switch c.readDecision(ctx) {
	case string(MigrationNever):
		c.setMigration(migrationState{Status: MigrationNever})
		return
	case string(MigrationSkipped):
		// "Ask me again later": suppressed for now, distinct from Never.
		c.setMigration(migrationState{Status: MigrationSkipped})
		return
	case string(MigrationCompleted):
		c.setMigration(migrationState{Status: MigrationCompleted})
		return
	}

	localCfg, err := c.local.LoadConfig(ctx)
	if err != nil {
		c.logger.Warn("failed to load local config for migration check", logger.Error(err))
		c.setMigration(migrationState{Status: MigrationCompleted, Err: err.Error()})
		return
	}
	if len(localCfg.Sections) == 0 {
		c.setMigration(migrationState{Status: MigrationCompleted})
		return
	}

	c.logger.Info("local data found, offering migration",
		logger.Int("sections", len(localCfg.Sections)))
	c.setMigration(migrationState{Status: MigrationPending, LocalConfig: localCfg})
}

// StartMigration pushes the preserved local config into the remote store
// through the coordinator's immediate path. On failure the state returns
// to Pending with the local data untouched, so the user can retry without
// re-entering anything.
func (c *Controller) StartMigration(ctx context.Context) error {
	c.mu.Lock()
	if c.mig.Status != MigrationPending || c.mig.LocalConfig == nil {
		status := c.mig.Status
		c.mu.Unlock()
		return errors.Newf("no migration pending (status %s)", status)
	}
	localCfg := c.mig.LocalConfig
	c.mig.Status = MigrationMigrating
	c.mig.Progress = 30
	c.mig.Err = ""
	c.mu.Unlock()

	c.logger.Info("starting migration to remote store")

	if err := c.saver.Flush(ctx, localCfg); err != nil {
		wrapped := errors.Mark(errors.Wrap(err, "migration write failed"), errs.ErrMigrationFailed)
		c.logger.Error("migration failed, local data preserved", logger.Error(wrapped))
		c.setMigration(migrationState{
			Status:      MigrationPending,
			LocalConfig: localCfg,
			Progress:    0,
			Err:         wrapped.Error(),
		})
		return wrapped
	}

	c.mu.Lock()
	c.mig.Progress = 80
	c.mu.Unlock()

	c.cache.Save(ctx, localCfg)
	c.writeDecision(ctx, string(MigrationCompleted))
	c.setMigration(migrationState{Status: MigrationCompleted, Progress: 100})
	c.logger.Info("migration completed")
	return nil
}

// SkipMigration postpones the offer; the user will be prompted again in a
// later session.
func (c *Controller) SkipMigration(ctx context.Context) {
	c.writeDecision(ctx, string(MigrationSkipped))
	c.setMigration(migrationState{Status: MigrationSkipped})
}

// NeverMigrate permanently declines the offer.
func (c *Controller) NeverMigrate(ctx context.Context) {
	c.writeDecision(ctx, string(MigrationNever))
	c.setMigration(migrationState{Status: MigrationNever})
}

// ResetMigrationDecision clears a persisted skip/never so the next sign-in
// re-evaluates. Skipped re-prompts later depends on this.
func (c *Controller) ResetMigrationDecision(ctx context.Context) {
	if err := c.prefs.Delete(ctx, migrationDecisionKey); err != nil {
		c.logger.Warn("failed to clear migration decision", logger.Error(err))
	}
}

func (c *Controller) readDecision(ctx context.Context) string {
	raw, ok, err := c.prefs.Get(ctx, migrationDecisionKey)
	if err != nil || !ok {
		return ""
	}
	return string(raw)
}

func (c *Controller) writeDecision(ctx context.Context, decision string) {
	if err := c.prefs.Set(ctx, migrationDecisionKey, []byte(decision)); err != nil {
		c.logger.Warn("failed to persist migration decision", logger.Error(err))
	}
}

// Package local persists the config to the quota-limited device store,
// mirrors every write into a larger same-device backup store for crash
// recovery, and migrates legacy schemas on load.
package local

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/store/kv"
)

const (
	configKey = "config"
	backupKey = "shortcuts_backup"
)

// Store is the local store adapter.
type Store struct {
	primary kv.Store // quota-limited synced store
	backup  kv.Store // larger, same-device-only
	logger  logger.Logger
	now     func() time.Time
}

// New creates a local store adapter over the two device stores.
func New(primary, backup kv.Store, log logger.Logger) *Store {
	return &Store{
		primary: primary,
		backup:  backup,
		logger:  log,
		now:     time.Now,
	}
}

// LoadConfig reads the config from the primary store, falling back to the
// backup store (and re-persisting a successful recovery), then to the
// default config. Legacy schemas are migrated and persisted before the
// config is returned.
func (s *Store) LoadConfig(ctx context.Context) (*domain.Config, error) {
	raw, ok, err := s.primary.Get(ctx, configKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read primary store")
	}

	if !ok {
		s.logger.Warn("no config in primary store, checking backup")
		backupRaw, backupOK, backupErr := s.backup.Get(ctx, backupKey)
		if backupErr != nil {
			s.logger.Warn("failed to read backup store", logger.Error(backupErr))
		}
		if backupOK {
			if cfg, err := s.decode(ctx, backupRaw); err == nil {
				s.logger.Info("config recovered from backup")
				if _, saveErr := s.SaveConfig(ctx, cfg); saveErr != nil {
					s.logger.Warn("failed to re-persist recovered config", logger.Error(saveErr))
				}
				return cfg, nil
			}
			s.logger.Warn("backup config is unreadable, using defaults")
		}
		return domain.DefaultConfig(), nil
	}

	cfg, err := s.decode(ctx, raw)
	if err != nil {
		s.logger.Error("stored config is unreadable, using defaults", logger.Error(err))
		return domain.DefaultConfig(), nil
	}
	return cfg, nil
}

// decode unmarshals raw config bytes, running the schema migration first
// when needed. A migrated config is persisted before being returned.
func (s *Store) decode(ctx context.Context, raw []byte) (*domain.Config, error) {
	if NeedsMigration(raw) {
		s.logger.Info("config needs schema migration, migrating")
		migrated, err := MigrateToV2(raw)
		if err != nil {
			return nil, err
		}
		if _, err := s.SaveConfig(ctx, migrated); err != nil {
			s.logger.Warn("failed to persist migrated config", logger.Error(err))
		}
		s.logger.Info("config migrated", logger.String("version", migrated.Version))
		migrated.SortSections()
		return migrated, nil
	}

	var cfg domain.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	cfg.SortSections()
	return &cfg, nil
}

// SaveConfig stamps lastModified, writes to the primary store and mirrors
// the write into the backup store. Backup failures are logged and
// swallowed; a primary write that trips the quota surfaces as a
// distinguishable QuotaExceeded error. The caller's config is not
// modified; the stamped copy is returned.
func (s *Store) SaveConfig(ctx context.Context, cfg *domain.Config) (*domain.Config, error) {
	stamped := cfg.Clone()
	stamped.LastModified = s.now().UnixMilli()
	if stamped.Version == "" {
		stamped.Version = domain.SchemaVersion
	}

	raw, err := json.Marshal(stamped)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}

	if err := s.primary.Set(ctx, configKey, raw); err != nil {
		if errs.IsQuotaExceeded(err) {
			s.logger.Error("primary store quota exceeded",
				logger.Int("size", len(raw)))
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to write primary store")
	}

	if err := s.backup.Set(ctx, backupKey, raw); err != nil {
		// Backup is best-effort: never fail the primary write over it.
		s.logger.Warn("failed to mirror config to backup store", logger.Error(err))
	}

	s.logger.Debug("config saved",
		logger.Int("sections", len(stamped.Sections)),
		logger.Int("size", len(raw)))
	return stamped, nil
}

// Clear removes the config from both device stores.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.primary.Delete(ctx, configKey); err != nil {
		return errors.Wrap(err, "failed to clear primary store")
	}
	if err := s.backup.Delete(ctx, backupKey); err != nil {
		s.logger.Warn("failed to clear backup store", logger.Error(err))
	}
	return nil
}

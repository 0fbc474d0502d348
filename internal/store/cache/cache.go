// Package cache mirrors the remote config into the larger device store.
// Reads hit the mirror when it is at least as fresh as the remote document
// and serve as the offline fallback; writes to it are best-effort.
package cache

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/store/kv"
)

const (
	cacheKey     = "remote_config_cache"
	timestampKey = "remote_config_cache_ts"
)

// Cache is the local mirror of the remote config document.
type Cache struct {
	store  kv.Store
	logger logger.Logger
}

func New(store kv.Store, log logger.Logger) *Cache {
	return &Cache{store: store, logger: log}
}

// Save mirrors the config and its timestamp. Failures are logged and
// swallowed: the cache is an optimization, never a required write.
func (c *Cache) Save(ctx context.Context, cfg *domain.Config) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		c.logger.Warn("failed to encode config for cache", logger.Error(err))
		return
	}
	if err := c.store.Set(ctx, cacheKey, raw); err != nil {
		c.logger.Warn("failed to write config cache", logger.Error(err))
		return
	}
	if err := c.store.Set(ctx, timestampKey, []byte(strconv.FormatInt(cfg.LastModified, 10))); err != nil {
		c.logger.Warn("failed to write cache timestamp", logger.Error(err))
	}
}

// Load returns the cached config, or nil when the cache is empty or
// unreadable.
func (c *Cache) Load(ctx context.Context) *domain.Config {
	raw, ok, err := c.store.Get(ctx, cacheKey)
	if err != nil || !ok {
		if err != nil {
			c.logger.Warn("failed to read config cache", logger.Error(err))
		}
		return nil
	}
	var cfg domain.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		c.logger.Warn("cached config is unreadable", logger.Error(err))
		return nil
	}
	cfg.SortSections()
	return &cfg
}

// Timestamp returns the cached lastModified, or false when there is none.
func (c *Cache) Timestamp(ctx context.Context) (int64, bool) {
	raw, ok, err := c.store.Get(ctx, timestampKey)
	if err != nil || !ok {
		return 0, false
	}
	ts, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// IsValid reports whether the cache is at least as fresh as the remote
// timestamp; a fresh cache skips the redundant remote fetch.
func (c *Cache) IsValid(ctx context.Context, remoteTS int64) bool {
	ts, ok := c.Timestamp(ctx)
	return ok && ts >= remoteTS
}

// Clear drops the mirror, e.g. on sign-out or remote deletion.
func (c *Cache) Clear(ctx context.Context) {
	if err := c.store.Delete(ctx, cacheKey, timestampKey); err != nil {
		c.logger.Warn("failed to clear config cache", logger.Error(err))
	}
}

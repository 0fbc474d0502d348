// Package remote persists per-user config documents in Redis. Write
// timestamps are assigned server-side (Redis TIME inside a script), never
// from a client clock, so freshness comparisons are immune to device clock
// skew. Changes fan out to other devices over pub/sub.
package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// DefaultTimeout bounds every remote call; a hung call degrades into a
// connectivity failure instead of blocking the coordinator forever.
const DefaultTimeout = 30 * time.Second

// tombstone is published when a config document is deleted.
const tombstone = "deleted"

// saveScript atomically stores the document, stamps the server time (ms)
// into the companion timestamp key and notifies subscribers. Returns the
// assigned timestamp.
var saveScript = redis.NewScript(`
local t = redis.call('TIME')
local ms = t[1] * 1000 + math.floor(t[2] / 1000)
redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', KEYS[2], ms)
redis.call('PUBLISH', KEYS[3], ms)
return ms
`)

// deleteScript removes the document and its timestamp and publishes a
// tombstone so remote subscribers observe the deletion.
var deleteScript = redis.NewScript(`
redis.call('DEL', KEYS[1], KEYS[2])
redis.call('PUBLISH', KEYS[3], ARGV[1])
return 1
`)

// document is the wire shape of the stored config. lastModified lives in
// the companion key and is folded back in on load.
type document struct {
	Sections []*domain.Section `json:"sections"`
	Version  string            `json:"version"`
}

// Profile is the non-critical per-user profile document.
type Profile struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	LastLogin   int64  `json:"lastLogin"`
}

// Store is the remote store adapter.
type Store struct {
	client  *redis.Client
	logger  logger.Logger
	timeout time.Duration
}

// NewStore creates a remote store over an established Redis client.
func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client:  client,
		logger:  log,
		timeout: DefaultTimeout,
	}
}

// LoadUserConfig returns the user's config, or nil when the document does
// not exist or its timestamp is not yet resolved (a write in flight is
// "not ready", not "empty").
func (s *Store) LoadUserConfig(ctx context.Context, userID string) (*domain.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pipe := s.client.Pipeline()
	docCmd := pipe.Get(ctx, ConfigKey(userID))
	tsCmd := pipe.Get(ctx, ConfigTSKey(userID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, classify(err, "failed to load config")
	}

	raw, err := docCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, "failed to load config")
	}

	ts, err := tsCmd.Int64()
	if errors.Is(err, redis.Nil) || (err == nil && ts == 0) {
		s.logger.Debug("config present but timestamp unresolved, treating as not ready",
			logger.String("user_id", userID))
		return nil, nil
	}
	if err != nil {
		return nil, classify(err, "failed to load config timestamp")
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode remote config")
	}

	cfg := &domain.Config{
		Sections:     doc.Sections,
		Version:      doc.Version,
		LastModified: ts,
	}
	cfg.SortSections()
	return cfg, nil
}

// LastModified returns the server-assigned timestamp of the user's config,
// or 0 when no resolved document exists. Cheaper than loading the full
// document, which is what makes the cache-freshness check worthwhile.
func (s *Store) LastModified(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ts, err := s.client.Get(ctx, ConfigTSKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, classify(err, "failed to stat config")
	}
	return ts, nil
}

// SaveUserConfig writes sections and version verbatim; the timestamp is
// assigned by the server at write time.
func (s *Store) SaveUserConfig(ctx context.Context, userID string, cfg *domain.Config) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := json.Marshal(document{
		Sections: cfg.Sections,
		Version:  cfg.Version,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	ts, err := saveScript.Run(ctx, s.client,
		[]string{ConfigKey(userID), ConfigTSKey(userID), EventsChannel(userID)},
		raw).Int64()
	if err != nil {
		return classify(err, "failed to save config")
	}

	s.logger.Debug("remote config saved",
		logger.String("user_id", userID),
		logger.Int("sections", len(cfg.Sections)),
		logger.Int64("server_ts", ts))
	return nil
}

// DeleteUserConfig removes the user's config document and notifies
// subscribers on every device.
func (s *Store) DeleteUserConfig(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := deleteScript.Run(ctx, s.client,
		[]string{ConfigKey(userID), ConfigTSKey(userID), EventsChannel(userID)},
		tombstone).Err(); err != nil {
		return classify(err, "failed to delete config")
	}
	return nil
}

// HasUserConfig is true only when the document exists and its timestamp is
// resolved.
func (s *Store) HasUserConfig(ctx context.Context, userID string) (bool, error) {
	ts, err := s.LastModified(ctx, userID)
	if err != nil {
		return false, err
	}
	if ts == 0 {
		return false, nil
	}
	n, err := s.client.Exists(ctx, ConfigKey(userID)).Result()
	if err != nil {
		return false, classify(err, "failed to check config existence")
	}
	return n > 0, nil
}

// SaveUserProfile stores the profile document. Callers treat failures as
// non-fatal; the profile is a side effect of sign-in, never load-bearing.
func (s *Store) SaveUserProfile(ctx context.Context, userID string, profile Profile) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile.LastLogin = time.Now().UnixMilli()
	raw, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "failed to encode profile")
	}
	if err := s.client.Set(ctx, ProfileKey(userID), raw, 0).Err(); err != nil {
		return classify(err, "failed to save profile")
	}
	return nil
}

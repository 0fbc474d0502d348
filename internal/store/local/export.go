package local

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
)

// Export serializes the current config as indented JSON.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	cfg, err := s.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// ParseImport validates and decodes a config payload. Payloads without a
// sections array are rejected, not coerced. Legacy-schema payloads are
// migrated in place.
func ParseImport(payload []byte) (*domain.Config, error) {
	var probe struct {
		Sections *[]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "payload is not valid JSON"), errs.ErrInvalidImport)
	}
	if probe.Sections == nil {
		return nil, errors.Mark(errors.New("payload has no sections array"), errs.ErrInvalidImport)
	}

	if NeedsMigration(payload) {
		cfg, err := MigrateToV2(payload)
		if err != nil {
			return nil, errors.Mark(err, errs.ErrInvalidImport)
		}
		cfg.SortSections()
		return cfg, nil
	}

	var cfg domain.Config
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, errors.Mark(err, errs.ErrInvalidImport)
	}
	cfg.SortSections()
	return &cfg, nil
}

// Import validates a payload and persists it, replacing the stored
// config wholesale.
func (s *Store) Import(ctx context.Context, payload []byte) (*domain.Config, error) {
	cfg, err := ParseImport(payload)
	if err != nil {
		return nil, err
	}
	return s.SaveConfig(ctx, cfg)
}

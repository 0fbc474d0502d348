package local

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// Legacy configs (v1.x / v2.0) stored each section's contents in a flat
// "shortcuts" array; the current schema uses the recursive "items" array.
// Migration renames the field, drops the legacy one and stamps the current
// version tag. It is idempotent: an already-migrated config passes through
// unchanged in meaning.

// NeedsMigration reports whether raw config bytes carry an outdated schema:
// a version other than the current tag, or any section still exposing the
// legacy flat "shortcuts" field.
func NeedsMigration(raw []byte) bool {
	var probe struct {
		Version  string            `json:"version"`
		Sections []json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if probe.Version != domain.SchemaVersion {
		return true
	}
	for _, sec := range probe.Sections {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(sec, &fields); err != nil {
			continue
		}
		if _, ok := fields["shortcuts"]; ok {
			return true
		}
	}
	return false
}

// MigrateToV2 rewrites raw legacy config bytes into the current schema.
// Sections carrying the flat "shortcuts" field get it repacked as "items"
// (legacy configs had no folders, so the list is flat); the legacy field
// is dropped entirely and the current version tag is stamped.
func MigrateToV2(raw []byte) (*domain.Config, error) {
	var shell struct {
		Sections     []json.RawMessage `json:"sections"`
		LastModified int64             `json:"lastModified"`
	}
	if err := json.Unmarshal(raw, &shell); err != nil {
		return nil, errors.Wrap(err, "failed to parse config for migration")
	}

	sections := make([]json.RawMessage, 0, len(shell.Sections))
	for _, sec := range shell.Sections {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(sec, &fields); err != nil {
			return nil, errors.Wrap(err, "failed to parse section for migration")
		}
		if shortcuts, ok := fields["shortcuts"]; ok {
			if _, hasItems := fields["items"]; !hasItems {
				fields["items"] = shortcuts
			}
			delete(fields, "shortcuts")
		}
		repacked, err := json.Marshal(fields)
		if err != nil {
			return nil, errors.Wrap(err, "failed to repack section")
		}
		sections = append(sections, repacked)
	}

	rebuilt, err := json.Marshal(map[string]interface{}{
		"sections":     sections,
		"version":      domain.SchemaVersion,
		"lastModified": shell.LastModified,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to rebuild config")
	}

	var cfg domain.Config
	if err := json.Unmarshal(rebuilt, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode migrated config")
	}
	return &cfg, nil
}

// Package mutate holds the pure config transformations. Every function
// deep-clones its input and returns a new Config; the argument is never
// modified, so callers can keep handing old snapshots to subscribers.
package mutate

import (
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
)

// SectionUpdate carries the fields of a partial section update.
// Nil pointers leave the field untouched; empty strings clear it.
type SectionUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}

// AddSection appends a new empty section with a fresh id and the next
// dense order value.
func AddSection(cfg *domain.Config, name, icon, color string) (*domain.Config, *domain.Section) {
	next := cfg.Clone()
	sec := &domain.Section{
		ID:    domain.NewID(),
		Name:  name,
		Icon:  icon,
		Color: color,
		Items: []domain.Item{},
		Order: len(next.Sections),
	}
	next.Sections = append(next.Sections, sec)
	return next, sec
}

// UpdateSection merges the given fields into the section.
func UpdateSection(cfg *domain.Config, sectionID string, upd SectionUpdate) (*domain.Config, error) {
	next := cfg.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return nil, errs.NotFoundf("section %s", sectionID)
	}
	if upd.Name != nil {
		sec.Name = *upd.Name
	}
	if upd.Icon != nil {
		sec.Icon = *upd.Icon
	}
	if upd.Color != nil {
		sec.Color = *upd.Color
	}
	return next, nil
}

// DeleteSection removes the section and renormalizes the survivors' orders.
func DeleteSection(cfg *domain.Config, sectionID string) (*domain.Config, error) {
	next := cfg.Clone()
	kept := next.Sections[:0]
	found := false
	for _, s := range next.Sections {
		if s.ID == sectionID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return nil, errs.NotFoundf("section %s", sectionID)
	}
	for i, s := range kept {
		s.Order = i
	}
	next.Sections = kept
	return next, nil
}

// ReorderSections reassigns section orders to match the position in the
// given id list. Ids not present in the config are silently dropped
// (dead-id tolerance); sections missing from the list are dropped too,
// matching the drag-and-drop contract where the list is authoritative.
func ReorderSections(cfg *domain.Config, orderedIDs []string) *domain.Config {
	next := cfg.Clone()
	reordered := make([]*domain.Section, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if s := next.FindSection(id); s != nil {
			reordered = append(reordered, s)
		}
	}
	for i, s := range reordered {
		s.Order = i
	}
	next.Sections = reordered
	return next
}

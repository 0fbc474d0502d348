package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current config schema tag. Loaders migrate any
// config carrying a different tag before handing it out.
const SchemaVersion = "2.1.0"

// Config is the root aggregate: the full persisted state of a user's
// shortcuts. Every Section and Item is reachable only through it.
//
// A Config is immutable-per-version: once handed to a store adapter or a
// subscriber callback it must not be mutated in place. All mutations go
// through the mutate package, which clones first.
type Config struct {
	Sections     []*Section `json:"sections"`
	Version      string     `json:"version"`
	LastModified int64      `json:"lastModified"` // unix ms
}

// Section is a top-level named grouping of items, ordered within a Config.
type Section struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`  // emoji or URL
	Color string `json:"color,omitempty"` // hex color for section theme
	Items []Item `json:"items"`
	Order int    `json:"order"`
}

// DefaultConfig returns the empty config used on first run.
func DefaultConfig() *Config {
	return &Config{
		Sections:     []*Section{},
		Version:      SchemaVersion,
		LastModified: time.Now().UnixMilli(),
	}
}

// NewID returns a new collision-resistant identifier for sections and items.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		Sections:     make([]*Section, 0, len(c.Sections)),
		Version:      c.Version,
		LastModified: c.LastModified,
	}
	for _, s := range c.Sections {
		out.Sections = append(out.Sections, s.Clone())
	}
	return out
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	cp := *s
	cp.Items = cloneItems(s.Items)
	return &cp
}

func cloneItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.CloneItem())
	}
	return out
}

// FindSection returns the section with the given id, or nil.
func (c *Config) FindSection(id string) *Section {
	for _, s := range c.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SortSections orders the sections slice by their Order field.
// Loaders call this so callers can rely on positional order.
func (c *Config) SortSections() {
	sort.SliceStable(c.Sections, func(i, j int) bool {
		return c.Sections[i].Order < c.Sections[j].Order
	})
}

// CountItems returns the total number of items (shortcuts and folders)
// across all sections, including nested folder contents.
func (c *Config) CountItems() int {
	n := 0
	for _, s := range c.Sections {
		n += countItems(s.Items)
	}
	return n
}

func countItems(items []Item) int {
	n := 0
	for _, it := range items {
		n++
		if f, ok := it.(*Folder); ok {
			n += countItems(f.Items)
		}
	}
	return n
}

// NormalizeOrders reassigns dense zero-based Order values matching the
// positional order of the slice. Call it after any structural change so
// sibling orders stay gap-free.
func NormalizeOrders(items []Item) {
	for i, it := range items {
		it.SetItemOrder(i)
	}
}

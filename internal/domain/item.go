package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ItemKind discriminates the two item shapes. It is resolved exactly once,
// at deserialization, and never re-inferred from field presence afterwards.
type ItemKind string

const (
	KindShortcut ItemKind = "shortcut"
	KindFolder   ItemKind = "folder"
)

// ShortcutType distinguishes plain links from parameterized templates.
type ShortcutType string

const (
	ShortcutDirect  ShortcutType = "direct"
	ShortcutDynamic ShortcutType = "dynamic"
)

// TemplateToken is the placeholder a dynamic shortcut's template must
// contain; it is replaced with the user-supplied input.
const TemplateToken = "{input}"

// Item is the recursive unit of the tree: a Shortcut or a Folder.
type Item interface {
	ItemID() string
	ItemOrder() int
	SetItemOrder(int)
	Kind() ItemKind
	CloneItem() Item
}

// Shortcut is a direct URL or a parameterized URL template with one
// user-supplied input.
type Shortcut struct {
	ID    string       `json:"id"`
	Type  ShortcutType `json:"type"`
	Label string       `json:"label"`

	// Direct links
	URL string `json:"url,omitempty"`

	// Dynamic links with input
	URLTemplate       string `json:"urlTemplate,omitempty"` // e.g. "https://amazon.com/orders/{input}"
	Placeholder       string `json:"placeholder,omitempty"`
	InputType         string `json:"inputType,omitempty"` // "text" | "number"
	ValidationRegex   string `json:"validationRegex,omitempty"`
	ValidationMessage string `json:"validationMessage,omitempty"`

	// Metadata
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// Folder is a named container of items, nestable without depth limit.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Items []Item `json:"items"`
	Order int    `json:"order"`
}

func (s *Shortcut) ItemID() string     { return s.ID }
func (s *Shortcut) ItemOrder() int     { return s.Order }
func (s *Shortcut) SetItemOrder(n int) { s.Order = n }
func (s *Shortcut) Kind() ItemKind     { return KindShortcut }
func (s *Shortcut) CloneItem() Item {
	cp := *s
	return &cp
}

func (f *Folder) ItemID() string     { return f.ID }
func (f *Folder) ItemOrder() int     { return f.Order }
func (f *Folder) SetItemOrder(n int) { f.Order = n }
func (f *Folder) Kind() ItemKind     { return KindFolder }
func (f *Folder) CloneItem() Item {
	cp := *f
	cp.Items = cloneItems(f.Items)
	return &cp
}

// Validate checks the shortcut invariants: direct shortcuts need a
// non-empty URL, dynamic ones a template containing the input token.
func (s *Shortcut) Validate() error {
	switch s.Type {
	case ShortcutDirect:
		if s.URL == "" {
			return errors.New("direct shortcut requires a url")
		}
	case ShortcutDynamic:
		if !strings.Contains(s.URLTemplate, TemplateToken) {
			return errors.Newf("dynamic shortcut template must contain %s", TemplateToken)
		}
	default:
		return errors.Newf("unknown shortcut type %q", s.Type)
	}
	return nil
}

// FindFolder locates a folder by id anywhere in the given item tree.
func FindFolder(items []Item, folderID string) *Folder {
	for _, it := range items {
		f, ok := it.(*Folder)
		if !ok {
			continue
		}
		if f.ID == folderID {
			return f
		}
		if found := FindFolder(f.Items, folderID); found != nil {
			return found
		}
	}
	return nil
}

// FindItem locates any item by id anywhere in the given item tree.
func FindItem(items []Item, itemID string) Item {
	for _, it := range items {
		if it.ItemID() == itemID {
			return it
		}
		if f, ok := it.(*Folder); ok {
			if found := FindItem(f.Items, itemID); found != nil {
				return found
			}
		}
	}
	return nil
}

// ContainsItem reports whether itemID is reachable from the given tree.
func ContainsItem(items []Item, itemID string) bool {
	return FindItem(items, itemID) != nil
}

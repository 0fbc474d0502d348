package mutate

import (
	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
)

// ShortcutData carries the caller-supplied fields of a new shortcut.
// Id and order are assigned here.
type ShortcutData struct {
	Type              domain.ShortcutType
	Label             string
	URL               string
	URLTemplate       string
	Placeholder       string
	InputType         string
	ValidationRegex   string
	ValidationMessage string
	Icon              string
	Description       string
}

// ShortcutUpdate carries the fields of a partial shortcut update.
type ShortcutUpdate struct {
	Type              *domain.ShortcutType
	Label             *string
	URL               *string
	URLTemplate       *string
	Placeholder       *string
	InputType         *string
	ValidationRegex   *string
	ValidationMessage *string
	Icon              *string
	Description       *string
}

// FolderUpdate carries the fields of a partial folder update. A folder's
// items are never replaced through an update; they change through
// add/delete/move/reorder only.
type FolderUpdate struct {
	Name *string
	Icon *string
}

// AddShortcut appends a new shortcut to the section root, or to the folder
// identified by parentFolderID (located recursively) when non-empty.
func AddShortcut(cfg *domain.Config, sectionID string, data ShortcutData, parentFolderID string) (*domain.Config, *domain.Shortcut, error) {
	sc := &domain.Shortcut{
		ID:                domain.NewID(),
		Type:              data.Type,
		Label:             data.Label,
		URL:               data.URL,
		URLTemplate:       data.URLTemplate,
		Placeholder:       data.Placeholder,
		InputType:         data.InputType,
		ValidationRegex:   data.ValidationRegex,
		ValidationMessage: data.ValidationMessage,
		Icon:              data.Icon,
		Description:       data.Description,
	}
	if err := sc.Validate(); err != nil {
		return nil, nil, errors.Mark(err, errs.ErrInvalidShortcut)
	}

	next, err := appendItem(cfg, sectionID, parentFolderID, sc)
	if err != nil {
		return nil, nil, err
	}
	return next, sc, nil
}

// AddFolder appends a new empty folder to the section root, or nested
// inside parentFolderID when non-empty.
func AddFolder(cfg *domain.Config, sectionID, name, icon, parentFolderID string) (*domain.Config, *domain.Folder, error) {
	f := &domain.Folder{
		ID:    domain.NewID(),
		Name:  name,
		Icon:  icon,
		Items: []domain.Item{},
	}
	next, err := appendItem(cfg, sectionID, parentFolderID, f)
	if err != nil {
		return nil, nil, err
	}
	return next, f, nil
}

func appendItem(cfg *domain.Config, sectionID, parentFolderID string, item domain.Item) (*domain.Config, error) {
	next := cfg.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return nil, errs.NotFoundf("section %s", sectionID)
	}

	if parentFolderID != "" {
		parent := domain.FindFolder(sec.Items, parentFolderID)
		if parent == nil {
			return nil, errs.NotFoundf("folder %s in section %s", parentFolderID, sectionID)
		}
		item.SetItemOrder(len(parent.Items))
		parent.Items = append(parent.Items, item)
		return next, nil
	}

	item.SetItemOrder(len(sec.Items))
	sec.Items = append(sec.Items, item)
	return next, nil
}

// UpdateShortcut merges the given fields into the shortcut, located
// anywhere in the tree (nested folders included).
func UpdateShortcut(cfg *domain.Config, shortcutID string, upd ShortcutUpdate) (*domain.Config, error) {
	next := cfg.Clone()
	item := findAnywhere(next, shortcutID)
	if item == nil {
		return nil, errs.NotFoundf("shortcut %s", shortcutID)
	}
	sc, ok := item.(*domain.Shortcut)
	if !ok {
		return nil, errs.NotFoundf("item %s is a folder, not a shortcut", shortcutID)
	}

	if upd.Type != nil {
		sc.Type = *upd.Type
	}
	if upd.Label != nil {
		sc.Label = *upd.Label
	}
	if upd.URL != nil {
		sc.URL = *upd.URL
	}
	if upd.URLTemplate != nil {
		sc.URLTemplate = *upd.URLTemplate
	}
	if upd.Placeholder != nil {
		sc.Placeholder = *upd.Placeholder
	}
	if upd.InputType != nil {
		sc.InputType = *upd.InputType
	}
	if upd.ValidationRegex != nil {
		sc.ValidationRegex = *upd.ValidationRegex
	}
	if upd.ValidationMessage != nil {
		sc.ValidationMessage = *upd.ValidationMessage
	}
	if upd.Icon != nil {
		sc.Icon = *upd.Icon
	}
	if upd.Description != nil {
		sc.Description = *upd.Description
	}

	if err := sc.Validate(); err != nil {
		return nil, errors.Mark(err, errs.ErrInvalidShortcut)
	}
	return next, nil
}

// UpdateFolder merges the given fields into the folder, located anywhere
// in the tree. The folder's items are preserved.
func UpdateFolder(cfg *domain.Config, folderID string, upd FolderUpdate) (*domain.Config, error) {
	next := cfg.Clone()
	item := findAnywhere(next, folderID)
	if item == nil {
		return nil, errs.NotFoundf("folder %s", folderID)
	}
	f, ok := item.(*domain.Folder)
	if !ok {
		return nil, errs.NotFoundf("item %s is a shortcut, not a folder", folderID)
	}

	if upd.Name != nil {
		f.Name = *upd.Name
	}
	if upd.Icon != nil {
		f.Icon = *upd.Icon
	}
	return next, nil
}

// DeleteItem removes a shortcut or folder (and its whole subtree) wherever
// it sits under the section, then renormalizes the surviving siblings'
// orders at that level.
func DeleteItem(cfg *domain.Config, sectionID, itemID string) (*domain.Config, error) {
	next := cfg.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return nil, errs.NotFoundf("section %s", sectionID)
	}
	if !deleteRecursively(&sec.Items, itemID) {
		return nil, errs.NotFoundf("item %s in section %s", itemID, sectionID)
	}
	return next, nil
}

// ReorderItems reassigns item orders in a section root or folder to match
// the given id list. Dead ids are silently dropped, as are items missing
// from the list (drag-and-drop hands us the authoritative ordering).
func ReorderItems(cfg *domain.Config, sectionID string, orderedIDs []string, parentFolderID string) (*domain.Config, error) {
	next := cfg.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return nil, errs.NotFoundf("section %s", sectionID)
	}

	container := &sec.Items
	if parentFolderID != "" {
		parent := domain.FindFolder(sec.Items, parentFolderID)
		if parent == nil {
			return nil, errs.NotFoundf("folder %s in section %s", parentFolderID, sectionID)
		}
		container = &parent.Items
	}

	byID := make(map[string]domain.Item, len(*container))
	for _, it := range *container {
		byID[it.ItemID()] = it
	}
	reordered := make([]domain.Item, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if it, ok := byID[id]; ok {
			reordered = append(reordered, it)
		}
	}
	domain.NormalizeOrders(reordered)
	*container = reordered
	return next, nil
}

// findAnywhere locates an item by id across every section.
func findAnywhere(cfg *domain.Config, itemID string) domain.Item {
	for _, sec := range cfg.Sections {
		if it := domain.FindItem(sec.Items, itemID); it != nil {
			return it
		}
	}
	return nil
}

// deleteRecursively removes the first item with the given id from the tree
// and renormalizes orders at the level it was removed from.
func deleteRecursively(items *[]domain.Item, itemID string) bool {
	for i, it := range *items {
		if it.ItemID() == itemID {
			*items = append((*items)[:i], (*items)[i+1:]...)
			domain.NormalizeOrders(*items)
			return true
		}
		if f, ok := it.(*domain.Folder); ok {
			if deleteRecursively(&f.Items, itemID) {
				return true
			}
		}
	}
	return false
}

package domain

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// The persisted JSON keeps the historical wire shape: shortcuts carry a
// "type" field ("direct"|"dynamic"), folders carry an "items" array plus
// an "isFolder" marker. The kind is resolved here, once, while decoding.

type folderWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Items    []Item `json:"items"`
	Order    int    `json:"order"`
	IsFolder bool   `json:"isFolder"`
}

// MarshalJSON emits the folder with its isFolder discriminator and a
// non-null items array.
func (f *Folder) MarshalJSON() ([]byte, error) {
	items := f.Items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(folderWire{
		ID:       f.ID,
		Name:     f.Name,
		Icon:     f.Icon,
		Items:    items,
		Order:    f.Order,
		IsFolder: true,
	})
}

func (f *Folder) UnmarshalJSON(data []byte) error {
	var shadow struct {
		ID    string            `json:"id"`
		Name  string            `json:"name"`
		Icon  string            `json:"icon"`
		Items []json.RawMessage `json:"items"`
		Order int               `json:"order"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	items, err := decodeItems(shadow.Items)
	if err != nil {
		return err
	}
	f.ID = shadow.ID
	f.Name = shadow.Name
	f.Icon = shadow.Icon
	f.Items = items
	f.Order = shadow.Order
	return nil
}

// MarshalJSON keeps the section's items array non-null in the persisted form.
func (s *Section) MarshalJSON() ([]byte, error) {
	type alias Section
	cp := alias(*s)
	if cp.Items == nil {
		cp.Items = []Item{}
	}
	return json.Marshal(cp)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var shadow struct {
		ID    string            `json:"id"`
		Name  string            `json:"name"`
		Icon  string            `json:"icon"`
		Color string            `json:"color"`
		Items []json.RawMessage `json:"items"`
		Order int               `json:"order"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	items, err := decodeItems(shadow.Items)
	if err != nil {
		return err
	}
	s.ID = shadow.ID
	s.Name = shadow.Name
	s.Icon = shadow.Icon
	s.Color = shadow.Color
	s.Items = items
	s.Order = shadow.Order
	return nil
}

func decodeItems(raws []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		it, err := decodeItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func decodeItem(raw json.RawMessage) (Item, error) {
	var probe struct {
		IsFolder bool              `json:"isFolder"`
		Items    []json.RawMessage `json:"items"`
		Type     ShortcutType      `json:"type"`
		URL      string            `json:"url"`
		Template string            `json:"urlTemplate"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	if probe.IsFolder || probe.Items != nil {
		var f Folder
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		return &f, nil
	}

	var s Shortcut
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	// Oldest configs predate the explicit type field; infer it once here.
	if s.Type == "" {
		switch {
		case probe.URL != "":
			s.Type = ShortcutDirect
		case probe.Template != "":
			s.Type = ShortcutDynamic
		default:
			return nil, errors.Newf("item %q is neither a folder nor a recognizable shortcut", s.ID)
		}
	}
	return &s, nil
}

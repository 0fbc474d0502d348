package domain

import (
	"encoding/json"
	"testing"
)

func TestConfigRoundTripNestedFolders(t *testing.T) {
	cfg := &Config{
		Version: SchemaVersion,
		Sections: []*Section{
			{
				ID:   "s1",
				Name: "Work",
				Items: []Item{
					&Shortcut{ID: "sc1", Type: ShortcutDirect, Label: "Gmail", URL: "https://mail.google.com", Order: 0},
					&Folder{
						ID:   "f1",
						Name: "Tools",
						Items: []Item{
							&Shortcut{ID: "sc2", Type: ShortcutDynamic, Label: "Orders", URLTemplate: "https://amazon.com/orders/{input}", Order: 0},
							&Folder{ID: "f2", Name: "Nested", Items: []Item{}, Order: 1},
						},
						Order: 1,
					},
				},
				Order: 0,
			},
		},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Config
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(got.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(got.Sections))
	}
	sec := got.Sections[0]
	if len(sec.Items) != 2 {
		t.Fatalf("section items = %d, want 2", len(sec.Items))
	}

	sc, ok := sec.Items[0].(*Shortcut)
	if !ok {
		t.Fatalf("item 0 decoded as %T, want *Shortcut", sec.Items[0])
	}
	if sc.Kind() != KindShortcut || sc.Type != ShortcutDirect {
		t.Errorf("shortcut kind/type = %v/%v, want shortcut/direct", sc.Kind(), sc.Type)
	}

	f, ok := sec.Items[1].(*Folder)
	if !ok {
		t.Fatalf("item 1 decoded as %T, want *Folder", sec.Items[1])
	}
	if f.Kind() != KindFolder {
		t.Errorf("folder kind = %v, want folder", f.Kind())
	}
	if len(f.Items) != 2 {
		t.Fatalf("folder items = %d, want 2", len(f.Items))
	}
	if _, ok := f.Items[1].(*Folder); !ok {
		t.Errorf("nested item decoded as %T, want *Folder", f.Items[1])
	}
}

func TestFolderMarshalCarriesDiscriminator(t *testing.T) {
	data, err := json.Marshal(&Folder{ID: "f1", Name: "Tools"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if string(raw["isFolder"]) != "true" {
		t.Errorf("isFolder = %s, want true", raw["isFolder"])
	}
	if string(raw["items"]) != "[]" {
		t.Errorf("items = %s, want [] (never null)", raw["items"])
	}
}

func TestDecodeItemLegacyTypeInference(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantKind ItemKind
		wantType ShortcutType
		wantErr  bool
	}{
		{
			name:     "legacy direct shortcut without type",
			payload:  `{"id":"a","label":"Gmail","url":"https://mail.google.com"}`,
			wantKind: KindShortcut,
			wantType: ShortcutDirect,
		},
		{
			name:     "legacy dynamic shortcut without type",
			payload:  `{"id":"b","label":"Orders","urlTemplate":"https://x/{input}"}`,
			wantKind: KindShortcut,
			wantType: ShortcutDynamic,
		},
		{
			name:     "folder without isFolder marker but with items",
			payload:  `{"id":"c","name":"Tools","items":[]}`,
			wantKind: KindFolder,
		},
		{
			name:     "folder with isFolder marker",
			payload:  `{"id":"d","name":"Tools","isFolder":true}`,
			wantKind: KindFolder,
		},
		{
			name:    "unrecognizable item",
			payload: `{"id":"e","label":"mystery"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := decodeItem(json.RawMessage(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatal("decodeItem() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeItem() error = %v", err)
			}
			if it.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", it.Kind(), tt.wantKind)
			}
			if sc, ok := it.(*Shortcut); ok && sc.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", sc.Type, tt.wantType)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := &Config{
		Version: SchemaVersion,
		Sections: []*Section{
			{
				ID:   "s1",
				Name: "Work",
				Items: []Item{
					&Folder{ID: "f1", Name: "Tools", Items: []Item{
						&Shortcut{ID: "sc1", Type: ShortcutDirect, Label: "Gmail", URL: "https://mail.google.com"},
					}},
				},
			},
		},
	}

	clone := cfg.Clone()
	clone.Sections[0].Name = "Changed"
	clone.Sections[0].Items[0].(*Folder).Items[0].(*Shortcut).Label = "Changed"

	if cfg.Sections[0].Name != "Work" {
		t.Errorf("clone mutation leaked into original section name")
	}
	if cfg.Sections[0].Items[0].(*Folder).Items[0].(*Shortcut).Label != "Gmail" {
		t.Errorf("clone mutation leaked into original nested shortcut")
	}
}

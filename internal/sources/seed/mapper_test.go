package seed

import (
	"testing"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

func TestMapperMapConfig(t *testing.T) {
	seed := &SeedConfig{
		Sections: []SectionEntry{
			{
				Name:  "Work",
				Icon:  "💼",
				Color: "#336699",
				Items: []ItemEntry{
					{Label: "Gmail", URL: "https://mail.google.com"},
					{Label: "Orders", URLTemplate: "https://amazon.com/orders/{input}", Placeholder: "order id"},
					{
						Name: "Tools",
						Items: []ItemEntry{
							{Label: "GitHub", URL: "https://github.com"},
						},
					},
					{Label: "useless entry with no destination"},
				},
			},
			{Name: ""}, // unnamed sections are dropped
		},
	}

	cfg, err := NewMapper().MapConfig(seed)
	if err != nil {
		t.Fatalf("MapConfig() error = %v", err)
	}

	if len(cfg.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(cfg.Sections))
	}
	sec := cfg.Sections[0]
	if sec.ID == "" {
		t.Error("section got no id")
	}
	if sec.Name != "Work" || sec.Icon != "💼" || sec.Color != "#336699" {
		t.Errorf("section fields = %v/%v/%v", sec.Name, sec.Icon, sec.Color)
	}

	// The destination-less entry is skipped, leaving three.
	if len(sec.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(sec.Items))
	}
	for i, it := range sec.Items {
		if it.ItemOrder() != i {
			t.Errorf("item %d Order = %d, want %d", i, it.ItemOrder(), i)
		}
		if it.ItemID() == "" {
			t.Errorf("item %d got no id", i)
		}
	}

	direct := sec.Items[0].(*domain.Shortcut)
	if direct.Type != domain.ShortcutDirect || direct.URL != "https://mail.google.com" {
		t.Errorf("direct shortcut = %v %v", direct.Type, direct.URL)
	}
	dynamic := sec.Items[1].(*domain.Shortcut)
	if dynamic.Type != domain.ShortcutDynamic || dynamic.Placeholder != "order id" {
		t.Errorf("dynamic shortcut = %v %v", dynamic.Type, dynamic.Placeholder)
	}
	folder, ok := sec.Items[2].(*domain.Folder)
	if !ok || folder.Name != "Tools" || len(folder.Items) != 1 {
		t.Fatalf("folder = %v", sec.Items[2])
	}
}

func TestMapConfigEmptySeed(t *testing.T) {
	if _, err := NewMapper().MapConfig(&SeedConfig{}); err == nil {
		t.Error("MapConfig() with no sections should return an error")
	}
}

package mutate

import (
	"testing"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
)

func TestAddSection(t *testing.T) {
	cfg := domain.DefaultConfig()

	next, sec := AddSection(cfg, "Work", "💼", "#336699")
	if sec.Name != "Work" || sec.Icon != "💼" || sec.Color != "#336699" {
		t.Errorf("section fields = %v/%v/%v", sec.Name, sec.Icon, sec.Color)
	}
	if sec.ID == "" {
		t.Error("section got no id")
	}
	if sec.Order != 0 {
		t.Errorf("first section Order = %d, want 0", sec.Order)
	}
	if len(next.Sections) != 1 {
		t.Fatalf("next has %d sections, want 1", len(next.Sections))
	}
	if len(cfg.Sections) != 0 {
		t.Error("input config was mutated")
	}

	next2, sec2 := AddSection(next, "Personal", "", "")
	if sec2.Order != 1 {
		t.Errorf("second section Order = %d, want 1", sec2.Order)
	}
	if len(next2.Sections) != 2 {
		t.Errorf("next2 has %d sections, want 2", len(next2.Sections))
	}
}

func TestUpdateSection(t *testing.T) {
	cfg, sec := AddSection(domain.DefaultConfig(), "Work", "💼", "#336699")

	newName := "Job"
	next, err := UpdateSection(cfg, sec.ID, SectionUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateSection() error = %v", err)
	}
	got := next.FindSection(sec.ID)
	if got.Name != "Job" {
		t.Errorf("Name = %s, want Job", got.Name)
	}
	if got.Icon != "💼" {
		t.Errorf("untouched Icon = %s, want 💼", got.Icon)
	}

	if _, err := UpdateSection(cfg, "nope", SectionUpdate{}); !errs.IsNotFound(err) {
		t.Errorf("UpdateSection(dead id) error = %v, want not found", err)
	}
}

func TestDeleteSectionRenormalizesOrders(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg, a := AddSection(cfg, "A", "", "")
	cfg, b := AddSection(cfg, "B", "", "")
	cfg, c := AddSection(cfg, "C", "", "")

	next, err := DeleteSection(cfg, b.ID)
	if err != nil {
		t.Fatalf("DeleteSection() error = %v", err)
	}
	if len(next.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(next.Sections))
	}
	if next.Sections[0].ID != a.ID || next.Sections[0].Order != 0 {
		t.Errorf("section 0 = %s order %d", next.Sections[0].ID, next.Sections[0].Order)
	}
	if next.Sections[1].ID != c.ID || next.Sections[1].Order != 1 {
		t.Errorf("section 1 = %s order %d", next.Sections[1].ID, next.Sections[1].Order)
	}

	if _, err := DeleteSection(cfg, "nope"); !errs.IsNotFound(err) {
		t.Errorf("DeleteSection(dead id) error = %v, want not found", err)
	}
}

func TestReorderSectionsToleratesDeadIDs(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg, a := AddSection(cfg, "A", "", "")
	cfg, b := AddSection(cfg, "B", "", "")

	next := ReorderSections(cfg, []string{b.ID, "dead-id", a.ID})
	if len(next.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(next.Sections))
	}
	if next.Sections[0].ID != b.ID || next.Sections[1].ID != a.ID {
		t.Errorf("order = %s,%s want %s,%s", next.Sections[0].ID, next.Sections[1].ID, b.ID, a.ID)
	}
	for i, s := range next.Sections {
		if s.Order != i {
			t.Errorf("section %d Order = %d, want %d", i, s.Order, i)
		}
	}
}

package seed

import (
	"fmt"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// Mapper converts a parsed seed file into a domain config.
type Mapper struct{}

// NewMapper creates a new seed mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapConfig converts the seed entries into a Config with fresh ids and
// dense orders. Entries without a usable destination are skipped.
func (m *Mapper) MapConfig(seed *SeedConfig) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	for _, entry := range seed.Sections {
		if entry.Name == "" {
			continue
		}
		sec := &domain.Section{
			ID:    domain.NewID(),
			Name:  entry.Name,
			Icon:  entry.Icon,
			Color: entry.Color,
			Items: m.mapItems(entry.Items),
			Order: len(cfg.Sections),
		}
		cfg.Sections = append(cfg.Sections, sec)
	}

	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("no valid sections found in seed")
	}
	return cfg, nil
}

func (m *Mapper) mapItems(entries []ItemEntry) []domain.Item {
	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		if entry.Items != nil || (entry.Name != "" && entry.Label == "") {
			folder := &domain.Folder{
				ID:    domain.NewID(),
				Name:  entry.Name,
				Icon:  entry.Icon,
				Items: m.mapItems(entry.Items),
				Order: len(items),
			}
			items = append(items, folder)
			continue
		}

		sc := &domain.Shortcut{
			ID:          domain.NewID(),
			Label:       entry.Label,
			Icon:        entry.Icon,
			Description: entry.Description,
			Order:       len(items),
		}
		switch {
		case entry.URL != "":
			sc.Type = domain.ShortcutDirect
			sc.URL = entry.URL
		case entry.URLTemplate != "":
			sc.Type = domain.ShortcutDynamic
			sc.URLTemplate = entry.URLTemplate
			sc.Placeholder = entry.Placeholder
		default:
			// Neither url nor template: nothing to open, skip it.
			continue
		}
		items = append(items, sc)
	}
	return items
}

package domain

import "strings"

// Match is a single search hit, with enough context to render it:
// the owning section and the folder path down to the item.
type Match struct {
	SectionID   string   `json:"sectionId"`
	SectionName string   `json:"sectionName"`
	Path        []string `json:"path,omitempty"` // folder names from section root to the item
	Item        Item     `json:"item"`
}

// Search walks the whole tree and returns items whose label, name, url or
// template contains the query (case-insensitive). Folders match on name.
func (c *Config) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := make([]Match, 0)
	for _, sec := range c.Sections {
		matches = append(matches, searchItems(sec, nil, sec.Items, query)...)
	}
	return matches
}

func searchItems(sec *Section, path []string, items []Item, query string) []Match {
	var matches []Match
	for _, it := range items {
		switch v := it.(type) {
		case *Shortcut:
			if itemMatches(query, v.Label, v.URL, v.URLTemplate, v.Description) {
				matches = append(matches, Match{
					SectionID:   sec.ID,
					SectionName: sec.Name,
					Path:        append([]string(nil), path...),
					Item:        v,
				})
			}
		case *Folder:
			if itemMatches(query, v.Name) {
				matches = append(matches, Match{
					SectionID:   sec.ID,
					SectionName: sec.Name,
					Path:        append([]string(nil), path...),
					Item:        v,
				})
			}
			childPath := append(append([]string(nil), path...), v.Name)
			matches = append(matches, searchItems(sec, childPath, v.Items, query)...)
		}
	}
	return matches
}

func itemMatches(query string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

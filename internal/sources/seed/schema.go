package seed

// SectionEntry represents a single section in the seed YAML.
type SectionEntry struct {
	Name  string      `yaml:"name"`
	Icon  string      `yaml:"icon"`
	Color string      `yaml:"color"`
	Items []ItemEntry `yaml:"items"`
}

// ItemEntry represents a shortcut or folder in the seed YAML. An entry
// with a non-nil items list is a folder; everything else is a shortcut.
type ItemEntry struct {
	Label       string `yaml:"label"`
	URL         string `yaml:"url"`
	URLTemplate string `yaml:"urlTemplate"`
	Placeholder string `yaml:"placeholder"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`

	// Folder fields
	Name  string      `yaml:"name"`
	Items []ItemEntry `yaml:"items"`
}

// SeedConfig is the root structure of the seed file.
type SeedConfig struct {
	Sections []SectionEntry `yaml:"sections"`
}

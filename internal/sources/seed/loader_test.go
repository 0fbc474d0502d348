package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
sections:
  - name: Work
    icon: "💼"
    items:
      - label: Gmail
        url: https://mail.google.com
      - name: Tools
        items:
          - label: GitHub
            url: https://github.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Sections) != 1 || cfg.Sections[0].Name != "Work" {
		t.Fatalf("sections = %v", cfg.Sections)
	}
	if len(cfg.Sections[0].Items) != 2 {
		t.Errorf("items = %d, want 2", len(cfg.Sections[0].Items))
	}
	if cfg.Sections[0].Items[1].Items == nil {
		t.Error("nested folder items not parsed")
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Error("Load() on missing file should return an error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sections: [:::"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() on invalid yaml should return an error")
	}
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if len(cfg.Categories) == 0 {
		t.Fatalf("default config must carry categories")
	}

	names := make(map[string]Category, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		if _, dup := names[cat.Name]; dup {
			t.Fatalf("duplicate default category %q", cat.Name)
		}
		if cat.Query == "" {
			t.Fatalf("default category %q has no query", cat.Name)
		}
		names[cat.Name] = cat
	}

	if !names["Chupetes"].CheckTitles || !names["Chupetes"].WeeklyLimit {
		t.Fatalf("Chupetes must be title-checked and weekly-limited: %+v", names["Chupetes"])
	}
	for _, exempt := range cfg.RepeatExempt {
		if _, known := names[exempt]; !known {
			t.Fatalf("repeat-exempt entry %q names no category", exempt)
		}
	}
}

func TestCooldownHelpers(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		ClassCooldownHours:  map[string]int{"higiene": 6},
		GlobalCooldownHours: 3,
	}
	if got := cfg.ClassCooldowns()["higiene"]; got != 6*time.Hour {
		t.Fatalf("class cooldown = %v, want 6h", got)
	}
	if got := cfg.GlobalCooldown(); got != 3*time.Hour {
		t.Fatalf("global cooldown = %v, want 3h", got)
	}

	empty := &Config{}
	if empty.ClassCooldowns() != nil {
		t.Fatalf("no class cooldowns must yield nil")
	}
	if empty.GlobalCooldown() != 0 {
		t.Fatalf("unset global cooldown must be zero")
	}
}

func TestLoadValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{
        "categories": [
            {"name": "Chupetes", "emoji": "🍼", "query": "/s?k=chupetes", "check_titles": true}
        ],
        "priority_brands": ["suavinex"],
        "global_cooldown_hours": 2
    }`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0].Name != "Chupetes" {
		t.Fatalf("categories not decoded: %+v", cfg.Categories)
	}
	if !cfg.Categories[0].CheckTitles {
		t.Fatalf("check_titles flag lost in decode")
	}
	if cfg.GlobalCooldown() != 2*time.Hour {
		t.Fatalf("global cooldown = %v, want 2h", cfg.GlobalCooldown())
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"categories": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("empty category list must fail validation")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("missing catalog file must fail")
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 0.3
	cfg.Language = "ar"
	cfg.HistoryDB = "/tmp/rodcut.db"
	cfg.RecentJobs = []string{"/tmp/a.json", "/tmp/b.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerfWidth != 0.3 {
		t.Errorf("expected DefaultKerfWidth=0.3, got %f", loaded.DefaultKerfWidth)
	}
	if loaded.Language != "ar" {
		t.Errorf("expected Language=ar, got %s", loaded.Language)
	}
	if loaded.HistoryDB != "/tmp/rodcut.db" {
		t.Errorf("expected HistoryDB to round-trip, got %q", loaded.HistoryDB)
	}
	if len(loaded.RecentJobs) != 2 {
		t.Errorf("expected 2 recent jobs, got %d", len(loaded.RecentJobs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultKerfWidth != defaults.DefaultKerfWidth {
		t.Errorf("expected default kerf width %f, got %f", defaults.DefaultKerfWidth, cfg.DefaultKerfWidth)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected listen addr :8080, got %s", cfg.ListenAddr)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"unit":"mm"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Unit != "mm" {
		t.Errorf("expected unit mm, got %s", cfg.Unit)
	}
	if cfg.DefaultStockLength != 600 {
		t.Errorf("expected default stock length 600, got %f", cfg.DefaultStockLength)
	}
	if cfg.RecentJobs == nil {
		t.Error("expected RecentJobs to be non-nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".rodcut" {
		t.Errorf("expected parent dir .rodcut, got %s", filepath.Dir(path))
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := model.DefaultAppConfig()
	AddRecentJob(&cfg, "a")
	AddRecentJob(&cfg, "b")
	AddRecentJob(&cfg, "a")

	if len(cfg.RecentJobs) != 2 || cfg.RecentJobs[0] != "a" || cfg.RecentJobs[1] != "b" {
		t.Errorf("unexpected recent jobs %v", cfg.RecentJobs)
	}

	for i := 0; i < 20; i++ {
		AddRecentJob(&cfg, string(rune('c'+i)))
	}
	if len(cfg.RecentJobs) != maxRecentJobs {
		t.Errorf("expected %d recent jobs, got %d", maxRecentJobs, len(cfg.RecentJobs))
	}
}

package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultKerfWidth != defaults.KerfWidth {
		t.Errorf("KerfWidth mismatch: config=%f settings=%f", cfg.DefaultKerfWidth, defaults.KerfWidth)
	}
	if cfg.DefaultSearchBudget != defaults.SearchBudget {
		t.Errorf("SearchBudget mismatch: config=%d settings=%d", cfg.DefaultSearchBudget, defaults.SearchBudget)
	}
	if cfg.DefaultMaxCandidates != defaults.MaxCandidates {
		t.Errorf("MaxCandidates mismatch: config=%d settings=%d", cfg.DefaultMaxCandidates, defaults.MaxCandidates)
	}
	if cfg.Language != "en" {
		t.Errorf("expected default language=en, got %s", cfg.Language)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerfWidth = 0.3
	cfg.DefaultSearchBudget = 500
	cfg.DefaultMinEfficiencyRatio = 0.8

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.KerfWidth != 0.3 {
		t.Errorf("expected KerfWidth=0.3, got %f", s.KerfWidth)
	}
	if s.SearchBudget != 500 {
		t.Errorf("expected SearchBudget=500, got %d", s.SearchBudget)
	}
	if s.MinEfficiencyRatio != 0.8 {
		t.Errorf("expected MinEfficiencyRatio=0.8, got %f", s.MinEfficiencyRatio)
	}
}

func TestApplyToSettingsIgnoresInvalid(t *testing.T) {
	cfg := AppConfig{DefaultKerfWidth: -1, DefaultMinEfficiencyRatio: 1.5}

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s != DefaultSettings() {
		t.Errorf("expected settings unchanged, got %+v", s)
	}
}

func TestAppConfigNewJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Unit = "mm"
	cfg.DefaultStockLength = 6000
	cfg.DefaultStockQuantity = 4
	cfg.DefaultKerfWidth = 3

	job := cfg.NewJob()
	if job.Unit != "mm" {
		t.Errorf("expected unit mm, got %s", job.Unit)
	}
	if job.Settings.KerfWidth != 3 {
		t.Errorf("expected kerf 3, got %f", job.Settings.KerfWidth)
	}
	if len(job.Stocks) != 1 || job.Stocks[0].Length != 6000 || job.Stocks[0].Quantity != 4 {
		t.Errorf("unexpected stocks %+v", job.Stocks)
	}
}

package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultKerfWidth          float64 `json:"default_kerf_width"`
	DefaultStockLength        float64 `json:"default_stock_length"`
	DefaultStockQuantity      int     `json:"default_stock_quantity"`
	DefaultSearchBudget       int     `json:"default_search_budget"`
	DefaultMinEfficiencyRatio float64 `json:"default_min_efficiency_ratio"`
	DefaultMaxCandidates      int     `json:"default_max_candidates"`

	// Reporting
	Unit             string  `json:"unit"`     // "cm", "mm" or "in"
	Language         string  `json:"language"` // "en" or "ar"
	MinOffcutLength  float64 `json:"min_offcut_length"`
	ReportTitle      string  `json:"report_title"`
	ChromeExecutable string  `json:"chrome_executable"` // empty = autodetect

	// Storage and serving
	HistoryDB  string `json:"history_db"` // empty = history disabled
	ListenAddr string `json:"listen_addr"`

	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultKerfWidth:          defaults.KerfWidth,
		DefaultStockLength:        600,
		DefaultStockQuantity:      10,
		DefaultSearchBudget:       defaults.SearchBudget,
		DefaultMinEfficiencyRatio: defaults.MinEfficiencyRatio,
		DefaultMaxCandidates:      defaults.MaxCandidates,
		Unit:                      "cm",
		Language:                  "en",
		MinOffcutLength:           MinOffcutLength,
		ReportTitle:               "Aluminum Rod Waste Reducer",
		HistoryDB:                 "",
		ListenAddr:                ":8080",
		RecentJobs:                []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a CutSettings struct.
// This is used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	if c.DefaultKerfWidth > 0 {
		s.KerfWidth = c.DefaultKerfWidth
	}
	if c.DefaultSearchBudget > 0 {
		s.SearchBudget = c.DefaultSearchBudget
	}
	if c.DefaultMinEfficiencyRatio > 0 && c.DefaultMinEfficiencyRatio <= 1 {
		s.MinEfficiencyRatio = c.DefaultMinEfficiencyRatio
	}
	if c.DefaultMaxCandidates > 0 {
		s.MaxCandidates = c.DefaultMaxCandidates
	}
}

// NewJob creates a job seeded with this configuration's defaults.
func (c AppConfig) NewJob() Job {
	job := NewJob()
	c.ApplyToSettings(&job.Settings)
	if c.Unit != "" {
		job.Unit = c.Unit
	}
	if c.DefaultStockLength > 0 && c.DefaultStockQuantity > 0 {
		job.Stocks = []RodSpec{NewRodSpec("Standard", c.DefaultStockLength, c.DefaultStockQuantity)}
	}
	return job
}

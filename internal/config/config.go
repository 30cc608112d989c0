package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

type ProjectConfig struct {
	Project    string           `yaml:"project"`
	Version    int              `yaml:"version"`
	Nomad      NomadConfig      `yaml:"nomad"`
	Store      StoreConfig      `yaml:"store"`
	Extraction ExtractionConfig `yaml:"extraction"`
}

// NomadConfig addresses the remote entry archive. Token may be left empty in
// the file and supplied through NOMADGRAPH_TOKEN instead, so credentials
// stay out of checked-in configs.
type NomadConfig struct {
	BaseURL   string  `yaml:"base_url"`
	Token     string  `yaml:"token"`
	PageSize  int     `yaml:"page_size"`
	MaxPages  int     `yaml:"max_pages"`
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// StoreConfig selects and addresses the graph backend. URI, username,
// password, and database apply to the bolt backend; dsn to postgres.
// Password falls back to NOMADGRAPH_STORE_PASSWORD.
type StoreConfig struct {
	Backend  string `yaml:"backend"`
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	DSN      string `yaml:"dsn"`
}

// ExtractionConfig tunes reconstruction-run behaviour.
type ExtractionConfig struct {
	BatchSize       int  `yaml:"batch_size"`
	BatchPauseMS    int  `yaml:"batch_pause_ms"`
	SampleThreshold int  `yaml:"sample_threshold"`
	SampleLimit     int  `yaml:"sample_limit"`
	PreviewSize     int  `yaml:"preview_size"`
	IncludeFiles    bool `yaml:"include_files"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Nomad.PageSize == 0 {
		cfg.Nomad.PageSize = 100
	}
	if cfg.Nomad.MaxPages == 0 {
		cfg.Nomad.MaxPages = 50
	}
	if cfg.Nomad.RateLimit == 0 {
		cfg.Nomad.RateLimit = 10
	}
	if cfg.Nomad.RateBurst == 0 {
		cfg.Nomad.RateBurst = 5
	}
	if cfg.Nomad.Token == "" {
		cfg.Nomad.Token = os.Getenv("NOMADGRAPH_TOKEN")
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendBolt
	}
	if cfg.Store.Password == "" {
		cfg.Store.Password = os.Getenv("NOMADGRAPH_STORE_PASSWORD")
	}

	if cfg.Extraction.BatchSize == 0 {
		cfg.Extraction.BatchSize = 20
	}
	if cfg.Extraction.BatchPauseMS == 0 {
		cfg.Extraction.BatchPauseMS = 500
	}
	if cfg.Extraction.SampleThreshold == 0 {
		cfg.Extraction.SampleThreshold = 1000
	}
	if cfg.Extraction.SampleLimit == 0 {
		cfg.Extraction.SampleLimit = 500
	}
	if cfg.Extraction.PreviewSize == 0 {
		cfg.Extraction.PreviewSize = 50
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Store.Backend {
	case BackendBolt:
		if strings.TrimSpace(cfg.Store.URI) == "" {
			return fmt.Errorf("store uri is required for the bolt backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("store dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	if cfg.Nomad.PageSize < 1 || cfg.Nomad.PageSize > 10000 {
		return fmt.Errorf("nomad page_size out of range: %d", cfg.Nomad.PageSize)
	}
	if cfg.Nomad.MaxPages < 1 {
		return fmt.Errorf("nomad max_pages must be positive: %d", cfg.Nomad.MaxPages)
	}
	if cfg.Nomad.RateLimit <= 0 {
		return fmt.Errorf("nomad rate_limit must be positive: %v", cfg.Nomad.RateLimit)
	}

	if cfg.Extraction.BatchSize < 1 {
		return fmt.Errorf("extraction batch_size must be positive: %d", cfg.Extraction.BatchSize)
	}
	if cfg.Extraction.SampleLimit > cfg.Extraction.SampleThreshold {
		return fmt.Errorf("extraction sample_limit %d exceeds sample_threshold %d",
			cfg.Extraction.SampleLimit, cfg.Extraction.SampleThreshold)
	}

	return nil
}

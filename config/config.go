package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tender matcher.
type Config struct {
	Sources    []Source         `yaml:"sources"`
	Scrape     ScrapeConfig     `yaml:"scrape"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Matching   MatchingConfig   `yaml:"matching"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Source describes one tender portal to scrape.
type Source struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Selector  string `yaml:"selector"`  // CSS selector for listing elements
	Extractor string `yaml:"extractor"` // registry key; empty = generic
}

// ScrapeConfig holds scrape-cycle configuration.
type ScrapeConfig struct {
	MaxPerSource    int `yaml:"max_per_source"` // cap on listing elements per source
	DelaySeconds    int `yaml:"delay_seconds"`  // politeness delay between sources
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
}

// EmbeddingConfig holds embedding service configuration.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"` // "ollama" or "mock"
	BaseURL    string `yaml:"base_url"` // Ollama-compatible endpoint
	Model      string `yaml:"model"`
	Dimension  int    `yaml:"dimension"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// ExtractionConfig holds structured-extraction (LLM) configuration.
type ExtractionConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// MatchingConfig holds similarity scoring configuration.
type MatchingConfig struct {
	TopK int `yaml:"top_k"`
	// DistanceScale calibrates the distance-to-similarity mapping
	// similarity = (1 - distance/scale) * 100. The value is tied to the
	// distance distribution of the embedding model in use; re-derive it
	// when swapping models.
	DistanceScale float64 `yaml:"distance_scale"`
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sources: []Source{
			{
				Name:      "Tamil Nadu Tenders",
				URL:       "https://tntenders.gov.in/nicgep/app",
				Selector:  "table.list_table tr",
				Extractor: "nicgep",
			},
			{
				Name:      "Maharashtra Tenders",
				URL:       "https://mahatenders.gov.in/nicgep/app",
				Selector:  "table.list_table tr",
				Extractor: "nicgep",
			},
			{
				Name:      "Central Public Procurement Portal",
				URL:       "https://eprocure.gov.in/eprocure/app",
				Selector:  "div.list-group-item",
				Extractor: "eprocure",
			},
			{
				Name:      "Government e-Marketplace",
				URL:       "https://gem.gov.in/",
				Selector:  "div.gem-bidding-card",
				Extractor: "gem",
			},
		},
		Scrape: ScrapeConfig{
			MaxPerSource:    20,
			DelaySeconds:    1,
			FetchTimeoutSec: 30,
		},
		Embedding: EmbeddingConfig{
			Provider:   "ollama",
			BaseURL:    "http://localhost:11434",
			Model:      "nomic-embed-text",
			Dimension:  768,
			TimeoutSec: 60,
		},
		Extraction: ExtractionConfig{
			BaseURL:    "http://localhost:11434",
			Model:      "llama3",
			TimeoutSec: 120,
		},
		Matching: MatchingConfig{
			TopK:          10,
			DistanceScale: 10,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for tendermatch.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tendermatch.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tendermatch", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DBPath returns the path to the tender database.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "tenders.db")
}

// RawTenderDir returns the path to the per-tender audit export directory.
func RawTenderDir(dataDir string) string {
	return filepath.Join(dataDir, "raw_tenders")
}

// EnsureDataDir ensures the data directory and audit export directory exist.
func EnsureDataDir(dataDir string) error {
	return os.MkdirAll(RawTenderDir(dataDir), 0755)
}

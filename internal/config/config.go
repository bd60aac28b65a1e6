package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "statement-scraper.yaml"

// Config represents the statement-scraper.yaml configuration.
type Config struct {
	Format   string        `yaml:"format"` // auto, generic or bilt
	LogLevel string        `yaml:"log_level"`
	Generic  GenericConfig `yaml:"generic"`
	Bilt     BiltConfig    `yaml:"bilt"`
	Server   ServerConfig  `yaml:"server"`
}

// GenericConfig tunes the MM/DD/YY scanner.
type GenericConfig struct {
	Terminator string `yaml:"terminator"`
}

// BiltConfig tunes the Bilt section scanner.
type BiltConfig struct {
	HeaderMarkers     []string `yaml:"header_markers,omitempty"`
	SectionEndMarkers []string `yaml:"section_end_markers,omitempty"`
	ContinuedMarker   string   `yaml:"continued_marker,omitempty"`
	Year              int      `yaml:"year,omitempty"` // 0 = current year
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:   "auto",
		LogLevel: "info",
		Generic:  GenericConfig{Terminator: "t"},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load reads a YAML file over the defaults, then applies environment
// overrides. A .env file in the working directory is loaded first if present.
// An empty path reads DefaultPath when it exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.Format = getEnv("STATEMENT_SCRAPER_FORMAT", cfg.Format)
	cfg.LogLevel = getEnv("STATEMENT_SCRAPER_LOG_LEVEL", cfg.LogLevel)
	cfg.Server.Addr = getEnv("STATEMENT_SCRAPER_ADDR", cfg.Server.Addr)

	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

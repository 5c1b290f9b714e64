// Package config handles loading and saving user configuration for echolens.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Vocabulary sources.
const (
	SourceEditable = "editable" // user-managed term list, persisted in SQLite
	SourceFixed    = "fixed"    // static combined preset list on every request
)

// Config holds all user configuration for the echolens client.
type Config struct {
	BackendURL       string `yaml:"backend_url"`       // analysis service base URL
	TranscriberURL   string `yaml:"transcriber_url"`   // speech transcriber base URL; empty disables capture
	VocabularySource string `yaml:"vocabulary_source"` // "editable" or "fixed"
	Preset           string `yaml:"preset"`            // preset loaded into an empty editable vocabulary
	TopTerms         int    `yaml:"top_terms"`         // term relevance entries shown per result
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		BackendURL:       "http://127.0.0.1:5000",
		TranscriberURL:   "",
		VocabularySource: SourceEditable,
		Preset:           "",
		TopTerms:         6,
	}
}

// Load reads the config file at path. A missing file yields Default().
// Fields left empty in the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = Default().BackendURL
	}
	if cfg.VocabularySource == "" {
		cfg.VocabularySource = SourceEditable
	}
	if cfg.TopTerms <= 0 {
		cfg.TopTerms = Default().TopTerms
	}

	return cfg, nil
}

// Save writes cfg to a YAML file at path.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "echolens"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

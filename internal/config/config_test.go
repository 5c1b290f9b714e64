package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.BackendURL != "http://127.0.0.1:5000" {
		t.Errorf("backend URL = %q", cfg.BackendURL)
	}
	if cfg.TopTerms != 6 {
		t.Errorf("top terms = %d, want 6", cfg.TopTerms)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := Config{
		BackendURL:       "https://analyze.example.com",
		TranscriberURL:   "https://transcribe.example.com",
		VocabularySource: SourceFixed,
		Preset:           "design",
		TopTerms:         4,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadFillsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, Config{Preset: "technical"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.BackendURL == "" || got.VocabularySource == "" || got.TopTerms <= 0 {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.Preset != "technical" {
		t.Errorf("preset = %q", got.Preset)
	}
}

// Package cmd contains all CLI commands for the echolens client.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/echolens/echolens/internal/analysis"
	"github.com/echolens/echolens/internal/capture"
	"github.com/echolens/echolens/internal/config"
	"github.com/echolens/echolens/internal/tui"
	"github.com/echolens/echolens/internal/vocab"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "echolens",
	Short: "EchoLens - Capture feedback and visualize its sentiment",
	Long: `EchoLens captures spoken or typed feedback, sends it to an analysis
service, and visualizes the result:

  - Detected emotions with their strengths
  - Extracted keywords, highlightable in the original text
  - Relevance of your vocabulary terms to the feedback

Every analysis of a session is kept and can be revisited as a tab.

Running 'echolens' without arguments launches the interactive TUI.`,
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/echolens)")
	rootCmd.PersistentFlags().String("backend", "", "analysis service base URL")
	rootCmd.PersistentFlags().String("transcriber", "", "speech transcriber base URL")

	viper.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("transcriber_url", rootCmd.PersistentFlags().Lookup("transcriber"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "echolens")
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("ECHOLENS")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadUserConfig reads the config file and applies flag/env overrides.
func loadUserConfig() (config.Config, error) {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return config.Default(), fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := config.Load(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return cfg, err
	}

	if v := viper.GetString("backend_url"); v != "" {
		cfg.BackendURL = v
	}
	if v := viper.GetString("transcriber_url"); v != "" {
		cfg.TranscriberURL = v
	}

	return cfg, nil
}

// loadPresets returns the built-in presets, overlaid with presets.yaml from
// the config directory when present.
func loadPresets() vocab.Presets {
	path := filepath.Join(getConfigDir(), "presets.yaml")
	if _, err := os.Stat(path); err != nil {
		return vocab.BuiltinPresets()
	}
	presets, err := vocab.LoadPresetsFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return vocab.BuiltinPresets()
	}
	return presets
}

// openVocabulary assembles the term list for the configured source. For the
// editable source it returns the persisted set backed by its store (a fresh
// set is seeded from the configured preset); for the fixed source the set and
// store are nil and the static combined list is used.
func openVocabulary(cfg config.Config, presets vocab.Presets) (*vocab.Set, *vocab.Store, error) {
	if cfg.VocabularySource == config.SourceFixed {
		return nil, nil, nil
	}

	store, err := vocab.OpenStore(filepath.Join(getConfigDir(), "vocabulary.db"))
	if err != nil {
		return nil, nil, err
	}

	terms, err := store.Load()
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	set := vocab.NewSet(terms...)
	if set.Len() == 0 && cfg.Preset != "" {
		if set.LoadPreset(presets, cfg.Preset) {
			if err := store.Save(set.Terms()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save vocabulary: %v\n", err)
			}
		}
	}

	return set, store, nil
}

// runTUI launches the interactive application.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}

	presets := loadPresets()
	set, store, err := openVocabulary(cfg, presets)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	vocabulary := func() []string { return presets.Fixed() }
	if set != nil {
		vocabulary = set.Terms
	}

	var source capture.Source
	if cfg.TranscriberURL != "" {
		source = capture.NewClient(cfg.TranscriberURL)
	}

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Client:     analysis.NewClient(cfg.BackendURL),
			Recorder:   capture.NewRecorder(source),
			Vocabulary: vocabulary,
			Set:        set,
			VocabStore: store,
			Presets:    presets,
			TopTerms:   cfg.TopTerms,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/echolens/echolens/internal/config"
	"github.com/echolens/echolens/internal/vocab"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the vocabulary scored against each analysis",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current vocabulary terms",
	RunE:  runVocabList,
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <term>...",
	Short: "Add terms to the vocabulary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVocabAdd,
}

var vocabRemoveCmd = &cobra.Command{
	Use:   "remove <term>...",
	Short: "Remove terms from the vocabulary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVocabRemove,
}

var vocabPresetCmd = &cobra.Command{
	Use:   "preset [name]",
	Short: "Replace the vocabulary with a preset, or list presets",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVocabPreset,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabRemoveCmd)
	vocabCmd.AddCommand(vocabPresetCmd)
}

// openEditableVocabulary is like openVocabulary but refuses the fixed source,
// which the vocab commands cannot modify.
func openEditableVocabulary() (*vocab.Set, *vocab.Store, vocab.Presets, error) {
	cfg, err := loadUserConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.VocabularySource == config.SourceFixed {
		return nil, nil, nil, errors.New("the vocabulary source is fixed; set vocabulary_source to editable to manage terms")
	}

	presets := loadPresets()
	set, store, err := openVocabulary(cfg, presets)
	if err != nil {
		return nil, nil, nil, err
	}
	return set, store, presets, nil
}

func runVocabList(cmd *cobra.Command, args []string) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}

	presets := loadPresets()
	if cfg.VocabularySource == config.SourceFixed {
		for _, term := range presets.Fixed() {
			fmt.Println(term)
		}
		return nil
	}

	set, store, err := openVocabulary(cfg, presets)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, term := range set.Terms() {
		fmt.Println(term)
	}
	return nil
}

func runVocabAdd(cmd *cobra.Command, args []string) error {
	set, store, _, err := openEditableVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, term := range args {
		if set.Add(term) {
			fmt.Printf("Added %q\n", strings.TrimSpace(term))
		} else {
			fmt.Printf("Skipped %q (empty or already present)\n", term)
		}
	}

	return store.Save(set.Terms())
}

func runVocabRemove(cmd *cobra.Command, args []string) error {
	set, store, _, err := openEditableVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, term := range args {
		if set.Remove(term) {
			fmt.Printf("Removed %q\n", term)
		} else {
			fmt.Printf("Not in vocabulary: %q\n", term)
		}
	}

	return store.Save(set.Terms())
}

func runVocabPreset(cmd *cobra.Command, args []string) error {
	set, store, presets, err := openEditableVocabulary()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		for _, name := range presets.Names() {
			fmt.Printf("%s (%d terms)\n", name, len(presets[name]))
		}
		return nil
	}

	name := args[0]
	if !set.LoadPreset(presets, name) {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(presets.Names(), ", "))
	}
	if err := store.Save(set.Terms()); err != nil {
		return err
	}

	fmt.Printf("Loaded the %q preset (%d terms)\n", name, set.Len())
	return nil
}

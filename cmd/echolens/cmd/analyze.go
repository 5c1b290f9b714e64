package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/echolens/echolens/internal/analysis"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze feedback text and print the results",
	Long: `Analyze feedback text without launching the TUI. The text is taken
from the arguments, or from stdin when no arguments are given.

Example:
  echolens analyze "The new layout is clean but the font is tiny"
  pbpaste | echolens analyze`,
	RunE: runAnalyze,
}

var analyzeTop int

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "term relevance entries to show (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to analyze")
	}

	presets := loadPresets()
	set, store, err := openVocabulary(cfg, presets)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	terms := presets.Fixed()
	if set != nil {
		terms = set.Terms()
	}

	client := analysis.NewClient(cfg.BackendURL)
	result, err := client.Analyze(context.Background(), text, terms)
	if err != nil {
		var svcErr *analysis.ServiceError
		if errors.As(err, &svcErr) {
			return fmt.Errorf("analysis service: %s", svcErr.Message)
		}
		return err
	}

	printResult(result, topTermCount(cfg.TopTerms))
	return nil
}

func topTermCount(fromConfig int) int {
	if analyzeTop > 0 {
		return analyzeTop
	}
	return fromConfig
}

func printResult(result analysis.Result, topTerms int) {
	fmt.Println("Keywords:")
	if len(result.Keywords) == 0 {
		fmt.Println("  (none)")
	} else {
		fmt.Printf("  %s\n", strings.Join(result.Keywords, ", "))
	}
	fmt.Println()

	fmt.Println("Sentiment:")
	emotions := analysis.TopEmotions(result, 5)
	if len(emotions) == 0 {
		fmt.Println("  (no sentiment data)")
	}
	for _, e := range emotions {
		pct := analysis.Percent(e.Score)
		bar := strings.Repeat("█", pct/4)
		fmt.Printf("  %-16s %3d%% %s\n", e.Emotion, pct, bar)
	}
	fmt.Println()

	fmt.Println("Term relevance:")
	top := analysis.TopTerms(result, topTerms)
	if len(top) == 0 {
		fmt.Println("  No relevant terms found")
	}
	for _, t := range top {
		fmt.Printf("  %3d%%  %s\n", analysis.Percent(t.Relevance), t.Term)
	}
}

// Package main provides the CLI entry point for exdeck-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/exdeck-go/pkg/exdeck"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
)

var (
	outputPath   string
	configPath   string
	sheetName    string
	summaryStart string
	rawTable     string
	keyHeader    string
	linkMode     string
	tableFontPt  int
	roundDigits  int
	skipCols     []int
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exdeck [input.xlsx]",
		Short: "Generate a navigable slide deck from an Excel summary table",
		Long: `exdeck-go turns a formula-driven summary table into a PPTX deck:
one overview slide with the summary grid, and one detail slide per
summary cell showing its formula, evaluated value, and the source-table
rows that produced it, with bidirectional navigation links.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "out", "o", "deck.pptx", "Output PPTX path")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet containing the summary table (default: first sheet)")
	rootCmd.Flags().StringVar(&summaryStart, "summary-start", "", "Top-left data cell of the summary block (e.g. A12)")
	rootCmd.Flags().StringVar(&rawTable, "raw-table", "", "Source table (ListObject) name (default: auto-detected)")
	rootCmd.Flags().StringVar(&keyHeader, "key-header", "", "Column shown first in detail tables (default: first summary header)")
	rootCmd.Flags().StringVar(&linkMode, "link-mode", "overlay", "How summary cells link to detail slides: overlay, text")
	rootCmd.Flags().IntVar(&tableFontPt, "table-font-pt", 12, "Font size for table text")
	rootCmd.Flags().IntVar(&roundDigits, "round-digits", 2, "Decimal places for numeric values")
	rootCmd.Flags().IntSliceVar(&skipCols, "skip-cols", nil, "1-based metric column indices to exclude from linking")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts := exdeck.DefaultOptions()
	if configPath != "" {
		cfg, err := exdeck.LoadConfig(configPath)
		if err != nil {
			return err
		}
		opts = cfg.Apply(opts)
	}

	// Flags the user set explicitly override the config file.
	flags := cmd.Flags()
	if flags.Changed("sheet") {
		opts.Sheet = sheetName
	}
	if flags.Changed("summary-start") {
		opts.SummaryStart = summaryStart
	}
	if flags.Changed("raw-table") {
		opts.RawTable = rawTable
	}
	if flags.Changed("key-header") {
		opts.KeyHeader = keyHeader
	}
	if flags.Changed("link-mode") || opts.LinkMode == "" {
		switch linkMode {
		case "overlay":
			opts.LinkMode = deck.LinkModeOverlay
		case "text":
			opts.LinkMode = deck.LinkModeText
		default:
			return fmt.Errorf("invalid link mode: %s (must be overlay or text)", linkMode)
		}
	}
	if flags.Changed("table-font-pt") {
		opts.TableFontPt = tableFontPt
	}
	if flags.Changed("round-digits") {
		opts.RoundDigits = roundDigits
	}
	if flags.Changed("skip-cols") {
		opts.SkipCols = skipCols
	}
	if opts.SummaryStart == "" {
		return fmt.Errorf("summary start address is required (--summary-start or config)")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := exdeck.Build(inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("deck generation failed: %w", err)
	}
	fmt.Printf("PPT created: %s\n", outputPath)
	return nil
}

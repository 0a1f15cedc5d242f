// Package exdeck turns a formula-driven spreadsheet summary table into a
// navigable slide deck: one overview slide plus one detail slide per summary
// cell, showing the formula, its evaluated value, and the source-table rows
// that produced it.
package exdeck

import (
	"log/slog"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/resolve"
)

// Options configures one build run.
type Options struct {
	// Sheet is the worksheet holding the summary table; empty selects the
	// workbook's first sheet.
	Sheet string
	// SummaryStart is the top-left data cell of the summary block, e.g.
	// "A12". The header row is the row above it.
	SummaryStart string
	// RawTable overrides the default source table; empty auto-selects the
	// first structured table found in the workbook.
	RawTable string
	// KeyHeader is the column shown first in every detail table; empty
	// defaults to the summary region's first header.
	KeyHeader string
	// LinkMode selects overlay or text-only linking.
	LinkMode deck.LinkMode
	// TableFontPt is the font size for table text.
	TableFontPt int
	// RoundDigits is the decimal place count for numeric values.
	RoundDigits int
	// SkipCols lists 1-based metric column indices (the key column not
	// counted) whose cells display values but get no links or detail
	// slides.
	SkipCols []int
	// MaxScanCols bounds the header scan of region detection.
	MaxScanCols int
	// Logger receives debug records; nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the build defaults.
func DefaultOptions() Options {
	return Options{
		LinkMode:    deck.LinkModeOverlay,
		TableFontPt: 12,
		RoundDigits: 2,
		MaxScanCols: resolve.DefaultMaxScanCols,
	}
}

// skipSet converts SkipCols to the set form the link-graph builder takes.
func (o Options) skipSet() map[int]bool {
	set := make(map[int]bool, len(o.SkipCols))
	for _, c := range o.SkipCols {
		set[c] = true
	}
	return set
}

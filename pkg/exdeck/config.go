package exdeck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
)

// Config is the YAML file form of Options. All fields are optional; unset
// fields keep their defaults, and CLI flags override the file.
type Config struct {
	Sheet        string `yaml:"sheet,omitempty"`
	SummaryStart string `yaml:"summary_start,omitempty"`
	RawTable     string `yaml:"raw_table,omitempty"`
	KeyHeader    string `yaml:"key_header,omitempty"`
	LinkMode     string `yaml:"link_mode,omitempty"`
	TableFontPt  int    `yaml:"table_font_pt,omitempty"`
	RoundDigits  *int   `yaml:"round_digits,omitempty"`
	SkipCols     []int  `yaml:"skip_cols,omitempty"`
	MaxScanCols  int    `yaml:"max_scan_cols,omitempty"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.LinkMode != "" && c.LinkMode != string(deck.LinkModeOverlay) && c.LinkMode != string(deck.LinkModeText) {
		return Config{}, fmt.Errorf("config %s: invalid link_mode %q (must be overlay or text)", path, c.LinkMode)
	}
	return c, nil
}

// Apply overlays the config's set fields onto opts.
func (c Config) Apply(opts Options) Options {
	if c.Sheet != "" {
		opts.Sheet = c.Sheet
	}
	if c.SummaryStart != "" {
		opts.SummaryStart = c.SummaryStart
	}
	if c.RawTable != "" {
		opts.RawTable = c.RawTable
	}
	if c.KeyHeader != "" {
		opts.KeyHeader = c.KeyHeader
	}
	if c.LinkMode != "" {
		opts.LinkMode = deck.LinkMode(c.LinkMode)
	}
	if c.TableFontPt > 0 {
		opts.TableFontPt = c.TableFontPt
	}
	if c.RoundDigits != nil {
		opts.RoundDigits = *c.RoundDigits
	}
	if len(c.SkipCols) > 0 {
		opts.SkipCols = append([]int(nil), c.SkipCols...)
	}
	if c.MaxScanCols > 0 {
		opts.MaxScanCols = c.MaxScanCols
	}
	return opts
}

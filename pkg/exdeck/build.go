package exdeck

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/deck"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/pptx"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/resolve"
	"github.com/ukaji3/exdeck-go/pkg/exdeck/xlsx"
)

// Build reads the workbook at xlsxPath, resolves the summary region anchored
// at opts.SummaryStart, and writes the generated deck to outPath. The run is
// a single synchronous pass: region detection, provenance resolution, link
// wiring, layout, then persistence. Fatal errors (no region, no structured
// table) abort with no partial output; provenance misses degrade to empty
// detail tables.
func Build(xlsxPath, outPath string, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	wb, err := xlsx.Open(xlsxPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	tables, err := wb.Tables()
	if err != nil {
		return err
	}
	byName := make(map[string]*models.StructuredTable, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	defaultTable := defaultTableName(tables, opts.RawTable)
	log.Debug("structured tables read", "count", len(tables), "default", defaultTable)

	sheet, err := wb.Sheet(opts.Sheet)
	if err != nil {
		return err
	}

	col, row, err := excelize.CellNameToCoordinates(opts.SummaryStart)
	if err != nil {
		return fmt.Errorf("invalid summary start address %q: %w", opts.SummaryStart, err)
	}
	region, err := resolve.DetectRegion(sheet, models.Address{Row: row, Col: col}, opts.MaxScanCols)
	if err != nil {
		return err
	}
	log.Debug("summary region detected",
		"header_row", region.HeaderRow, "headers", region.Headers, "data_rows", len(region.DataRows))

	resolver := &resolve.Resolver{
		Sheet:        sheet,
		Tables:       byName,
		DefaultTable: defaultTable,
		KeyHeader:    opts.KeyHeader,
		Log:          log,
	}
	grid, err := resolver.ResolveGrid(region)
	if err != nil {
		return err
	}

	linked := deck.BuildLinks(grid, opts.skipSet(), opts.RoundDigits)
	log.Debug("link graph built", "views", len(linked.Views), "edges", len(linked.Edges))

	var doc deck.Writer = pptx.New()
	deck.Compose(doc, linked, deck.Style{
		TableFontPt: opts.TableFontPt,
		RoundDigits: opts.RoundDigits,
		LinkMode:    opts.LinkMode,
	})
	return doc.Save(outPath)
}

// defaultTableName is the explicit default-selection policy: the configured
// override when it names an existing table, else the first table in
// enumeration order.
func defaultTableName(tables []*models.StructuredTable, override string) string {
	if override != "" {
		for _, t := range tables {
			if t.Name == override {
				return override
			}
		}
	}
	return tables[0].Name
}

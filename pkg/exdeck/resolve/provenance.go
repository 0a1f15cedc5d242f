package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// ProvenanceLookupError indicates a filter column absent from the target
// table's schema. It is recovered locally: filtering is retried once through
// the key-column fallback, and an unresolved retry degrades to a zero-row
// provenance slice rather than failing the run.
type ProvenanceLookupError struct {
	Table  string
	Column string
	Err    error
}

func (e *ProvenanceLookupError) Error() string {
	return fmt.Sprintf("provenance lookup on table %q column %q failed: %v", e.Table, e.Column, e.Err)
}

func (e *ProvenanceLookupError) Unwrap() error {
	return e.Err
}

// Resolver walks a detected summary region and produces the resolved grid:
// per cell, the (possibly borrowed) formula, the evaluated value, the
// referenced table, and the provenance slice backing the value.
type Resolver struct {
	Sheet Sheet
	// Tables maps table name to definition.
	Tables map[string]*models.StructuredTable
	// DefaultTable is the table used when a formula references none. The
	// selection policy lives with the workbook reader (first table in
	// enumeration order unless overridden).
	DefaultTable string
	// KeyHeader is the header shown in every detail table, defaulting to
	// the region's first header.
	KeyHeader string
	// Log receives per-cell debug records; nil disables logging.
	Log *slog.Logger
}

// ResolveGrid runs one forward pass over all summary rows and metrics.
func (r *Resolver) ResolveGrid(region models.SummaryRegion) (models.ResolvedGrid, error) {
	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	keyHeader := r.KeyHeader
	if keyHeader == "" {
		keyHeader = region.Headers[0]
	}

	grid := models.ResolvedGrid{Region: region, KeyHeader: keyHeader}
	for _, row := range region.DataRows {
		resolved := models.ResolvedRow{
			Row:   row,
			Key:   r.Sheet.Value(row, region.StartCol),
			Cells: make(map[string]models.SummaryCell, len(region.Headers)-1),
		}
		for off, metric := range region.Headers[1:] {
			col := region.StartCol + off + 1
			cell := r.resolveCell(region, row, col, metric, resolved.Key, keyHeader)
			log.Debug("resolved summary cell",
				"row", row, "metric", metric,
				"formula_found", cell.Formula != "",
				"table", cell.Table,
				"matches", len(cell.Provenance.Records))
			resolved.Cells[metric] = cell
		}
		grid.Rows = append(grid.Rows, resolved)
	}
	return grid, nil
}

func (r *Resolver) resolveCell(region models.SummaryRegion, row, col int, metric string, key any, keyHeader string) models.SummaryCell {
	cell := models.SummaryCell{
		Address: models.Address{Row: row, Col: col},
		Metric:  metric,
		Formula: r.cellFormula(region, row, col),
		Value:   r.Sheet.Value(row, col),
	}

	table := r.Tables[r.DefaultTable]
	if names := TableNames(cell.Formula); len(names) > 0 {
		cell.Table = names[0]
		if t, ok := r.Tables[names[0]]; ok {
			table = t
		}
	}
	if table == nil {
		return cell
	}

	cell.Predicate = ExtractPredicate(r.Sheet, cell.Formula, table.Name, row, region.StartCol)
	filterCol := cell.Predicate.Column
	if filterCol == "" {
		filterCol = GuessKeyColumn(table, keyHeader)
	}
	filterVal := cell.Predicate.Value
	if filterVal == nil {
		filterVal = key
	}

	records, err := filterRecords(table, filterCol, filterVal)
	if err != nil {
		// One retry through the key-column fallback; an empty result after
		// that is a valid zero-row slice, not a failure.
		var lookupErr *ProvenanceLookupError
		if errors.As(err, &lookupErr) {
			retryCol := GuessKeyColumn(table, keyHeader)
			records, err = filterRecords(table, retryCol, filterVal)
		}
		if err != nil {
			records = nil
		}
	}

	cell.Provenance = models.ProvenanceSlice{
		Columns: projectionColumns(cell.Formula, table, keyHeader),
		Records: records,
	}
	return cell
}

// cellFormula returns the cell's own formula, or borrows one from the same
// column: first scanning upward to the first row below the header, then
// downward to the end of the data block. This assumes formulas are locally
// homogeneous within a contiguous block; the borrowed formula is a proxy,
// not a guarantee.
func (r *Resolver) cellFormula(region models.SummaryRegion, row, col int) string {
	if f := r.Sheet.Formula(row, col); f != "" {
		return f
	}
	for rr := row - 1; rr >= region.HeaderRow+1; rr-- {
		if f := r.Sheet.Formula(rr, col); f != "" {
			return f
		}
	}
	for rr := row + 1; rr <= region.LastDataRow(); rr++ {
		if f := r.Sheet.Formula(rr, col); f != "" {
			return f
		}
	}
	return ""
}

// projectionColumns builds the detail-table column list: the key header plus
// the formula's structured references, de-duplicated in order and
// intersected with the table schema. An empty intersection falls back to the
// key header if the table has it, else the full schema.
func projectionColumns(formula string, table *models.StructuredTable, keyHeader string) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, c := range append([]string{keyHeader}, StructuredColumns(formula, table.Name)...) {
		if !seen[c] && table.HasColumn(c) {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		if table.HasColumn(keyHeader) {
			return []string{keyHeader}
		}
		return append([]string(nil), table.Columns...)
	}
	return cols
}

// filterRecords selects the table rows whose filter-column value equals the
// filter value.
func filterRecords(table *models.StructuredTable, column string, value any) ([]models.Record, error) {
	if !table.HasColumn(column) {
		return nil, &ProvenanceLookupError{
			Table:  table.Name,
			Column: column,
			Err:    &models.UnknownColumnError{Table: table.Name, Column: column},
		}
	}
	var out []models.Record
	for _, rec := range table.Records {
		v, err := rec.Get(column)
		if err != nil {
			return nil, &ProvenanceLookupError{Table: table.Name, Column: column, Err: err}
		}
		if valuesEqual(v, value) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// valuesEqual compares two cell values, treating int64 and float64 forms of
// the same number as equal. A cell's number format decides which type its
// text parses back into, so a formatted table column and an unformatted
// summary key can disagree on type while holding the same number.
func valuesEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

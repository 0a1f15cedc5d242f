// Package xlsx adapts excelize to the reader contracts the resolver
// consumes: a value view and a formula view of sheet cells, plus structured
// table enumeration.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// NoTableFoundError indicates the workbook contains no structured tables
// (ListObjects). It is fatal: provenance cannot be resolved without one.
type NoTableFoundError struct {
	Book string
}

func (e *NoTableFoundError) Error() string {
	return fmt.Sprintf("no structured table (ListObject) found in workbook %q", e.Book)
}

// Workbook wraps an open xlsx file. It is opened exclusively for one run and
// must be closed on every exit path.
type Workbook struct {
	path string
	f    *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{path: path, f: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet returns the named sheet, or the workbook's first sheet when name is
// empty.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	list := w.f.GetSheetList()
	if name == "" {
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook %q has no sheets", w.path)
		}
		name = list[0]
	}
	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook %q", name, w.path)
	}
	return &Sheet{f: w.f, name: name}, nil
}

// Tables enumerates the structured tables of every sheet, in sheet order
// then definition order. The first table is the default-selection policy's
// pick when no table name is configured and a formula names none.
func (w *Workbook) Tables() ([]*models.StructuredTable, error) {
	var tables []*models.StructuredTable
	for _, sheet := range w.f.GetSheetList() {
		defs, err := w.f.GetTables(sheet)
		if err != nil {
			return nil, fmt.Errorf("read tables of sheet %q: %w", sheet, err)
		}
		s := &Sheet{f: w.f, name: sheet}
		for _, def := range defs {
			t, err := s.readTable(def)
			if err != nil {
				return nil, err
			}
			tables = append(tables, t)
		}
	}
	if len(tables) == 0 {
		return nil, &NoTableFoundError{Book: w.path}
	}
	return tables, nil
}

// Sheet exposes the value and formula views of one worksheet.
type Sheet struct {
	f    *excelize.File
	name string
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Value returns the evaluated (cached) value at (row, col), parsed to int64
// or float64 where the text is numeric, or nil for blank cells.
func (s *Sheet) Value(row, col int) any {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil
	}
	v, err := s.f.GetCellValue(s.name, cell)
	if err != nil || v == "" {
		return nil
	}
	return parseValue(v)
}

// Formula returns the formula text at (row, col) normalized to begin with
// "=", or "" when the cell holds no formula.
func (s *Sheet) Formula(row, col int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	f, err := s.f.GetCellFormula(s.name, cell)
	if err != nil || f == "" {
		return ""
	}
	if strings.HasPrefix(f, "=") {
		return f
	}
	return "=" + f
}

// readTable materializes one table definition: header names from the range's
// first row, records from the remaining rows, all through the value view.
func (s *Sheet) readTable(def excelize.Table) (*models.StructuredTable, error) {
	parts := strings.Split(def.Range, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("table %q has malformed range %q", def.Name, def.Range)
	}
	minCol, minRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("table %q range %q: %w", def.Name, def.Range, err)
	}
	maxCol, maxRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("table %q range %q: %w", def.Name, def.Range, err)
	}

	columns := make([]string, 0, maxCol-minCol+1)
	for c := minCol; c <= maxCol; c++ {
		columns = append(columns, fmt.Sprint(orEmpty(s.Value(minRow, c))))
	}
	var rows [][]any
	for r := minRow + 1; r <= maxRow; r++ {
		row := make([]any, 0, len(columns))
		for c := minCol; c <= maxCol; c++ {
			row = append(row, s.Value(r, c))
		}
		rows = append(rows, row)
	}
	return models.NewStructuredTable(def.Name, columns, rows), nil
}

func orEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// parseValue mirrors how cell text is typed: integers become int64, decimals
// float64, anything else stays a string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

func salesTable() *models.StructuredTable {
	return models.NewStructuredTable("Sales",
		[]string{"Product", "Amount", "Region"},
		[][]any{
			{"Widget", 100.5, "East"},
			{"Gadget", int64(25), "West"},
			{"Widget", int64(30), "West"},
		})
}

// summarySheet builds the canonical fixture: headers on row 11, data rows 12
// and 13, SUMIFS formulas over the Sales table in column B.
func summarySheet() stubSheet {
	return stubSheet{
		values: map[[2]int]any{
			{11, 1}: "Product", {11, 2}: "Revenue", {11, 3}: "Units",
			{12, 1}: "Widget", {12, 2}: 1234.5, {12, 3}: int64(7),
			{13, 1}: "Gadget", {13, 2}: int64(25),
		},
		formulas: map[[2]int]string{
			{12, 2}: "=SUMIFS(Sales[Amount],Sales[Product],$A12)",
			{13, 2}: "=SUMIFS(Sales[Amount],Sales[Product],$A13)",
		},
	}
}

func newTestResolver(s Sheet) *Resolver {
	table := salesTable()
	return &Resolver{
		Sheet:        s,
		Tables:       map[string]*models.StructuredTable{"Sales": table},
		DefaultTable: "Sales",
	}
}

func detectTestRegion(t *testing.T, s Sheet) models.SummaryRegion {
	t.Helper()
	region, err := DetectRegion(s, models.Address{Row: 12, Col: 1}, 0)
	require.NoError(t, err)
	return region
}

func TestResolveGrid(t *testing.T) {
	s := summarySheet()
	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)

	require.Len(t, grid.Rows, 2)
	assert.Equal(t, "Product", grid.KeyHeader)
	assert.Equal(t, []string{"Revenue", "Units"}, grid.Metrics())

	cell := grid.Rows[0].Cells["Revenue"]
	assert.Equal(t, "=SUMIFS(Sales[Amount],Sales[Product],$A12)", cell.Formula)
	assert.Equal(t, 1234.5, cell.Value)
	assert.Equal(t, "Sales", cell.Table)
	assert.Equal(t, "Product", cell.Predicate.Column)
	assert.Equal(t, "Widget", cell.Predicate.Value)

	// Projection: key header first, then the formula's structured columns,
	// intersected with the schema.
	assert.Equal(t, []string{"Product", "Amount"}, cell.Provenance.Columns)
	require.Len(t, cell.Provenance.Records, 2)
	for _, rec := range cell.Provenance.Records {
		v, err := rec.Get("Product")
		require.NoError(t, err)
		assert.Equal(t, "Widget", v)
	}
}

func TestResolveGridFormulaBackfill(t *testing.T) {
	s := summarySheet()
	// Three data rows; only the first carries a Units formula.
	s.values[[2]int{13, 3}] = int64(3)
	s.values[[2]int{14, 1}] = "Widget"
	s.values[[2]int{14, 3}] = int64(9)
	s.formulas[[2]int{12, 3}] = "=COUNTIFS(Sales[Product],$A12)"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)
	require.Len(t, grid.Rows, 3)

	// Rows 13 and 14 borrow row 12's formula as a proxy.
	assert.Equal(t, "=COUNTIFS(Sales[Product],$A12)", grid.Rows[1].Cells["Units"].Formula)
	assert.Equal(t, "=COUNTIFS(Sales[Product],$A12)", grid.Rows[2].Cells["Units"].Formula)
}

func TestResolveGridBackfillDownward(t *testing.T) {
	s := summarySheet()
	delete(s.formulas, [2]int{12, 2})
	// Row 12 has no Revenue formula; the only one sits below it.
	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)
	assert.Equal(t, "=SUMIFS(Sales[Amount],Sales[Product],$A13)", grid.Rows[0].Cells["Revenue"].Formula)
}

func TestResolveGridBackfillStaysInsideBlock(t *testing.T) {
	s := summarySheet()
	delete(s.formulas, [2]int{12, 2})
	delete(s.formulas, [2]int{13, 2})
	// Formulas outside the block must not be adopted: one on the header
	// row's column, one below the last data row.
	s.formulas[[2]int{10, 2}] = "=SUM(Sales[Amount])"
	s.formulas[[2]int{15, 2}] = "=SUM(Sales[Amount])"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)
	assert.Empty(t, grid.Rows[0].Cells["Revenue"].Formula)
	assert.Empty(t, grid.Rows[1].Cells["Revenue"].Formula)
}

func TestResolveGridNoPredicateFallsBackToKeyColumn(t *testing.T) {
	s := summarySheet()
	// A formula without any anchor comparison: the key-column chain picks
	// the join column and the row key value filters the table.
	s.formulas[[2]int{12, 2}] = "=SUM(Sales[Amount])"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)

	cell := grid.Rows[0].Cells["Revenue"]
	assert.Empty(t, cell.Predicate.Column)
	require.Len(t, cell.Provenance.Records, 2) // Product == "Widget"
}

func TestResolveGridUnknownFilterColumnRetries(t *testing.T) {
	s := summarySheet()
	// The predicate names a column absent from the schema; resolution
	// retries once through the key-column fallback.
	s.formulas[[2]int{12, 2}] = "=SUMIFS(Sales[Amount],Sales[Ghost],$A12)"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)

	cell := grid.Rows[0].Cells["Revenue"]
	assert.Equal(t, "Ghost", cell.Predicate.Column)
	require.Len(t, cell.Provenance.Records, 2) // retried on Product
}

func TestResolveGridMatchesFormattedNumericKeys(t *testing.T) {
	// A number-formatted table column reads back as float64 while the
	// unformatted summary key reads as int64; both hold the same number and
	// must match.
	table := models.NewStructuredTable("Sales",
		[]string{"ProductID", "Amount"},
		[][]any{
			{100.0, int64(42)},
			{200.0, int64(7)},
		})
	s := stubSheet{
		values: map[[2]int]any{
			{11, 1}: "ProductID", {11, 2}: "Revenue",
			{12, 1}: int64(100), {12, 2}: int64(42),
		},
		formulas: map[[2]int]string{
			{12, 2}: "=SUMIFS(Sales[Amount],Sales[ProductID],$A12)",
		},
	}
	r := &Resolver{
		Sheet:        s,
		Tables:       map[string]*models.StructuredTable{"Sales": table},
		DefaultTable: "Sales",
	}
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)

	recs := grid.Rows[0].Cells["Revenue"].Provenance.Records
	require.Len(t, recs, 1)
	v, err := recs[0].Get("Amount")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(int64(100), 100.0))
	assert.True(t, valuesEqual(100.0, int64(100)))
	assert.True(t, valuesEqual("Widget", "Widget"))
	assert.False(t, valuesEqual(int64(100), "100"))
	assert.False(t, valuesEqual(int64(100), int64(101)))
	assert.False(t, valuesEqual(nil, int64(0)))
}

func TestResolveGridZeroMatchesIsNonFatal(t *testing.T) {
	s := summarySheet()
	s.values[[2]int{12, 1}] = "Nonexistent"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)
	assert.Empty(t, grid.Rows[0].Cells["Revenue"].Provenance.Records)
}

func TestResolveGridDefaultTableWhenFormulaNamesNone(t *testing.T) {
	s := summarySheet()
	s.formulas[[2]int{12, 2}] = "=B10*2"

	r := newTestResolver(s)
	grid, err := r.ResolveGrid(detectTestRegion(t, s))
	require.NoError(t, err)

	cell := grid.Rows[0].Cells["Revenue"]
	assert.Empty(t, cell.Table)
	// Default table still resolved against: key column filter applies.
	assert.Len(t, cell.Provenance.Records, 2)
}

func TestProjectionFallbacks(t *testing.T) {
	table := salesTable()

	// No structured columns, key header present: key header only.
	assert.Equal(t, []string{"Product"}, projectionColumns("=B10", table, "Product"))

	// Key header absent and no parsed columns: full schema.
	assert.Equal(t, []string{"Product", "Amount", "Region"}, projectionColumns("=B10", table, "Missing"))

	// Parsed columns outside schema are dropped.
	assert.Equal(t, []string{"Product", "Amount"},
		projectionColumns("=SUMIFS(Sales[Amount],Sales[Ghost],$A12)", table, "Product"))
}

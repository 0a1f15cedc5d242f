package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredColumns(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		table   string
		want    []string
	}{
		{
			name:    "single reference",
			formula: "=SUM(Sales[Amount])",
			table:   "Sales",
			want:    []string{"Amount"},
		},
		{
			name:    "multiple references deduplicated in first-seen order",
			formula: "=SUMIFS(Sales[Amount],Sales[Product],$A12)+SUM(Sales[Amount])",
			table:   "Sales",
			want:    []string{"Amount", "Product"},
		},
		{
			name:    "escaped bracket inside column name",
			formula: "=SUM(Table[Name with ]] bracket])",
			table:   "Table",
			want:    []string{"Name with ] bracket"},
		},
		{
			name:    "other table names ignored",
			formula: "=SUMIFS(Costs[Amount],Sales[Product],A12)",
			table:   "Sales",
			want:    []string{"Product"},
		},
		{
			name:    "no formula",
			formula: "",
			table:   "Sales",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StructuredColumns(tt.formula, tt.table))
		})
	}
}

func TestStructuredColumnsIdempotent(t *testing.T) {
	formula := "=SUM(Table[Name with ]] bracket])"
	first := StructuredColumns(formula, "Table")
	second := StructuredColumns(formula, "Table")
	assert.Equal(t, first, second)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, []string{"Sales", "Costs"},
		TableNames("=SUMIFS(Sales[Amount],Sales[Product],A12)-SUM(Costs[Amount])"))
	assert.Nil(t, TableNames(""))
	assert.Nil(t, TableNames("=A1+B1"))
}

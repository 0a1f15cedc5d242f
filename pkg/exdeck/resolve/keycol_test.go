package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

func tableWithColumns(cols ...string) *models.StructuredTable {
	return models.NewStructuredTable("T", cols, nil)
}

func TestGuessKeyColumn(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		preferred string
		want      string
	}{
		{
			name:      "preferred name verbatim",
			columns:   []string{"Region", "Product", "Amount"},
			preferred: "Product",
			want:      "Product",
		},
		{
			name:      "synonym match normalized",
			columns:   []string{"Amount", "Sub-System", "Owner"},
			preferred: "Product",
			want:      "Sub-System",
		},
		{
			name:      "synonym match with underscore",
			columns:   []string{"Amount", "sub_system"},
			preferred: "Product",
			want:      "sub_system",
		},
		{
			name:      "substring match",
			columns:   []string{"Amount", "Subordinate System Id"},
			preferred: "Product",
			want:      "Subordinate System Id",
		},
		{
			name:      "first column as last resort",
			columns:   []string{"Amount", "Owner"},
			preferred: "Product",
			want:      "Amount",
		},
		{
			name:      "empty preferred skips exact match",
			columns:   []string{"Amount", "Owner"},
			preferred: "",
			want:      "Amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuessKeyColumn(tableWithColumns(tt.columns...), tt.preferred)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyColumnStrategiesIndividually(t *testing.T) {
	table := tableWithColumns("Amount", "SubSystemName")

	col, ok := pickExact(table, "Amount")
	assert.True(t, ok)
	assert.Equal(t, "Amount", col)

	_, ok = pickExact(table, "Missing")
	assert.False(t, ok)

	col, ok = pickSynonym(table, "")
	assert.True(t, ok)
	assert.Equal(t, "SubSystemName", col)

	_, ok = pickSynonym(tableWithColumns("Amount"), "")
	assert.False(t, ok)

	col, ok = pickSubstring(tableWithColumns("The Sub Payment System"), "")
	assert.True(t, ok)
	assert.Equal(t, "The Sub Payment System", col)

	col, ok = pickFirstColumn(table, "")
	assert.True(t, ok)
	assert.Equal(t, "Amount", col)
}

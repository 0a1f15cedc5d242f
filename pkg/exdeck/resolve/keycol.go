package resolve

import (
	"regexp"
	"strings"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// keyColumnSynonyms are the normalized names accepted as a "sub-system"
// style key column.
var keyColumnSynonyms = map[string]bool{
	"subsystem":     true,
	"subsystemname": true,
	"sub_system":    true,
	"sub system":    true,
}

var nonWordRun = regexp.MustCompile(`\W+`)

// keyColumnStrategy is one step of the key-column guessing chain. It returns
// the chosen column name and whether it applies.
type keyColumnStrategy struct {
	name string
	pick func(t *models.StructuredTable, preferred string) (string, bool)
}

// keyColumnChain is the ordered fallback chain used when no filter predicate
// could be recovered from a formula, composed with first-success semantics.
// It is a heuristic safety net, not a correctness guarantee: the substring
// and default steps can pick a column unrelated to the formula's real
// criteria (see DESIGN.md).
var keyColumnChain = []keyColumnStrategy{
	{name: "exact", pick: pickExact},
	{name: "synonym", pick: pickSynonym},
	{name: "substring", pick: pickSubstring},
	{name: "default", pick: pickFirstColumn},
}

// GuessKeyColumn resolves a join column that is guaranteed to exist in the
// table: the preferred name if present, else a normalized synonym match,
// else any column containing both "sub" and "system", else the table's
// first column.
func GuessKeyColumn(t *models.StructuredTable, preferred string) string {
	for _, strat := range keyColumnChain {
		if col, ok := strat.pick(t, preferred); ok {
			return col
		}
	}
	// Unreachable: the default strategy always applies.
	return ""
}

func pickExact(t *models.StructuredTable, preferred string) (string, bool) {
	if preferred != "" && t.HasColumn(preferred) {
		return preferred, true
	}
	return "", false
}

func pickSynonym(t *models.StructuredTable, _ string) (string, bool) {
	for _, c := range t.Columns {
		if keyColumnSynonyms[normalizeColumn(c)] {
			return c, true
		}
	}
	return "", false
}

func pickSubstring(t *models.StructuredTable, _ string) (string, bool) {
	for _, c := range t.Columns {
		n := normalizeColumn(c)
		if strings.Contains(n, "sub") && strings.Contains(n, "system") {
			return c, true
		}
	}
	return "", false
}

func pickFirstColumn(t *models.StructuredTable, _ string) (string, bool) {
	if len(t.Columns) == 0 {
		return "", false
	}
	return t.Columns[0], true
}

// normalizeColumn lowercases a header and collapses non-word runs to single
// spaces for synonym comparison.
func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(nonWordRun.ReplaceAllString(name, " ")))
}

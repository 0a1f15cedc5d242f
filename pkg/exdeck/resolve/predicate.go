package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// ExtractPredicate recovers the (filter column, filter value) pair that ties
// a formula to one summary row. The formula is matched against the anchor
// cell at (row, keyCol), tolerating independent "$" anchors on either part
// of the address. Three shapes are tried in order, first match wins:
//
//  1. equality, either direction:  Table[Col]=$A12  or  $A12=Table[Col]
//  2. conditional-aggregate argument order:  Table[Col],$A12
//  3. reversed argument order:  $A12,Table[Col]
//
// On a match the filter value is read live from the anchor cell's current
// evaluated value, never parsed out of the formula text, so resolution
// reflects what the formula computes against the workbook's present state.
// No match returns the zero predicate; callers fall back to key-column
// guessing.
func ExtractPredicate(s Sheet, formula, tableName string, row, keyCol int) models.FilterPredicate {
	if formula == "" {
		return models.FilterPredicate{}
	}
	text := strings.ReplaceAll(formula, " ", "")
	colName, err := excelize.ColumnNumberToName(keyCol)
	if err != nil {
		return models.FilterPredicate{}
	}
	cellPat := fmt.Sprintf(`\$?%s\$?%d`, colName, row)
	table := regexp.QuoteMeta(tableName)

	patterns := []string{
		fmt.Sprintf(`(?:%s\[([^\]]+?)\]=%s|%s=%s\[([^\]]+?)\])`, table, cellPat, cellPat, table),
		fmt.Sprintf(`%s\[([^\]]+?)\],%s`, table, cellPat),
		fmt.Sprintf(`%s,%s\[([^\]]+?)\]`, cellPat, table),
	}
	for _, p := range patterns {
		m := regexp.MustCompile(p).FindStringSubmatch(text)
		if m == nil {
			continue
		}
		col := m[1]
		if col == "" && len(m) > 2 {
			col = m[2]
		}
		return models.FilterPredicate{
			Column: strings.ReplaceAll(col, "'", ""),
			Value:  s.Value(row, keyCol),
		}
	}
	return models.FilterPredicate{}
}

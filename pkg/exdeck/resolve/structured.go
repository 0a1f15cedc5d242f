package resolve

import (
	"regexp"
	"strings"
)

var tableNamePattern = regexp.MustCompile(`([A-Za-z0-9_]+)\[`)

// StructuredColumns extracts the column names referenced through structured
// references of the named table, e.g. Sales[Amount]. A doubled "]]" inside
// the brackets is the escape for a literal "]" and does not terminate the
// reference. Names are de-duplicated in first-seen order. Nested brackets
// are not supported; structured references are single-level.
func StructuredColumns(formula, tableName string) []string {
	if formula == "" {
		return nil
	}
	var cols []string
	seen := make(map[string]bool)
	target := tableName + "["
	for i := 0; ; {
		start := strings.Index(formula[i:], target)
		if start == -1 {
			break
		}
		j := i + start + len(target)
		var buf strings.Builder
		for j < len(formula) {
			ch := formula[j]
			if ch == ']' {
				if j+1 < len(formula) && formula[j+1] == ']' {
					buf.WriteByte(']')
					j += 2
					continue
				}
				j++
				break
			}
			buf.WriteByte(ch)
			j++
		}
		name := strings.ReplaceAll(buf.String(), "'", "")
		if !seen[name] {
			seen[name] = true
			cols = append(cols, name)
		}
		i = j
	}
	return cols
}

// TableNames extracts the structured-table names referenced anywhere in the
// formula, de-duplicated in first-seen order. The first name is the one a
// cell is resolved against when no explicit table is configured.
func TableNames(formula string) []string {
	if formula == "" {
		return nil
	}
	s := strings.ReplaceAll(formula, "'", "")
	var names []string
	seen := make(map[string]bool)
	for _, m := range tableNamePattern.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

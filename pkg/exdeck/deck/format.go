package deck

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatValue renders a cell value for display. Numeric values are rendered
// with exactly digits decimal places; nil renders as the empty string (blank
// cells carry no display text and therefore no link); everything else is
// stringified as-is.
func FormatValue(v any, digits int) string {
	switch n := v.(type) {
	case nil:
		return ""
	case int:
		return decimal.NewFromInt(int64(n)).StringFixed(int32(digits))
	case int64:
		return decimal.NewFromInt(n).StringFixed(int32(digits))
	case float64:
		return decimal.NewFromFloat(n).StringFixed(int32(digits))
	default:
		return fmt.Sprint(v)
	}
}

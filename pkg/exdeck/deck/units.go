// Package deck turns a resolved summary grid into a navigable slide deck:
// link-graph construction, deterministic table layout, and slide composition
// against an abstract document writer.
package deck

// EMU (English Metric Units) conversion constants.
// 1 inch = 914400 EMU; 1 point = 1/72 inch = 12700 EMU.
const (
	EMUPerInch  = 914400
	EMUPerPoint = 12700
)

// Inches converts inches to EMU.
func Inches(in float64) int {
	return int(in * EMUPerInch)
}

// Points converts typographic points to EMU.
func Points(pt float64) int {
	return int(pt * EMUPerPoint)
}

package resolve

import (
	"fmt"

	"github.com/ukaji3/exdeck-go/pkg/exdeck/models"
)

// DefaultMaxScanCols bounds the rightward header scan so malformed sheets
// cannot trigger runaway traversal.
const DefaultMaxScanCols = 60

// RegionDetectionError indicates the anchor cell yielded no headers or no
// data rows. It is fatal: no deck is built.
type RegionDetectionError struct {
	Anchor  models.Address
	Missing string // "headers" or "data rows"
}

func (e *RegionDetectionError) Error() string {
	return fmt.Sprintf("no %s found around anchor cell (row %d, col %d); check the summary start address",
		e.Missing, e.Anchor.Row, e.Anchor.Col)
}

// DetectRegion locates the summary grid from a single anchor cell: the
// header row is the row above the anchor, headers extend rightward until the
// first blank cell (or maxCols columns), and data rows extend downward in
// the anchor column until the first blank cell.
func DetectRegion(s Sheet, anchor models.Address, maxCols int) (models.SummaryRegion, error) {
	if maxCols <= 0 {
		maxCols = DefaultMaxScanCols
	}
	region := models.SummaryRegion{
		HeaderRow: anchor.Row - 1,
		StartCol:  anchor.Col,
	}

	for c := anchor.Col; c-anchor.Col <= maxCols; c++ {
		v := s.Value(region.HeaderRow, c)
		if isBlank(v) {
			break
		}
		region.Headers = append(region.Headers, fmt.Sprint(v))
	}

	for r := anchor.Row; ; r++ {
		if isBlank(s.Value(r, anchor.Col)) {
			break
		}
		region.DataRows = append(region.DataRows, r)
	}

	if len(region.Headers) == 0 {
		return models.SummaryRegion{}, &RegionDetectionError{Anchor: anchor, Missing: "headers"}
	}
	if len(region.DataRows) == 0 {
		return models.SummaryRegion{}, &RegionDetectionError{Anchor: anchor, Missing: "data rows"}
	}
	return region, nil
}

// isBlank reports whether a value view cell is empty.
func isBlank(v any) bool {
	return v == nil || v == ""
}

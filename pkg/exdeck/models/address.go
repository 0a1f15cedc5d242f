// Package models defines the data structures shared by the resolution and
// deck-building stages.
package models

// Address identifies a single cell by 1-based row and column indices.
type Address struct {
	// Row is the row index (1-based).
	Row int
	// Col is the column index (1-based).
	Col int
}

package ui

// columns.go provides column width calculation and the row builders for
// the dog tables.

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/selection"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	// bubbles/table pads every cell by one on each side
	remaining := totalWidth - fixedTotal - 2*len(specs)
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}
		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}
		columns[i] = table.Column{Title: s.Title, Width: width}
	}
	return columns
}

// DogColumnSpecs is the layout of both dog tables
var DogColumnSpecs = []ColumnSpec{
	{Title: "♥", FixedWidth: 2},
	{Title: "Name", FlexRatio: 25, MinWidth: 10},
	{Title: "Breed", FlexRatio: 45, MinWidth: 14},
	{Title: "Age", FixedWidth: 4},
	{Title: "Zip", FixedWidth: 6},
	{Title: "ID", FlexRatio: 30, MinWidth: 10},
}

const favoriteMark = "♥"

// DogRows renders dogs as table rows, marking favorites
func DogRows(dogs []models.Dog, store *selection.Store) []table.Row {
	rows := make([]table.Row, len(dogs))
	for i, d := range dogs {
		mark := ""
		if store != nil && store.Contains(d.ID) {
			mark = favoriteMark
		}
		rows[i] = table.Row{mark, d.Name, d.Breed, strconv.Itoa(d.Age), d.ZipCode, d.ID}
	}
	return rows
}

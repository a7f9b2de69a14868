package ui

// base_model.go provides the table and key helpers shared by the pages.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates and configures a table with proper styling and dimensions.
// Use this instead of manually calling table.New() to ensure consistent setup.
//
// Example:
//
//	columns := CalculateColumns(DogColumnSpecs, layout.TableWidth)
//	m.table = InitTable(columns, DogRows(dogs, store), layout)
func InitTable(columns []table.Column, rows []table.Row, layout Layout) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// ResizeTable applies a new layout to an existing table
func ResizeTable(t *table.Model, specs []ColumnSpec, layout Layout) {
	t.SetColumns(CalculateColumns(specs, layout.TableWidth))
	t.SetHeight(layout.TableHeight)
}

// SetRowsKeepCursor replaces rows, keeping the cursor in range.
// bubbles/table leaves the cursor at -1 after an empty row set.
func SetRowsKeepCursor(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	if t.Cursor() < 0 && len(rows) > 0 {
		t.SetCursor(0)
	}
}

// navigationKeys are forwarded to the table; every other key belongs to
// the page (the table's default map also binds b, f, space and u)
var navigationKeys = map[string]bool{
	"up": true, "down": true, "k": true, "j": true,
	"pgup": true, "pgdown": true, "home": true, "end": true,
}

// HandleQuitKeys returns true and Quit cmd for q/ctrl+c keys.
// esc is left to the page (back or cancel).
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return true, tea.Quit
	}
	return false, nil
}

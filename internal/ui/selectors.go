package ui

// selectors.go provides the breed picker: a filter input above a
// single-column table, opened from the search page.

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AllBreeds is the picker row that clears the breed filter
const AllBreeds = "All Breeds"

// breedChosenMsg carries the picked breed; "" means all breeds
type breedChosenMsg struct {
	breed string
}

type breedPickerClosedMsg struct{}

// BreedPicker filters and picks one breed
type BreedPicker struct {
	breeds  []string
	options []string
	input   textinput.Model
	table   table.Model
	layout  Layout
}

// NewBreedPicker creates a picker positioned on the current breed
func NewBreedPicker(breeds []string, current string, layout Layout) BreedPicker {
	ti := textinput.New()
	ti.Placeholder = "type to filter breeds"
	ti.Prompt = "filter: "
	ti.CharLimit = 64
	ti.Focus()

	p := BreedPicker{
		breeds: breeds,
		input:  ti,
		layout: layout,
	}
	p.options = filterBreeds(breeds, "")
	p.table = InitTable(CalculateColumns(breedColumns(), layout.TableWidth), breedRows(p.options), layout)
	for i, o := range p.options {
		if o == current {
			p.table.SetCursor(i)
			break
		}
	}
	return p
}

func breedColumns() []ColumnSpec {
	return []ColumnSpec{{Title: "Breed", FlexRatio: 100}}
}

func breedRows(options []string) []table.Row {
	rows := make([]table.Row, len(options))
	for i, o := range options {
		rows[i] = table.Row{o}
	}
	return rows
}

// filterBreeds returns the picker options for query: the "All Breeds"
// row first, then every breed containing query, case-insensitively
func filterBreeds(breeds []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []string{AllBreeds}
	for _, b := range breeds {
		if query == "" || strings.Contains(strings.ToLower(b), query) {
			out = append(out, b)
		}
	}
	return out
}

// Update handles keys while the picker is open
func (p BreedPicker) Update(msg tea.Msg) (BreedPicker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.layout = NewLayout(msg.Width, msg.Height)
		ResizeTable(&p.table, breedColumns(), p.layout)
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return p, func() tea.Msg { return breedPickerClosedMsg{} }
		case "enter":
			choice := p.Selected()
			return p, func() tea.Msg { return breedChosenMsg{breed: choice} }
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			p.table, cmd = p.table.Update(msg)
			return p, cmd
		}

		var cmd tea.Cmd
		before := p.input.Value()
		p.input, cmd = p.input.Update(msg)
		if p.input.Value() != before {
			p.options = filterBreeds(p.breeds, p.input.Value())
			SetRowsKeepCursor(&p.table, breedRows(p.options))
			p.table.GotoTop()
		}
		return p, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Selected returns the highlighted breed, "" for All Breeds
func (p BreedPicker) Selected() string {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.options) || p.options[i] == AllBreeds {
		return ""
	}
	return p.options[i]
}

// View renders the picker
func (p BreedPicker) View(state PageState) string {
	return NewPageView(p.layout).
		Title("Filter by Breed").
		QueryInfo(fmt.Sprintf("%d of %d breeds", len(p.options)-1, len(p.breeds))).
		Text(p.input.View()).
		Table(p.table).
		Status(state).
		Help("type: filter | ↑/↓: navigate | enter: apply | esc: cancel").
		Build()
}

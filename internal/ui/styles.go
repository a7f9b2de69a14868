package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth   = 80
	MaxViewportWidth   = 140
	DefaultWidth       = 100 // Used when terminal size is unknown
	DefaultHeight      = 30
	MinTableHeight     = 5
	chromeHeight       = 14 // title, divider, query line, status, footer box, borders
	footerBoxHeight    = 3
	mainBorderOverhead = 2
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height
	InnerWidth     int // EXACT width for content inside borders
	TableWidth     int // sum of column widths
	TableHeight    int // visible table rows
}

// NewLayout creates a Layout from the terminal size, clamping the width
func NewLayout(width, height int) Layout {
	w := clamp(width, MinViewportWidth, MaxViewportWidth)
	if height <= 0 {
		height = DefaultHeight
	}
	tableHeight := height - chromeHeight
	if tableHeight < MinTableHeight {
		tableHeight = MinTableHeight
	}
	return Layout{
		ViewportWidth:  w,
		ViewportHeight: height,
		InnerWidth:     w - 2,
		TableWidth:     w - 4,
		TableHeight:    tableHeight,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette
var (
	ColorBorder    = lipgloss.Color("196") // red
	ColorHighlight = lipgloss.Color("88")  // dark red background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("226") // bright yellow
	ColorTextDim   = lipgloss.Color("241") // gray
	ColorSuccess   = lipgloss.Color("42")  // green
	colorWhite     = lipgloss.Color("15")
)

var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)

	// Match card: green border like the web app's match panel
	MatchCardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)
)

// NewBorderStyleWithColor returns the rounded border in another color
func NewBorderStyleWithColor(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c)
}

// NewAppSpinner returns the red dot spinner used for remote calls
func NewAppSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorBorder)),
	)
}

// ApplyTableStyles applies the standard header and selection styles
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorTextDim).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorText)
	s.Selected = SelectedStyle
	t.SetStyles(s)
}

// BuildTwoBoxView renders the main content box (red) above a one-row
// help box (white), padding the content to fill the terminal height.
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	mainHeight := layout.ViewportHeight - footerBoxHeight - mainBorderOverhead - 1
	if mainHeight < 10 {
		mainHeight = 10
	}
	if lines := strings.Count(content, "\n"); lines < mainHeight {
		content += strings.Repeat("\n", mainHeight-lines)
	}

	var b strings.Builder
	b.WriteString(BorderStyle.
		Width(layout.InnerWidth).
		Height(mainHeight).
		Render(content))
	b.WriteString("\n")
	b.WriteString(NewBorderStyleWithColor(colorWhite).
		Width(layout.InnerWidth).
		Height(1).
		Render(CenterText(HintStyle.Render(helpText), layout.InnerWidth)))
	return b.String()
}

// ViewHeader renders title + full-width divider + spacing
func ViewHeader(title string, innerWidth int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", innerWidth))
	b.WriteString("\n\n")
	return b.String()
}

// CenterText centers text within width using ANSI-aware widths
func CenterText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// Truncate shortens s to w cells, adding "..." when cut
func Truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	if w <= 3 {
		if w > len(r) {
			w = len(r)
		}
		return string(r[:w])
	}
	if w-3 > len(r) {
		return s
	}
	return string(r[:w-3]) + "..."
}

// NewAppTheme creates a huh theme matching the app's style guide:
// white text, red highlights and selection
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Description = t.Focused.Description

	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorBorder)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorTextDim)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(ColorBorder)

	return t
}

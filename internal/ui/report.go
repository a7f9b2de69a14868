package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/thesavant42/pawsome/internal/models"
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}

// PrintInfo prints a dim informational line
func PrintInfo(message string) {
	fmt.Println(DimStyle.Render(message))
}

// FavoritesReport is everything the markdown report shows
type FavoritesReport struct {
	Link      string
	Dogs      []models.Dog
	Missing   []string
	Matches   []models.MatchRecord
	Generated time.Time
}

// GenerateMarkdownReport builds the favorites report as markdown
func GenerateMarkdownReport(r FavoritesReport) string {
	var sb strings.Builder

	sb.WriteString("# Favorite Dogs\n\n")
	sb.WriteString(fmt.Sprintf("**Favorites:** %d\n\n", len(r.Dogs)))
	sb.WriteString(fmt.Sprintf("**Share link:** <%s>\n\n", r.Link))
	if !r.Generated.IsZero() {
		sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.Generated.Format("2006-01-02 15:04:05")))
	}

	if len(r.Dogs) == 0 {
		sb.WriteString("No favorites saved yet.\n")
	} else {
		sb.WriteString("| # | Name | Breed | Age | Zip | ID |\n")
		sb.WriteString("|---|------|-------|-----|-----|----|\n")
		for i, d := range r.Dogs {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %s | `%s` |\n",
				i+1, escapeCell(d.Name), escapeCell(d.Breed), d.Age, d.ZipCode, d.ID))
		}
	}

	if len(r.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("\n%d saved ids are no longer in the catalog:\n\n", len(r.Missing)))
		for _, id := range r.Missing {
			sb.WriteString(fmt.Sprintf("- `%s`\n", id))
		}
	}

	if len(r.Matches) > 0 {
		sb.WriteString("\n## Recent Matches\n\n")
		for _, m := range r.Matches {
			sb.WriteString(fmt.Sprintf("- %s: **%s** (%s)\n",
				m.MatchedAt.Local().Format("2006-01-02 15:04"), escapeCell(m.Name), escapeCell(m.Breed)))
		}
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders markdown for the terminal, wrapped at width.
// The style follows the terminal background.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

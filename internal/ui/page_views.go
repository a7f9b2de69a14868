package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/thesavant42/pawsome/internal/api"
)

// page_views.go provides a fluent API for building consistent page views.
//
// Example usage:
//
//	return NewPageView(m.Layout).
//	    Title("Dogs").
//	    QueryInfo("Breed: All | Sort: A-Z | Page 1").
//	    Table(m.table).
//	    Status(m.PageState).
//	    Help("n/p: page | space: favorite").
//	    Build()
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

// Title adds the title and a full-width divider.
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	b.content.WriteString(ViewHeader(title, b.layout.InnerWidth))
	b.hadContent = true
	return b
}

// QueryInfo adds query/filter information line (accented yellow).
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	b.content.WriteString(AccentStyle.Render(info))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Text adds normal text content.
func (b *PageViewBuilder) Text(text string) *PageViewBuilder {
	b.content.WriteString(NormalStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// DimText adds dimmed text content.
func (b *PageViewBuilder) DimText(text string) *PageViewBuilder {
	b.content.WriteString(DimStyle.Render(text))
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// CustomContent adds pre-rendered content.
func (b *PageViewBuilder) CustomContent(content string) *PageViewBuilder {
	if content == "" {
		return b
	}
	if b.hadContent {
		b.content.WriteString("\n")
	}
	b.content.WriteString(content)
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Table adds a table.
func (b *PageViewBuilder) Table(t table.Model) *PageViewBuilder {
	if b.hadContent {
		b.content.WriteString("\n")
	}
	b.content.WriteString(t.View())
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Status adds the page's status message, if any.
func (b *PageViewBuilder) Status(p PageState) *PageViewBuilder {
	if !p.HasStatus() {
		return b
	}
	if b.hadContent {
		b.content.WriteString("\n")
	}
	if p.IsError {
		b.content.WriteString(ErrorStyle.Render(p.StatusMsg))
	} else {
		b.content.WriteString(StatusMsgStyle.Render(p.StatusMsg))
	}
	b.content.WriteString("\n")
	b.hadContent = true
	return b
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build constructs the final view string with two-box layout.
func (b *PageViewBuilder) Build() string {
	return BuildTwoBoxView(b.content.String(), b.helpText, b.layout)
}

// describeError turns remote failures into a short status line
func describeError(err error) string {
	var statusErr *api.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnauthorized):
		return "session expired, restart to log in again"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("server returned %d", statusErr.StatusCode)
	}
	return err.Error()
}

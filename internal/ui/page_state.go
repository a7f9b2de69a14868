package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// page_state.go holds the state every page shares: layout and the
// transient status line.

// StatusDuration is how long a status message stays on screen
const StatusDuration = 4 * time.Second

// statusExpiredMsg clears the status it was scheduled for. ids are
// unique across pages so an old tick never clears a newer message.
type statusExpiredMsg struct {
	id int64
}

var statusIDs atomic.Int64

// PageState contains common state that all pages need.
// Embed this in your page model.
type PageState struct {
	Layout    Layout
	StatusMsg string
	IsError   bool
	statusID  int64
}

// NewPageState creates a new PageState with the given layout.
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus shows msg and returns the command that expires it
func (p *PageState) SetStatus(msg string) tea.Cmd {
	return p.setStatus(msg, false)
}

// SetError shows err as a status and returns the command that expires it
func (p *PageState) SetError(prefix string, err error) tea.Cmd {
	return p.setStatus(prefix+": "+describeError(err), true)
}

func (p *PageState) setStatus(msg string, isErr bool) tea.Cmd {
	p.statusID = statusIDs.Add(1)
	p.StatusMsg = msg
	p.IsError = isErr
	id := p.statusID
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// ClearStatus handles a statusExpiredMsg
func (p *PageState) ClearStatus(msg statusExpiredMsg) {
	if msg.id == p.statusID {
		p.StatusMsg = ""
		p.IsError = false
	}
}

// HasStatus returns true if there is a non-empty status message.
func (p *PageState) HasStatus() bool {
	return p.StatusMsg != ""
}

// UpdateLayout updates the layout and returns true if it changed.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}

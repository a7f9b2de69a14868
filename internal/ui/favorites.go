package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/pawsome/internal/cursor"
	"github.com/thesavant42/pawsome/internal/match"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/sharelink"
)

// recentMatchLimit is how many history rows the favorites page shows
const recentMatchLimit = 5

type favoritesLoadedMsg struct {
	seq     uint64
	dogs    []models.Dog
	missing []string
	err     error
}

// FavoritesModel lists the hydrated favorites and shows the match card
type FavoritesModel struct {
	PageState
	session *Session
	seq     cursor.Sequencer
	table   table.Model
	spinner spinner.Model

	dogs      []models.Dog
	missing   int
	loading   bool
	showMatch bool
	history   []models.MatchRecord
}

// NewFavoritesModel creates the favorites page
func NewFavoritesModel(s *Session, layout Layout) FavoritesModel {
	return FavoritesModel{
		PageState: NewPageState(layout),
		session:   s,
		table:     InitTable(CalculateColumns(DogColumnSpecs, layout.TableWidth), nil, layout),
		spinner:   NewAppSpinner(),
	}
}

// Open rebuilds the page from link. A link that carries the ids
// parameter wins over the current favorites; one without it leaves
// them alone.
func (m *FavoritesModel) Open(link string) tea.Cmd {
	store := m.session.Store
	if snap, found := sharelink.Lookup(link); found && !snap.Equivalent(store.Snapshot()) {
		store.Restore(snap)
	}
	m.showMatch = m.session.Resolver.State() == match.Resolved
	m.loadHistory()
	return tea.Batch(m.hydrate(), m.spinner.Tick)
}

func (m *FavoritesModel) hydrate() tea.Cmd {
	seq := m.seq.Next()
	ids := m.session.Store.Snapshot()
	if len(ids) == 0 {
		m.loading = false
		m.dogs = nil
		m.missing = 0
		SetRowsKeepCursor(&m.table, nil)
		return nil
	}
	m.loading = true
	s := m.session
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		dogs, missing, err := s.Catalog.Hydrate(ctx, ids)
		return favoritesLoadedMsg{seq: seq, dogs: dogs, missing: missing, err: err}
	}
}

func (m *FavoritesModel) loadHistory() {
	if m.session.History == nil {
		return
	}
	records, err := m.session.History.RecentMatches(recentMatchLimit)
	if err != nil {
		m.session.logError("Failed to read match history", err)
		return
	}
	m.history = records
}

// Update handles messages for the favorites page
func (m FavoritesModel) Update(msg tea.Msg) (FavoritesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			ResizeTable(&m.table, DogColumnSpecs, m.Layout)
		}
		return m, nil

	case statusExpiredMsg:
		m.ClearStatus(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case favoritesLoadedMsg:
		if !m.seq.Current(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.session.logError("Failed to load favorites", msg.err, "count", m.session.Store.Len())
			return m, m.SetError("Could not load favorites", msg.err)
		}
		// drop anything removed while the request was in flight
		m.dogs = m.dogs[:0:0]
		for _, d := range msg.dogs {
			if m.session.Store.Contains(d.ID) {
				m.dogs = append(m.dogs, d)
			}
		}
		m.missing = 0
		for _, id := range msg.missing {
			if m.session.Store.Contains(id) {
				m.missing++
			}
		}
		SetRowsKeepCursor(&m.table, DogRows(m.dogs, m.session.Store))
		if m.missing > 0 {
			return m, m.SetStatus(fmt.Sprintf("%d favorites are no longer listed", m.missing))
		}
		return m, nil

	case matchDoneMsg:
		if msg.err != nil {
			return m, m.SetError("Match failed", msg.err)
		}
		m.session.settleMatch()
		m.showMatch = m.session.Resolver.State() == match.Resolved
		m.loadHistory()
		return m, nil

	case linkCopiedMsg:
		return m, m.linkStatus(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m FavoritesModel) handleKey(msg tea.KeyMsg) (FavoritesModel, tea.Cmd) {
	key := msg.String()
	if quit, cmd := HandleQuitKeys(key); quit {
		return m, cmd
	}

	switch key {
	case "esc":
		return m, func() tea.Msg { return openSearchMsg{} }

	case "x", "delete":
		i := m.table.Cursor()
		if i < 0 || i >= len(m.dogs) {
			return m, nil
		}
		dog := m.dogs[i]
		m.session.Store.Remove(dog.ID)
		m.dogs = append(m.dogs[:i:i], m.dogs[i+1:]...)
		SetRowsKeepCursor(&m.table, DogRows(m.dogs, m.session.Store))
		if m.showMatch && m.session.Resolver.State() != match.Resolved {
			m.showMatch = false
		}
		return m, m.SetStatus("Removed " + dog.Describe() + " from favorites")

	case "m":
		if m.session.Store.Len() == 0 {
			return m, m.SetStatus("Add some favorites before matching")
		}
		m.showMatch = false
		return m, tea.Batch(m.SetStatus("Finding your match..."), resolveMatch(m.session))

	case "h":
		m.showMatch = false
		m.session.Resolver.Dismiss()
		return m, nil

	case "c":
		return m, copyLink(m.session.ShareLink())
	}

	if navigationKeys[key] {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the favorites page
func (m FavoritesModel) View() string {
	b := NewPageView(m.Layout).
		Title("Pawsome · Favorites").
		QueryInfo(fmt.Sprintf("%s %d favorites | %s", favoriteMark, m.session.Store.Len(), m.session.ShareLink()))

	switch {
	case m.loading:
		b.Text(m.spinner.View() + " Loading favorites...")
	case m.session.Store.Len() == 0:
		b.DimText("No favorites yet. Press esc and use space to add some.")
	case m.missing > 0:
		b.DimText(fmt.Sprintf("%d favorites could not be found", m.missing))
	}

	b.Table(m.table)

	if m.showMatch {
		if res, ok := m.session.Resolver.Result(); ok {
			b.CustomContent(RenderMatchCard(res))
		}
	}
	if len(m.history) > 0 {
		b.CustomContent(renderHistory(m.history))
	}

	return b.Status(m.PageState).
		Help("x: remove | m: match | h: hide match | c: copy link | esc: back | q: quit").
		Build()
}

// RenderMatchCard renders a resolved match
func RenderMatchCard(res models.MatchResult) string {
	d := res.Dog
	lines := []string{
		AccentStyle.Render("It's a match!"),
		"",
		TitleStyle.Render(d.Name),
		NormalStyle.Render(fmt.Sprintf("%s · %d years · %s", d.Breed, d.Age, d.ZipCode)),
		DimStyle.Render(d.ID),
	}
	if d.Img != "" {
		lines = append(lines, DimStyle.Render(d.Img))
	}
	return MatchCardStyle.Render(strings.Join(lines, "\n"))
}

func renderHistory(records []models.MatchRecord) string {
	var b strings.Builder
	b.WriteString(DimStyle.Render("Recent matches"))
	for _, r := range records {
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("  %s  %s (%s)",
			r.MatchedAt.Local().Format("2006-01-02 15:04"), r.Name, r.Breed)))
	}
	return b.String()
}

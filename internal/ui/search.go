package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/pawsome/internal/cursor"
	"github.com/thesavant42/pawsome/internal/models"
)

// searchDoneMsg is the result of one search request, tagged with the
// sequence number it was issued under
type searchDoneMsg struct {
	seq    uint64
	pos    cursor.Position
	result *models.SearchResult
	dogs   []models.Dog
	err    error
}

type breedsLoadedMsg struct {
	breeds []string
	err    error
}

// matchDoneMsg reports that a Resolve finished; the outcome lives in
// the session's resolver
type matchDoneMsg struct {
	err error
}

type linkCopiedMsg struct {
	link string
	err  error
}

// openFavoritesMsg switches to the favorites page for link
type openFavoritesMsg struct {
	link string
}

type openSearchMsg struct{}

// SearchModel is the browse page: breed filter, sort, paging and
// toggling favorites
type SearchModel struct {
	PageState
	session *Session
	seq     cursor.Sequencer
	table   table.Model
	spinner spinner.Model

	dogs      []models.Dog
	total     int
	lastCount int
	loading   bool
	searched  bool
	shown     cursor.Position // where the rows on screen came from

	breeds  []string
	picker  BreedPicker
	picking bool
}

// NewSearchModel creates the search page
func NewSearchModel(s *Session, layout Layout) SearchModel {
	return SearchModel{
		PageState: NewPageState(layout),
		session:   s,
		table:     InitTable(CalculateColumns(DogColumnSpecs, layout.TableWidth), nil, layout),
		spinner:   NewAppSpinner(),
	}
}

// Init loads the breed list and the first page
func (m *SearchModel) Init() tea.Cmd {
	return tea.Batch(m.loadBreeds(), m.search(), m.spinner.Tick)
}

func (m *SearchModel) loadBreeds() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		breeds, err := s.Catalog.Breeds(ctx)
		return breedsLoadedMsg{breeds: breeds, err: err}
	}
}

// search issues the cursor's current query under a fresh sequence number
func (m *SearchModel) search() tea.Cmd {
	seq := m.seq.Next()
	pos := m.session.Cursor.Position()
	q := m.session.Cursor.Query()
	m.loading = true
	s := m.session
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		res, err := s.Catalog.Search(ctx, q)
		if err != nil {
			return searchDoneMsg{seq: seq, pos: pos, err: err}
		}
		dogs, _, err := s.Catalog.Hydrate(ctx, res.ResultIDs)
		return searchDoneMsg{seq: seq, pos: pos, result: res, dogs: dogs, err: err}
	}
}

// Update handles messages for the search page
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			ResizeTable(&m.table, DogColumnSpecs, m.Layout)
		}
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case statusExpiredMsg:
		m.ClearStatus(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case breedsLoadedMsg:
		if msg.err != nil {
			m.session.logError("Failed to load breeds", msg.err)
			return m, m.SetError("Could not load breeds", msg.err)
		}
		m.breeds = msg.breeds
		return m, nil

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case breedChosenMsg:
		m.picking = false
		m.session.Cursor.SetFilter(msg.breed)
		return m, m.search()

	case breedPickerClosedMsg:
		m.picking = false
		return m, nil

	case matchDoneMsg:
		return m.handleMatchDone(msg)

	case linkCopiedMsg:
		return m, m.linkStatus(msg)

	case tea.KeyMsg:
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m SearchModel) handleSearchDone(msg searchDoneMsg) (SearchModel, tea.Cmd) {
	if !m.seq.Current(msg.seq) {
		if m.session.Logger != nil {
			m.session.Logger.Debug("Dropping stale search response", "seq", msg.seq, "latest", m.seq.Last())
		}
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		// previous results stay on screen, so the cursor goes back to them
		m.session.logError("Search failed", msg.err, "from", msg.pos.Offset)
		if m.searched {
			m.session.Cursor.Seek(m.shown)
		}
		return m, m.SetError("Search failed", msg.err)
	}
	m.searched = true
	m.shown = msg.pos
	m.dogs = msg.dogs
	m.total = msg.result.Total
	m.lastCount = len(msg.result.ResultIDs)
	SetRowsKeepCursor(&m.table, DogRows(m.dogs, m.session.Store))
	m.table.GotoTop()
	return m, nil
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	key := msg.String()
	if quit, cmd := HandleQuitKeys(key); quit {
		return m, cmd
	}

	cur := m.session.Cursor
	switch key {
	case "b":
		if m.breeds == nil {
			return m, m.SetStatus("Breeds are still loading")
		}
		m.picker = NewBreedPicker(m.breeds, cur.Breed(), m.Layout)
		m.picking = true
		return m, nil

	case "s":
		cur.ToggleSort()
		return m, m.search()

	case "n":
		if !cur.CanAdvance(m.lastCount) {
			return m, m.SetStatus("Already on the last page")
		}
		cur.NextPage()
		return m, m.search()

	case "p":
		if !cur.CanRetreat() {
			return m, m.SetStatus("Already on the first page")
		}
		cur.PrevPage()
		return m, m.search()

	case " ", "f":
		dog, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		added := m.session.Store.Toggle(dog.ID)
		SetRowsKeepCursor(&m.table, DogRows(m.dogs, m.session.Store))
		if added {
			return m, m.SetStatus("Added " + dog.Describe() + " to favorites")
		}
		return m, m.SetStatus("Removed " + dog.Describe() + " from favorites")

	case "m":
		if m.session.Store.Len() == 0 {
			return m, m.SetStatus("Add some favorites before matching")
		}
		return m, tea.Batch(m.SetStatus("Finding your match..."), resolveMatch(m.session))

	case "c":
		return m, copyLink(m.session.ShareLink())

	case "v":
		return m, func() tea.Msg { return openFavoritesMsg{link: m.session.ShareLink()} }
	}

	if navigationKeys[key] {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SearchModel) handleMatchDone(msg matchDoneMsg) (SearchModel, tea.Cmd) {
	if msg.err != nil {
		return m, m.SetError("Match failed", msg.err)
	}
	m.session.settleMatch()
	res, ok := m.session.Resolver.Result()
	if !ok {
		return m, nil
	}
	return m, m.SetStatus("It's a match: " + res.Dog.Describe() + "! Press v to see it")
}

func (m SearchModel) highlighted() (models.Dog, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.dogs) {
		return models.Dog{}, false
	}
	return m.dogs[i], true
}

// refresh re-renders favorite marks after the store changed elsewhere
func (m *SearchModel) refresh() {
	SetRowsKeepCursor(&m.table, DogRows(m.dogs, m.session.Store))
}

// View renders the search page
func (m SearchModel) View() string {
	if m.picking {
		return m.picker.View(m.PageState)
	}

	b := NewPageView(m.Layout).
		Title("Pawsome · Find a Dog").
		QueryInfo(m.queryInfo())

	switch {
	case m.loading:
		b.Text(m.spinner.View() + " Searching...")
	case m.searched && len(m.dogs) == 0:
		b.DimText("No dogs found for this filter")
	default:
		b.DimText(fmt.Sprintf("%d dogs", m.total))
	}

	return b.Table(m.table).
		Status(m.PageState).
		Help("b: breed | s: sort | n/p: page | space: favorite | m: match | c: copy link | v: favorites | q: quit").
		Build()
}

func (m SearchModel) queryInfo() string {
	cur := m.session.Cursor
	breed := cur.Breed()
	if breed == "" {
		breed = AllBreeds
	}
	sortLabel := "A-Z"
	if cur.Sort() == models.SortDesc {
		sortLabel = "Z-A"
	}
	parts := []string{
		"Breed: " + breed,
		"Sort: " + sortLabel,
		fmt.Sprintf("Page %d", cur.Page()),
		fmt.Sprintf("%s %d favorites", favoriteMark, m.session.Store.Len()),
	}
	return strings.Join(parts, " | ")
}

// resolveMatch runs the resolver over the current favorites
func resolveMatch(s *Session) tea.Cmd {
	ids := s.Store.Snapshot()
	return func() tea.Msg {
		ctx, cancel := s.context()
		defer cancel()
		return matchDoneMsg{err: s.Resolver.Resolve(ctx, ids)}
	}
}

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

func copyLink(link string) tea.Cmd {
	return func() tea.Msg {
		return linkCopiedMsg{link: link, err: clipboardWrite(link)}
	}
}

func (p *PageState) linkStatus(msg linkCopiedMsg) tea.Cmd {
	if msg.err != nil {
		// no clipboard (e.g. over ssh): show the link instead
		return p.SetStatus("Share link: " + msg.link)
	}
	return p.SetStatus("Copied share link: " + msg.link)
}

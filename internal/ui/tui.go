package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type page int

const (
	searchPage page = iota
	favoritesPage
)

// AppModel routes messages between the search and favorites pages
type AppModel struct {
	session   *Session
	page      page
	search    SearchModel
	favorites FavoritesModel
	initCmd   tea.Cmd
}

// NewAppModel creates the app. When startLink is non-empty the app opens
// on the favorites page seeded from it.
func NewAppModel(s *Session, startLink string) AppModel {
	layout := DefaultLayout()
	m := AppModel{
		session:   s,
		search:    NewSearchModel(s, layout),
		favorites: NewFavoritesModel(s, layout),
	}
	cmds := []tea.Cmd{m.search.Init()}
	if startLink != "" {
		m.page = favoritesPage
		cmds = append(cmds, m.favorites.Open(startLink))
	}
	m.initCmd = tea.Batch(append(cmds, tea.WindowSize())...)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg, statusExpiredMsg, spinner.TickMsg:
		// every page keeps its own layout, status and spinner
		var searchCmd, favCmd tea.Cmd
		m.search, searchCmd = m.search.Update(msg)
		m.favorites, favCmd = m.favorites.Update(msg)
		return m, tea.Batch(searchCmd, favCmd)

	case searchDoneMsg, breedsLoadedMsg, breedChosenMsg, breedPickerClosedMsg:
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case favoritesLoadedMsg:
		m.favorites, cmd = m.favorites.Update(msg)
		return m, cmd

	case matchDoneMsg:
		if msg.err == nil {
			m.session.settleMatch()
			m.recordMatch()
		}

	case openFavoritesMsg:
		m.page = favoritesPage
		return m, m.favorites.Open(msg.link)

	case openSearchMsg:
		m.page = searchPage
		m.search.refresh()
		return m, nil
	}

	// everything else goes to the page on screen
	if m.page == favoritesPage {
		m.favorites, cmd = m.favorites.Update(msg)
	} else {
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m AppModel) recordMatch() {
	res, ok := m.session.Resolver.Result()
	if !ok || m.session.History == nil {
		return
	}
	if err := m.session.History.RecordMatch(res); err != nil {
		m.session.logError("Failed to record match", err, "dog_id", res.ID)
	}
}

func (m AppModel) View() string {
	if m.page == favoritesPage {
		return m.favorites.View()
	}
	return m.search.View()
}

// RunApp starts the interactive TUI. With startLink set it opens on the
// favorites page seeded from the link.
func RunApp(s *Session, startLink string) error {
	p := tea.NewProgram(NewAppModel(s, startLink), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/pawsome/internal/cursor"
	"github.com/thesavant42/pawsome/internal/match"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/selection"
	"github.com/thesavant42/pawsome/internal/sharelink"
)

// Catalog is the remote dog catalog as the TUI uses it.
// *api.CatalogClient satisfies it.
type Catalog interface {
	Breeds(ctx context.Context) ([]string, error)
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error)
	FetchDogs(ctx context.Context, ids []string) ([]models.Dog, error)
	Hydrate(ctx context.Context, ids []string) ([]models.Dog, []string, error)
	Match(ctx context.Context, ids []string) (string, error)
}

// History records resolved matches. *db.DB satisfies it.
type History interface {
	RecordMatch(m models.MatchResult) error
	RecentMatches(limit int) ([]models.MatchRecord, error)
}

// SessionConfig carries what a Session is built from
type SessionConfig struct {
	Catalog      Catalog
	Store        *selection.Store
	PageSize     int
	History      History // optional
	Logger       *log.Logger
	ShareBaseURL string
	Timeout      time.Duration
}

// Session is the state shared by the search and favorites pages
type Session struct {
	Catalog      Catalog
	Store        *selection.Store
	Cursor       *cursor.Cursor
	Resolver     *match.Resolver
	History      History
	Logger       *log.Logger
	ShareBaseURL string
	Timeout      time.Duration
}

// NewSession builds the session and hooks the resolver to the store so
// removing the matched dog from favorites clears the match.
func NewSession(cfg SessionConfig) *Session {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Session{
		Catalog:      cfg.Catalog,
		Store:        cfg.Store,
		Cursor:       cursor.New(cfg.PageSize),
		Resolver:     match.NewResolver(cfg.Catalog, cfg.Catalog, cfg.Logger),
		History:      cfg.History,
		Logger:       cfg.Logger,
		ShareBaseURL: cfg.ShareBaseURL,
		Timeout:      timeout,
	}
	s.Store.OnRemove(s.Resolver.Forget)
	return s
}

// ShareLink returns the link for the current favorites
func (s *Session) ShareLink() string {
	return sharelink.Link(s.ShareBaseURL, s.Store.Snapshot())
}

// settleMatch drops a resolved match whose dog left the favorites
// before the resolve started
func (s *Session) settleMatch() {
	if res, ok := s.Resolver.Result(); ok && !s.Store.Contains(res.ID) {
		s.Resolver.Forget(res.ID)
	}
}

func (s *Session) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.Timeout)
}

func (s *Session) logError(msg string, err error, keyvals ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Error(msg, append(keyvals, "error", err)...)
}

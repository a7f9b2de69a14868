// Package match turns a favorites selection into a single matched dog.
//
// The resolver moves Idle -> Resolving -> Resolved, or
// Idle -> Resolving -> Failed; Failed is left by the next Resolve or
// Dismiss. It only reads the selection and never mutates it.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/pawsome/internal/models"
)

// ErrMatchNotHydrated is returned when the catalog has no record for
// the id the match service picked
var ErrMatchNotHydrated = errors.New("matched dog not found in catalog")

// State of the resolver
type State int

const (
	Idle State = iota
	Resolving
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Matcher picks one id out of a candidate set
type Matcher interface {
	Match(ctx context.Context, ids []string) (string, error)
}

// Fetcher bulk-fetches dog records
type Fetcher interface {
	FetchDogs(ctx context.Context, ids []string) ([]models.Dog, error)
}

// Resolver holds the current match. Resolve runs inside a Bubble Tea
// command while Dismiss and Forget run on the update loop, so state is
// guarded by a mutex.
type Resolver struct {
	matcher Matcher
	fetcher Fetcher
	logger  *log.Logger

	mu     sync.Mutex
	state  State
	result models.MatchResult
	err    error
	seq    uint64

	// ids removed from the selection while a resolve is in flight
	forgotten map[string]struct{}
}

// NewResolver creates an idle resolver
func NewResolver(m Matcher, f Fetcher, logger *log.Logger) *Resolver {
	return &Resolver{
		matcher: m,
		fetcher: f,
		logger:  logger,
	}
}

// Resolve asks the match service for one id out of ids, then hydrates it.
// An empty selection is a no-op: no remote call, nil error. On failure the
// resolver ends Failed with no result and the error is returned; there is
// no retry. If Dismiss or another Resolve happens while this one is in
// flight, its outcome is discarded.
func (r *Resolver) Resolve(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	candidates := make([]string, len(ids))
	copy(candidates, ids)

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.state = Resolving
	r.result = models.MatchResult{}
	r.err = nil
	r.forgotten = nil
	r.mu.Unlock()

	result, err := r.fetchMatch(ctx, candidates)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		// superseded; the newer call owns the state
		return err
	}
	if err != nil {
		r.state = Failed
		r.result = models.MatchResult{}
		r.err = err
		if r.logger != nil {
			r.logger.Error("Match failed", "candidates", len(candidates), "error", err)
		}
		return err
	}
	if _, gone := r.forgotten[result.ID]; gone {
		// matched dog left the favorites mid-flight
		if r.logger != nil {
			r.logger.Info("Discarding match for removed favorite", "dog_id", result.ID)
		}
		r.reset()
		return nil
	}
	r.state = Resolved
	r.result = result
	if r.logger != nil {
		r.logger.Info("Match resolved", "dog_id", result.ID, "candidates", len(candidates))
	}
	return nil
}

func (r *Resolver) fetchMatch(ctx context.Context, ids []string) (models.MatchResult, error) {
	id, err := r.matcher.Match(ctx, ids)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("failed to resolve match: %w", err)
	}
	dogs, err := r.fetcher.FetchDogs(ctx, []string{id})
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("failed to fetch matched dog %s: %w", id, err)
	}
	for _, d := range dogs {
		if d.ID == id {
			return models.MatchResult{ID: id, Dog: d}, nil
		}
	}
	return models.MatchResult{}, fmt.Errorf("%w: %s", ErrMatchNotHydrated, id)
}

// Dismiss drops the held result (or failure) and returns to Idle.
// A resolve still in flight is abandoned.
func (r *Resolver) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.reset()
}

// Forget is the selection store's removal hook: removing the matched
// dog from the favorites clears the match. An id removed while a resolve
// is in flight can no longer become the match.
func (r *Resolver) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case Resolved:
		if r.result.ID == id {
			r.reset()
		}
	case Resolving:
		if r.forgotten == nil {
			r.forgotten = make(map[string]struct{})
		}
		r.forgotten[id] = struct{}{}
	}
}

func (r *Resolver) reset() {
	r.state = Idle
	r.result = models.MatchResult{}
	r.err = nil
	r.forgotten = nil
}

// State returns the current state
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Result returns the held match when Resolved
func (r *Resolver) Result() (models.MatchResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.state == Resolved
}

// Err returns the failure when Failed
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

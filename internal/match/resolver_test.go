package match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thesavant42/pawsome/internal/models"
	"github.com/thesavant42/pawsome/internal/selection"
)

type fakeService struct {
	matchID    string
	matchErr   error
	fetchErr   error
	dogs       map[string]models.Dog
	matchCalls int
	fetchCalls int
	gotIDs     []string

	// beforeReturn runs inside Match, to simulate UI events mid-flight
	beforeReturn func()
}

func (f *fakeService) Match(ctx context.Context, ids []string) (string, error) {
	f.matchCalls++
	f.gotIDs = ids
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
	return f.matchID, f.matchErr
}

func (f *fakeService) FetchDogs(ctx context.Context, ids []string) ([]models.Dog, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []models.Dog
	for _, id := range ids {
		if d, ok := f.dogs[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func newFake() *fakeService {
	return &fakeService{
		matchID: "d2",
		dogs: map[string]models.Dog{
			"d1": {ID: "d1", Name: "Rex", Breed: "Beagle"},
			"d2": {ID: "d2", Name: "Luna", Breed: "Pug", Age: 3, ZipCode: "94103"},
		},
	}
}

func TestResolveEmptySelectionIsNoop(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)

	if err := r.Resolve(context.Background(), nil); err != nil {
		t.Fatalf("Resolve(nil) error = %v", err)
	}
	if f.matchCalls != 0 || f.fetchCalls != 0 {
		t.Errorf("remote calls = %d match, %d fetch; want none", f.matchCalls, f.fetchCalls)
	}
	if r.State() != Idle {
		t.Errorf("State() = %v, want idle", r.State())
	}
}

func TestResolveSuccess(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)

	if err := r.Resolve(context.Background(), []string{"d1", "d2"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.State() != Resolved {
		t.Fatalf("State() = %v, want resolved", r.State())
	}
	got, ok := r.Result()
	if !ok {
		t.Fatalf("Result() ok = false")
	}
	want := models.MatchResult{ID: "d2", Dog: f.dogs["d2"]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Result() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d1", "d2"}, f.gotIDs); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFailures(t *testing.T) {
	remote := errors.New("502 bad gateway")

	tests := []struct {
		name    string
		setup   func(f *fakeService)
		wantErr error
	}{
		{"match call fails", func(f *fakeService) { f.matchErr = remote }, remote},
		{"hydrate call fails", func(f *fakeService) { f.fetchErr = remote }, remote},
		{"matched id unknown", func(f *fakeService) { f.matchID = "ghost" }, ErrMatchNotHydrated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake()
			tt.setup(f)
			r := NewResolver(f, f, nil)

			// start from a held result to check it is cleared
			good := newFake()
			r.matcher, r.fetcher = good, good
			if err := r.Resolve(context.Background(), []string{"d1"}); err != nil {
				t.Fatalf("priming Resolve() error = %v", err)
			}
			r.matcher, r.fetcher = f, f

			err := r.Resolve(context.Background(), []string{"d1", "d2"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if r.State() != Failed {
				t.Errorf("State() = %v, want failed", r.State())
			}
			if _, ok := r.Result(); ok {
				t.Errorf("Result() still held after failure")
			}
			if !errors.Is(r.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", r.Err(), tt.wantErr)
			}
			if f.matchCalls != 1 {
				t.Errorf("match called %d times, want 1 (no retry)", f.matchCalls)
			}

			r.Dismiss()
			if r.State() != Idle || r.Err() != nil {
				t.Errorf("after Dismiss: state %v err %v, want idle/nil", r.State(), r.Err())
			}
		})
	}
}

func TestDismiss(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)
	_ = r.Resolve(context.Background(), []string{"d2"})

	r.Dismiss()
	if r.State() != Idle {
		t.Errorf("State() = %v, want idle", r.State())
	}
	if _, ok := r.Result(); ok {
		t.Errorf("Result() held after Dismiss")
	}
}

func TestDismissDuringResolveDiscardsOutcome(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)
	f.beforeReturn = r.Dismiss

	if err := r.Resolve(context.Background(), []string{"d1", "d2"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.State() != Idle {
		t.Errorf("State() = %v, want idle (dismissed mid-flight)", r.State())
	}
}

func TestRemovingMatchedDogClearsMatch(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)

	store := selection.Open(selection.NewMemoryPersister("d1", "d2"), nil)
	store.OnRemove(r.Forget)

	if err := r.Resolve(context.Background(), store.Snapshot()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	store.Remove("d1")
	if r.State() != Resolved {
		t.Fatalf("removing a non-matched dog cleared the match")
	}

	store.Toggle("d2")
	if r.State() != Idle {
		t.Errorf("State() = %v after removing matched dog, want idle", r.State())
	}
	if _, ok := r.Result(); ok {
		t.Errorf("Result() still held after matched dog removed")
	}
}

func TestRemovingCandidateDuringResolve(t *testing.T) {
	tests := []struct {
		name      string
		remove    string
		wantState State
	}{
		{"matched dog removed", "d2", Idle},
		{"other dog removed", "d1", Resolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFake()
			r := NewResolver(f, f, nil)
			store := selection.Open(selection.NewMemoryPersister("d1", "d2"), nil)
			store.OnRemove(r.Forget)
			f.beforeReturn = func() { store.Remove(tt.remove) }

			if err := r.Resolve(context.Background(), store.Snapshot()); err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if r.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", r.State(), tt.wantState)
			}
			if res, ok := r.Result(); ok && !store.Contains(res.ID) {
				t.Errorf("Result() = %s, which is no longer a favorite", res.ID)
			}
		})
	}
}

func TestRestoreDroppingMatchClearsMatch(t *testing.T) {
	f := newFake()
	r := NewResolver(f, f, nil)

	store := selection.Open(selection.NewMemoryPersister("d1", "d2"), nil)
	store.OnRemove(r.Forget)
	_ = r.Resolve(context.Background(), store.Snapshot())

	store.Restore(selection.Snapshot{"d1"})
	if r.State() != Idle {
		t.Errorf("State() = %v, want idle", r.State())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Resolving: "resolving", Resolved: "resolved", Failed: "failed", State(9): "State(9)"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

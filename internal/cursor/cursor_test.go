package cursor

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thesavant42/pawsome/internal/models"
)

func TestNewDefaults(t *testing.T) {
	c := New(0)
	if c.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", c.PageSize(), DefaultPageSize)
	}
	if c.Sort() != models.SortAsc {
		t.Errorf("Sort() = %q, want asc", c.Sort())
	}
	if c.Offset() != 0 || c.Page() != 1 {
		t.Errorf("Offset()/Page() = %d/%d, want 0/1", c.Offset(), c.Page())
	}
}

func TestSetFilterResetsOffset(t *testing.T) {
	tests := []struct {
		name  string
		pages int
	}{
		{"first page", 0},
		{"third page", 2},
		{"far page", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(12)
			for i := 0; i < tt.pages; i++ {
				c.NextPage()
			}
			c.SetFilter("Beagle")
			if c.Offset() != 0 {
				t.Errorf("Offset() after SetFilter = %d, want 0", c.Offset())
			}
			if c.Breed() != "Beagle" {
				t.Errorf("Breed() = %q, want Beagle", c.Breed())
			}
		})
	}
}

func TestSetSortKeepsOffset(t *testing.T) {
	c := New(12)
	c.NextPage()
	c.SetSort(models.SortDesc)
	if c.Offset() != 12 {
		t.Errorf("Offset() = %d, want 12", c.Offset())
	}
	if c.Sort() != models.SortDesc {
		t.Errorf("Sort() = %q, want desc", c.Sort())
	}

	c.SetSort("sideways")
	if c.Sort() != models.SortDesc {
		t.Errorf("invalid direction changed sort to %q", c.Sort())
	}

	c.ToggleSort()
	if c.Sort() != models.SortAsc {
		t.Errorf("ToggleSort() = %q, want asc", c.Sort())
	}
}

func TestPaging(t *testing.T) {
	c := New(12)

	c.PrevPage()
	if c.Offset() != 0 {
		t.Errorf("PrevPage() at 0 = %d, want 0", c.Offset())
	}

	c.NextPage()
	c.NextPage()
	start := c.Offset()
	c.NextPage()
	c.PrevPage()
	if c.Offset() != start {
		t.Errorf("NextPage+PrevPage = %d, want %d", c.Offset(), start)
	}
	if c.Offset()%c.PageSize() != 0 {
		t.Errorf("Offset() %d not a multiple of %d", c.Offset(), c.PageSize())
	}
	if c.Page() != 3 {
		t.Errorf("Page() = %d, want 3", c.Page())
	}
}

func TestCanAdvance(t *testing.T) {
	c := New(12)

	if !c.CanAdvance(12) {
		t.Fatalf("CanAdvance(12) = false, want true")
	}
	c.NextPage()
	if c.Query().From != 12 {
		t.Errorf("From = %d, want 12", c.Query().From)
	}
	if c.CanAdvance(5) {
		t.Errorf("CanAdvance(5) = true, want false (short page ends results)")
	}
	if !c.CanRetreat() {
		t.Errorf("CanRetreat() = false on page 2")
	}
}

func TestQuery(t *testing.T) {
	c := New(12)

	want := models.SearchQuery{Size: 12, From: 0, Sort: "breed:asc"}
	if diff := cmp.Diff(want, c.Query()); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}

	c.SetFilter("Pug")
	c.NextPage()
	c.SetSort(models.SortDesc)
	want = models.SearchQuery{Breeds: []string{"Pug"}, Size: 12, From: 12, Sort: "breed:desc"}
	if diff := cmp.Diff(want, c.Query()); diff != "" {
		t.Errorf("Query() mismatch (-want +got):\n%s", diff)
	}

	c.SetFilter("")
	if c.Query().Breeds != nil {
		t.Errorf("Breeds = %v, want nil after clearing filter", c.Query().Breeds)
	}
}

func TestQueryValues(t *testing.T) {
	c := New(12)
	v := c.Query().Values()
	if _, ok := v["breeds"]; ok {
		t.Errorf("breeds present without a filter: %v", v)
	}

	c.SetFilter("Golden Retriever")
	got := c.Query().Values()
	want := url.Values{
		"breeds": {"Golden Retriever"},
		"size":   {"12"},
		"from":   {"0"},
		"sort":   {"breed:asc"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestSequencer(t *testing.T) {
	var s Sequencer
	if s.Current(0) {
		t.Errorf("Current(0) = true before any request")
	}

	first := s.Next()
	if !s.Current(first) {
		t.Errorf("Current(%d) = false for newest request", first)
	}

	second := s.Next()
	if s.Current(first) {
		t.Errorf("Current(%d) = true after it was superseded", first)
	}
	if !s.Current(second) || second <= first {
		t.Errorf("second = %d, first = %d; want newer and current", second, first)
	}
	if s.Last() != second {
		t.Errorf("Last() = %d, want %d", s.Last(), second)
	}
}

func TestSeek(t *testing.T) {
	c := New(10)
	c.SetFilter("Pug")
	c.NextPage()
	saved := c.Position()

	c.SetFilter("Beagle")
	c.ToggleSort()
	c.Seek(saved)
	if diff := cmp.Diff(saved, c.Position()); diff != "" {
		t.Errorf("Position() after Seek mismatch (-want +got):\n%s", diff)
	}

	c.Seek(Position{Offset: 25, Sort: "sideways"})
	want := Position{Offset: 20, Sort: models.SortAsc}
	if diff := cmp.Diff(want, c.Position()); diff != "" {
		t.Errorf("Seek() did not snap (-want +got):\n%s", diff)
	}
}

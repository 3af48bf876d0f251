package table_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/table"
)

func TestHeaderDepthAndSpans(t *testing.T) {
	tbl, err := table.New([]table.Column{
		fixedCol(100), fixedCol(100), {Label: "Gamma", InitWidth: 100, MinWidth: 100, MaxWidth: 100},
	}, 3, table.WithHeader(
		table.Group("pair", table.Leaf(0), table.Leaf(1)),
		table.Leaf(2),
	))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if tbl.HeaderRows() != 2 {
		t.Fatalf("expected 2 header rows, got %d", tbl.HeaderRows())
	}

	f, err := tbl.Layout(table.Viewport{Width: 300, Height: 200})
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	defer table.ReleaseFrame(f)

	want := []table.HeaderInstruction{
		{
			HeaderCell: table.HeaderCell{Title: "pair", Row: 0, RowSpan: 1, ColStart: 0, ColEnd: 2},
			Rect:       table.Rect{X: 0, Y: 0, W: 200, H: 24},
			Region:     table.RegionRightTop,
		},
		{
			// A shallow leaf beside a group extends down to the deepest row.
			HeaderCell: table.HeaderCell{Title: "Gamma", Row: 0, RowSpan: 2, ColStart: 2, ColEnd: 3, Leaf: true},
			Rect:       table.Rect{X: 200, Y: 0, W: 100, H: 48},
			Region:     table.RegionRightTop,
		},
		{
			HeaderCell: table.HeaderCell{Row: 1, RowSpan: 1, ColStart: 0, ColEnd: 1, Leaf: true},
			Rect:       table.Rect{X: 0, Y: 24, W: 100, H: 24},
			Region:     table.RegionRightTop,
		},
		{
			HeaderCell: table.HeaderCell{Row: 1, RowSpan: 1, ColStart: 1, ColEnd: 2, Leaf: true},
			Rect:       table.Rect{X: 100, Y: 24, W: 100, H: 24},
			Region:     table.RegionRightTop,
		},
	}
	if diff := cmp.Diff(want, f.Headers); diff != "" {
		t.Errorf("unexpected header instructions (-want, +got):\n%s", diff)
	}

	// The body starts below both header rows.
	if len(f.Cells) == 0 {
		t.Fatal("expected body cells")
	}
	if f.Cells[0].Rect.Y != 48 {
		t.Errorf("expected first body cell at y=48, got %g", f.Cells[0].Rect.Y)
	}
}

func TestHeaderValidation(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100), fixedCol(100), fixedCol(100)}, 3)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := tbl.SetHeader(table.Leaf(0), table.Leaf(1), table.Leaf(2)); err != nil {
		t.Fatalf("SetHeader returned error: %v", err)
	}

	if err := tbl.SetHeader(table.Group("empty")); !errors.Is(err, table.ErrEmptyGroup) {
		t.Errorf("expected ErrEmptyGroup, got %v", err)
	}
	if err := tbl.SetHeader(table.Leaf(0), table.Leaf(0)); !errors.Is(err, table.ErrDuplicateLeaf) {
		t.Errorf("expected ErrDuplicateLeaf, got %v", err)
	}
	if err := tbl.SetHeader(table.Leaf(1), table.Leaf(0)); !errors.Is(err, table.ErrHeaderOrder) {
		t.Errorf("expected ErrHeaderOrder, got %v", err)
	}
	if err := tbl.SetHeader(table.Leaf(0), table.Leaf(5)); !errors.Is(err, table.ErrColumnBounds) {
		t.Errorf("expected ErrColumnBounds, got %v", err)
	}
	// A group's leaves must cover a contiguous column run.
	if err := tbl.SetHeader(table.Group("gap", table.Leaf(0), table.Leaf(2))); !errors.Is(err, table.ErrHeaderOrder) {
		t.Errorf("expected ErrHeaderOrder for gapped group, got %v", err)
	}

	// Failed installs leave the previous header in place.
	if tbl.HeaderRows() != 1 {
		t.Errorf("expected previous header to survive failed installs, got %d rows", tbl.HeaderRows())
	}
}

func TestHeaderStickyRegions(t *testing.T) {
	tbl, err := table.New([]table.Column{
		{InitWidth: 100, MinWidth: 100, MaxWidth: 100, Sticky: true},
		fixedCol(100),
		fixedCol(100),
	}, 3, table.WithHeader(table.Leaf(0), table.Leaf(1), table.Leaf(2)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	f, err := tbl.Layout(table.Viewport{ScrollX: 30, Width: 250, Height: 100})
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	if len(f.Headers) != 3 {
		t.Fatalf("expected 3 header instructions, got %d", len(f.Headers))
	}
	// Scrolling header cells come first, the pinned cell last so it paints
	// on top.
	if f.Headers[0].ColStart != 1 || f.Headers[0].Region != table.RegionRightTop {
		t.Errorf("expected scrolling header first, got %+v", f.Headers[0])
	}
	if f.Headers[0].Rect.X != 70 {
		t.Errorf("expected scrolled header at x=70, got %g", f.Headers[0].Rect.X)
	}
	last := f.Headers[2]
	if last.ColStart != 0 || last.Region != table.RegionLeftTop {
		t.Errorf("expected pinned header last, got %+v", last)
	}
	if last.Rect.X != 0 {
		t.Errorf("expected pinned header at x=0, got %g", last.Rect.X)
	}
	table.ReleaseFrame(f)

	// A narrow viewport culls header cells that fall outside the scrolling
	// region.
	f, err = tbl.Layout(table.Viewport{Width: 150, Height: 100})
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	defer table.ReleaseFrame(f)
	for _, h := range f.Headers {
		if h.ColStart == 2 {
			t.Errorf("expected header for column 2 to be culled, got %+v", h)
		}
	}
}

func TestClearHeader(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 2,
		table.WithHeader(table.Leaf(0)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	tbl.ClearHeader()
	if tbl.HeaderRows() != 0 {
		t.Fatalf("expected 0 header rows after clear, got %d", tbl.HeaderRows())
	}

	f, err := tbl.Layout(table.Viewport{Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	defer table.ReleaseFrame(f)
	if len(f.Headers) != 0 {
		t.Errorf("expected no header instructions, got %d", len(f.Headers))
	}
	if f.Cells[0].Rect.Y != 0 {
		t.Errorf("expected body to start at y=0 without a header, got %g", f.Cells[0].Rect.Y)
	}
}

func TestSetColumnsChecksHeader(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100), fixedCol(100), fixedCol(100)}, 3,
		table.WithHeader(table.Leaf(0), table.Leaf(2)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = tbl.SetColumns([]table.Column{fixedCol(100), fixedCol(100)})
	if !errors.Is(err, table.ErrColumnBounds) {
		t.Fatalf("expected ErrColumnBounds, got %v", err)
	}
	if tbl.NumColumns() != 3 {
		t.Errorf("expected failed SetColumns to leave columns unchanged, got %d", tbl.NumColumns())
	}

	if err := tbl.SetColumns([]table.Column{fixedCol(100), fixedCol(100), fixedCol(100), fixedCol(100)}); err != nil {
		t.Fatalf("SetColumns returned error: %v", err)
	}
	if tbl.NumColumns() != 4 {
		t.Errorf("expected 4 columns, got %d", tbl.NumColumns())
	}
}

package table_test

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/table"
)

// layoutRows is a helper returning the visible row range for one viewport.
func layoutRows(t *testing.T, tbl *table.Table, vp table.Viewport) table.RowRange {
	t.Helper()
	f, err := tbl.Layout(vp)
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	defer table.ReleaseFrame(f)
	return f.Visible.Rows
}

func TestVisibleRowsBottomEdge(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 100)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// A row starting exactly at the bottom edge is not visible.
	rows := layoutRows(t, tbl, table.Viewport{Width: 100, Height: 48})
	if rows.First != 0 || rows.Last != 1 {
		t.Errorf("expected rows 0..1 in a 48px viewport, got %+v", rows)
	}

	// One more pixel brings the next row in.
	rows = layoutRows(t, tbl, table.Viewport{Width: 100, Height: 49})
	if rows.First != 0 || rows.Last != 2 {
		t.Errorf("expected rows 0..2 in a 49px viewport, got %+v", rows)
	}

	// Partially visible rows count on both ends.
	rows = layoutRows(t, tbl, table.Viewport{ScrollY: 30, Width: 100, Height: 48})
	if rows.First != 1 || rows.Last != 3 {
		t.Errorf("expected rows 1..3 under scroll, got %+v", rows)
	}
}

func TestVisibleRowsMonotonicUnderScroll(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 500)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_ = tbl.ExpandRow(100, 300)
	_ = tbl.SetRowHeight(200, 90)

	var prevFirst, prevLast int64 = -1, -1
	for y := 0.0; y < tbl.ContentHeight(); y += 37 {
		rows := layoutRows(t, tbl, table.Viewport{ScrollY: y, Width: 100, Height: 200})
		if rows.Empty() {
			t.Fatalf("expected visible rows at y=%g", y)
		}
		if rows.First < prevFirst || rows.Last < prevLast {
			t.Fatalf("visible range moved backwards at y=%g: %+v after %d..%d", y, rows, prevFirst, prevLast)
		}
		prevFirst, prevLast = rows.First, rows.Last
	}
}

func TestVisibleRowsTrackIndexChanges(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 500)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	vp := table.Viewport{ScrollY: 240, Width: 100, Height: 100}
	rows := layoutRows(t, tbl, vp)
	if rows.First != 10 {
		t.Fatalf("expected row 10 at y=240, got %+v", rows)
	}

	// Expanding a row above the window pushes content down; the very next
	// frame reflects it.
	if err := tbl.ExpandRow(5, 100); err != nil {
		t.Fatalf("ExpandRow returned error: %v", err)
	}
	rows = layoutRows(t, tbl, vp)
	if rows.First != 5 {
		t.Errorf("expected the expanded row 5 to cover y=240, got %+v", rows)
	}

	if err := tbl.CollapseRow(5); err != nil {
		t.Fatalf("CollapseRow returned error: %v", err)
	}
	rows = layoutRows(t, tbl, vp)
	if rows.First != 10 {
		t.Errorf("expected row 10 again after collapse, got %+v", rows)
	}
}

func TestPrefetchMargins(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 100,
		table.WithPrefetchRows(3))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	f, err := tbl.Layout(table.Viewport{ScrollY: 240, Width: 100, Height: 96})
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	vis, pre := f.Visible.Rows, f.Prefetch
	table.ReleaseFrame(f)
	if vis.First != 10 || vis.Last != 13 {
		t.Fatalf("expected rows 10..13 visible, got %+v", vis)
	}
	if pre.First != 7 || pre.Last != 16 {
		t.Errorf("expected prefetch 7..16, got %+v", pre)
	}

	// The margin clamps at the table edges.
	f, _ = tbl.Layout(table.Viewport{Width: 100, Height: 96})
	pre = f.Prefetch
	table.ReleaseFrame(f)
	if pre.First != 0 || pre.Last != 6 {
		t.Errorf("expected prefetch 0..6 at the top, got %+v", pre)
	}

	// Pixel margins convert to whole baseline rows and add to row margins.
	tbl, err = table.New([]table.Column{fixedCol(100)}, 100,
		table.WithPrefetchRows(2), table.WithPrefetchPixels(50))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	f, _ = tbl.Layout(table.Viewport{ScrollY: 240, Width: 100, Height: 96})
	pre = f.Prefetch
	table.ReleaseFrame(f)
	if pre.First != 5 || pre.Last != 18 {
		t.Errorf("expected prefetch 5..18 with combined margins, got %+v", pre)
	}
}

func TestScrollToRow(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 100)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	vp := table.Viewport{Width: 100, Height: 240}

	// Below the window: the row's bottom edge aligns with the viewport
	// bottom.
	y, err := tbl.ScrollToRow(50, vp, 0)
	if err != nil {
		t.Fatalf("ScrollToRow returned error: %v", err)
	}
	if y != 984 {
		t.Errorf("expected scroll 984, got %g", y)
	}

	// Above the window: the row's top edge aligns with the viewport top.
	y, _ = tbl.ScrollToRow(5, vp, y)
	if y != 120 {
		t.Errorf("expected scroll 120, got %g", y)
	}

	// Already fully visible: no motion.
	y, _ = tbl.ScrollToRow(7, vp, 120)
	if y != 120 {
		t.Errorf("expected scroll unchanged at 120, got %g", y)
	}

	// Taller than the window: align the top edge.
	if err := tbl.ExpandRow(60, 300); err != nil {
		t.Fatalf("ExpandRow returned error: %v", err)
	}
	y, _ = tbl.ScrollToRow(60, vp, 0)
	if y != 1440 {
		t.Errorf("expected scroll 1440 for a row taller than the window, got %g", y)
	}

	if _, err := tbl.ScrollToRow(100, vp, 0); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds, got %v", err)
	}
}

func TestScrollToRowUnderHeader(t *testing.T) {
	tbl, err := table.New([]table.Column{fixedCol(100)}, 100,
		table.WithHeader(table.Leaf(0)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// The header band eats 24px, so the body window is 216px tall.
	y, err := tbl.ScrollToRow(50, table.Viewport{Width: 100, Height: 240}, 0)
	if err != nil {
		t.Fatalf("ScrollToRow returned error: %v", err)
	}
	if y != 1008 {
		t.Errorf("expected scroll 1008 under a header, got %g", y)
	}
}

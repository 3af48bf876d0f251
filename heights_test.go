package table_test

import (
	"errors"
	"testing"

	"github.com/go-theft-auto/table"
)

func newHeights(t *testing.T, rows int64, baseline float32) *table.RowHeights {
	t.Helper()
	h, err := table.NewRowHeights(rows, baseline)
	if err != nil {
		t.Fatalf("NewRowHeights returned error: %v", err)
	}
	return h
}

func offsetOf(t *testing.T, h *table.RowHeights, row int64) float64 {
	t.Helper()
	o, err := h.OffsetOf(row)
	if err != nil {
		t.Fatalf("OffsetOf(%d) returned error: %v", row, err)
	}
	return o
}

func TestRowOffsetsUniform(t *testing.T) {
	h := newHeights(t, 1000, 24)

	if got := offsetOf(t, h, 0); got != 0 {
		t.Errorf("expected offset 0 for row 0, got %g", got)
	}
	if got := offsetOf(t, h, 500); got != 12000 {
		t.Errorf("expected offset 12000 for row 500, got %g", got)
	}
	if got := offsetOf(t, h, 1000); got != 24000 {
		t.Errorf("expected offset 24000 for row 1000, got %g", got)
	}
	if got := h.TotalHeight(); got != 24000 {
		t.Errorf("expected total height 24000, got %g", got)
	}

	if got := h.RowAt(0); got != 0 {
		t.Errorf("expected row 0 at y=0, got %d", got)
	}
	if got := h.RowAt(11999.5); got != 499 {
		t.Errorf("expected row 499 at y=11999.5, got %d", got)
	}
	if got := h.RowAt(12000); got != 500 {
		t.Errorf("expected row 500 at y=12000, got %d", got)
	}
	// Out-of-content coordinates clamp to the first and last row.
	if got := h.RowAt(-5); got != 0 {
		t.Errorf("expected clamp to row 0, got %d", got)
	}
	if got := h.RowAt(1e9); got != 999 {
		t.Errorf("expected clamp to row 999, got %d", got)
	}
}

func TestRowHeightOverride(t *testing.T) {
	h := newHeights(t, 100, 10)

	if err := h.SetHeight(10, 30); err != nil {
		t.Fatalf("SetHeight returned error: %v", err)
	}
	if got, _ := h.Height(10); got != 30 {
		t.Errorf("expected height 30, got %g", got)
	}
	if got := offsetOf(t, h, 10); got != 100 {
		t.Errorf("expected offset of the overridden row unchanged at 100, got %g", got)
	}
	if got := offsetOf(t, h, 11); got != 130 {
		t.Errorf("expected offset 130 after the override, got %g", got)
	}
	if got := h.TotalHeight(); got != 1020 {
		t.Errorf("expected total 1020, got %g", got)
	}

	if got := h.RowAt(105); got != 10 {
		t.Errorf("expected row 10 at y=105, got %d", got)
	}
	if got := h.RowAt(129.5); got != 10 {
		t.Errorf("expected row 10 at y=129.5, got %d", got)
	}
	if got := h.RowAt(130); got != 11 {
		t.Errorf("expected row 11 at y=130, got %d", got)
	}

	if err := h.ClearHeight(10); err != nil {
		t.Fatalf("ClearHeight returned error: %v", err)
	}
	if got := h.TotalHeight(); got != 1000 {
		t.Errorf("expected total 1000 after clear, got %g", got)
	}
	if h.Overrides() != 0 {
		t.Errorf("expected no overrides after clear, got %d", h.Overrides())
	}
}

func TestExpandRow(t *testing.T) {
	h := newHeights(t, 1000, 24)
	before101 := offsetOf(t, h, 101)

	if err := h.Expand(100, 57.5); err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	// The total grows by exactly the expansion; rows at or before the
	// expanded one do not move.
	if got := h.TotalHeight(); got != 24000+57.5 {
		t.Errorf("expected total 24057.5, got %g", got)
	}
	if got := offsetOf(t, h, 50); got != 1200 {
		t.Errorf("expected offset of row 50 unchanged at 1200, got %g", got)
	}
	if got := offsetOf(t, h, 100); got != 2400 {
		t.Errorf("expected offset of the expanded row unchanged at 2400, got %g", got)
	}
	if got := offsetOf(t, h, 101); got != before101+57.5 {
		t.Errorf("expected offset of row 101 shifted to %g, got %g", before101+57.5, got)
	}
	if !h.Expanded(100) {
		t.Error("expected row 100 to report expanded")
	}
	if h.Expanded(99) {
		t.Error("expected row 99 to report collapsed")
	}

	// Expanding again replaces the surplus rather than stacking it.
	if err := h.Expand(100, 10); err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got := h.TotalHeight(); got != 24010 {
		t.Errorf("expected total 24010 after re-expand, got %g", got)
	}

	if err := h.Collapse(100); err != nil {
		t.Fatalf("Collapse returned error: %v", err)
	}
	if got := h.TotalHeight(); got != 24000 {
		t.Errorf("expected total 24000 after collapse, got %g", got)
	}
	if h.Expanded(100) {
		t.Error("expected row 100 to report collapsed")
	}
	if h.Overrides() != 0 {
		t.Errorf("expected no overrides after collapse, got %d", h.Overrides())
	}
}

func TestExpandKeepsExplicitHeight(t *testing.T) {
	h := newHeights(t, 10, 24)

	if err := h.SetHeight(5, 40); err != nil {
		t.Fatalf("SetHeight returned error: %v", err)
	}
	if err := h.Expand(5, 10); err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got, _ := h.Height(5); got != 50 {
		t.Errorf("expected height 50, got %g", got)
	}

	// Clearing the explicit height keeps the expansion.
	if err := h.ClearHeight(5); err != nil {
		t.Fatalf("ClearHeight returned error: %v", err)
	}
	if got, _ := h.Height(5); got != 34 {
		t.Errorf("expected baseline plus expansion 34, got %g", got)
	}

	// Collapsing then removes the record entirely.
	if err := h.Collapse(5); err != nil {
		t.Fatalf("Collapse returned error: %v", err)
	}
	if got, _ := h.Height(5); got != 24 {
		t.Errorf("expected baseline 24, got %g", got)
	}
	if h.Overrides() != 0 {
		t.Errorf("expected no overrides, got %d", h.Overrides())
	}
}

func TestZeroHeightRowSkipped(t *testing.T) {
	h := newHeights(t, 10, 10)

	if err := h.SetHeight(3, 0); err != nil {
		t.Fatalf("SetHeight returned error: %v", err)
	}
	if got := h.TotalHeight(); got != 90 {
		t.Errorf("expected total 90, got %g", got)
	}
	if a, b := offsetOf(t, h, 3), offsetOf(t, h, 4); a != b {
		t.Errorf("expected rows 3 and 4 to share an offset, got %g and %g", a, b)
	}
	// The zero-height row occupies no span, so the coordinate at its
	// offset belongs to the next row.
	if got := h.RowAt(30); got != 4 {
		t.Errorf("expected row 4 at y=30, got %d", got)
	}
	if got := h.RowAt(29.5); got != 2 {
		t.Errorf("expected row 2 at y=29.5, got %d", got)
	}
}

func TestRowAtOffsetRoundTrip(t *testing.T) {
	h := newHeights(t, 200, 16)

	mut := map[int64]float32{7: 100, 8: 0, 64: 3.5, 190: 48}
	for row, height := range mut {
		if err := h.SetHeight(row, height); err != nil {
			t.Fatalf("SetHeight(%d) returned error: %v", row, err)
		}
	}
	if err := h.Expand(32, 20); err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}

	prev := 0.0
	for row := int64(0); row <= 200; row++ {
		o := offsetOf(t, h, row)
		if o < prev {
			t.Fatalf("offsets not monotonic: row %d at %g after %g", row, o, prev)
		}
		prev = o

		if row == 200 {
			break
		}
		rh, err := h.Height(row)
		if err != nil {
			t.Fatalf("Height(%d) returned error: %v", row, err)
		}
		if rh > 0 {
			if got := h.RowAt(o); got != row {
				t.Fatalf("RowAt(OffsetOf(%d)) = %d", row, got)
			}
		}
	}
	if got := offsetOf(t, h, 200); got != h.TotalHeight() {
		t.Errorf("expected offset past the last row to equal the total, got %g vs %g", got, h.TotalHeight())
	}
}

func TestQueryCostScalesWithOverrides(t *testing.T) {
	const rows = 1_000_000
	h := newHeights(t, rows, 24)
	for i := int64(0); i < 10; i++ {
		if err := h.SetHeight(i*100_000, 48); err != nil {
			t.Fatalf("SetHeight returned error: %v", err)
		}
	}

	if got := h.TotalHeight(); got != 24*(rows-10)+48*10 {
		t.Fatalf("expected total %g, got %g", float64(24*(rows-10)+48*10), got)
	}

	h.ResetVisits()
	_ = offsetOf(t, h, 999_999)
	_ = h.RowAt(h.TotalHeight() / 2)
	// Both queries walk the override tree, never the rows. Ten overrides
	// give a tree a handful of levels deep.
	if v := h.Visits(); v > 64 {
		t.Errorf("expected a few dozen node visits at most, got %d", v)
	}

	if got := offsetOf(t, h, 999_999); got != 24*(999_999-10)+48*10 {
		t.Errorf("unexpected offset for row 999999: %g", got)
	}
}

func TestSetRowCountTruncates(t *testing.T) {
	h := newHeights(t, 100, 10)
	if err := h.SetHeight(50, 99); err != nil {
		t.Fatalf("SetHeight returned error: %v", err)
	}
	if err := h.SetHeight(99, 77); err != nil {
		t.Fatalf("SetHeight returned error: %v", err)
	}

	if err := h.SetRowCount(60); err != nil {
		t.Fatalf("SetRowCount returned error: %v", err)
	}
	if h.Overrides() != 1 {
		t.Errorf("expected the override past the new count to be dropped, got %d overrides", h.Overrides())
	}
	if got := h.TotalHeight(); got != 59*10+99 {
		t.Errorf("expected total 689, got %g", got)
	}
	if err := h.SetHeight(99, 10); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds past the new count, got %v", err)
	}

	// Growing keeps surviving overrides.
	if err := h.SetRowCount(200); err != nil {
		t.Fatalf("SetRowCount returned error: %v", err)
	}
	if got := h.TotalHeight(); got != 199*10+99 {
		t.Errorf("expected total 2089, got %g", got)
	}
}

func TestRowHeightErrors(t *testing.T) {
	if _, err := table.NewRowHeights(-1, 24); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds for negative row count, got %v", err)
	}
	if _, err := table.NewRowHeights(10, 0); !errors.Is(err, table.ErrRowHeight) {
		t.Errorf("expected ErrRowHeight for zero baseline, got %v", err)
	}

	h := newHeights(t, 10, 24)
	if err := h.SetHeight(-1, 10); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds, got %v", err)
	}
	if err := h.SetHeight(10, 10); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds, got %v", err)
	}
	if err := h.SetHeight(0, -5); !errors.Is(err, table.ErrRowHeight) {
		t.Errorf("expected ErrRowHeight for negative height, got %v", err)
	}
	if err := h.Expand(0, 0); !errors.Is(err, table.ErrRowHeight) {
		t.Errorf("expected ErrRowHeight for zero expansion, got %v", err)
	}
	if _, err := h.OffsetOf(11); !errors.Is(err, table.ErrRowBounds) {
		t.Errorf("expected ErrRowBounds past row count, got %v", err)
	}
	if _, err := h.OffsetOf(10); err != nil {
		t.Errorf("expected OffsetOf(RowCount) to be valid, got %v", err)
	}
}

func BenchmarkOffsetOf(b *testing.B) {
	h, err := table.NewRowHeights(1_000_000, 24)
	if err != nil {
		b.Fatalf("NewRowHeights returned error: %v", err)
	}
	for i := int64(0); i < 1000; i++ {
		if err := h.SetHeight(i*997, 48); err != nil {
			b.Fatalf("SetHeight returned error: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.OffsetOf(int64(i) % 1_000_000)
	}
}

func BenchmarkRowAt(b *testing.B) {
	h, err := table.NewRowHeights(1_000_000, 24)
	if err != nil {
		b.Fatalf("NewRowHeights returned error: %v", err)
	}
	for i := int64(0); i < 1000; i++ {
		if err := h.SetHeight(i*997, 48); err != nil {
			b.Fatalf("SetHeight returned error: %v", err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.RowAt(float64(i % 24_000_000))
	}
}

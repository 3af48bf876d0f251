package table

import "math"

// Viewport is the per-frame scroll state: where the caller has scrolled to
// and how much screen the table gets. Scroll offsets are float64 because
// content height can exceed what a float32 mantissa resolves; the engine
// clamps them into the scrollable range and reports the clamped values on
// the Frame.
type Viewport struct {
	ScrollX float64
	ScrollY float64
	Width   float32
	Height  float32
}

// RowRange is an inclusive interval of row indices. It is empty when
// Last < First; the canonical empty range is {0, -1}.
type RowRange struct {
	First, Last int64
}

// Empty reports whether the range covers no rows.
func (r RowRange) Empty() bool { return r.Last < r.First }

// Count returns the number of rows in the range.
func (r RowRange) Count() int64 {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether row lies in the range.
func (r RowRange) Contains(row int64) bool {
	return r.First <= row && row <= r.Last
}

// ColRange is an inclusive interval of column indices, empty when
// Last < First.
type ColRange struct {
	First, Last int
}

// Empty reports whether the range covers no columns.
func (r ColRange) Empty() bool { return r.Last < r.First }

// Count returns the number of columns in the range.
func (r ColRange) Count() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether col lies in the range.
func (r ColRange) Contains(col int) bool {
	return r.First <= col && col <= r.Last
}

// VisibleRange describes what the current frame shows: the rows and
// scrolling columns intersecting the viewport, and the content-space origin
// of the first visible cell. Sticky columns are always shown and are not
// part of Cols. The range is recomputed from the height index on every
// frame, so advancing the scroll offset never moves First backwards.
type VisibleRange struct {
	Rows    RowRange
	Cols    ColRange
	OriginX float32 // content-space left edge of the first visible scrolling column
	OriginY float64 // content-space top edge of the first visible row
}

// visibleRows returns the inclusive range of rows intersecting a body
// window of bodyH pixels starting at scrollY. Partially visible rows
// count. Two index queries, independent of the row count.
func visibleRows(h *RowHeights, scrollY float64, bodyH float32) RowRange {
	if h.RowCount() == 0 || bodyH <= 0 {
		return RowRange{First: 0, Last: -1}
	}
	first := h.RowAt(scrollY)
	// One ulp below the bottom edge, so a row starting exactly there does
	// not count as visible.
	bottom := math.Nextafter(scrollY+float64(bodyH), math.Inf(-1))
	last := h.RowAt(bottom)
	if last < first {
		last = first
	}
	return RowRange{First: first, Last: last}
}

// expandRows widens a range by margin rows on both sides, clamped to the
// table. Empty ranges stay empty.
func expandRows(r RowRange, margin int64, rowCount int64) RowRange {
	if r.Empty() || margin <= 0 {
		return r
	}
	r.First -= margin
	if r.First < 0 {
		r.First = 0
	}
	r.Last += margin
	if r.Last > rowCount-1 {
		r.Last = rowCount - 1
	}
	return r
}

// scrollToRow returns the smallest change to current that brings the row
// fully into a body window of bodyH pixels. Rows taller than the window
// align their top edge.
func scrollToRow(h *RowHeights, row int64, bodyH float32, current float64) float64 {
	top, _ := h.OffsetOf(row)
	rh, _ := h.Height(row)
	bottom := top + float64(rh)

	target := current
	if bottom > current+float64(bodyH) {
		target = bottom - float64(bodyH)
	}
	if top < target {
		target = top
	}
	return clamp64(target, 0, maxScrollY(h, bodyH))
}

// maxScrollY returns the largest useful vertical scroll offset.
func maxScrollY(h *RowHeights, bodyH float32) float64 {
	m := h.TotalHeight() - float64(bodyH)
	if m < 0 {
		return 0
	}
	return m
}

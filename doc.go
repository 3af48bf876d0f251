/*
Package table provides a per-frame layout and virtualization engine for
table widgets in immediate-mode GUIs, designed as idiomatic Go with the
caller owning all cell content and scroll state.

# Overview

This package computes table geometry and nothing else: which rows and
columns are visible, where every visible cell goes, and how the sticky
header band and sticky column gutter split the viewport into independently
scrolling regions. It is rebuilt every frame from the current viewport, so
scrolling, column resizing, and row expansion all take effect on the next
frame with no retained widget tree.

Painting, input handling, and data loading stay with the caller. The engine
hands back pixel rectangles; what to draw inside them is not its business.

# Quick Start

	tbl, err := table.New([]table.Column{
	    {Label: "ID", InitWidth: 80, MinWidth: 60, MaxWidth: 80, Sticky: true},
	    {Label: "Name", MinWidth: 120, Resizable: true},
	    {Label: "Value", MinWidth: 80},
	}, 1_000_000, table.WithHeader(
	    table.Leaf(0),
	    table.Group("Payload", table.Leaf(1), table.Leaf(2)),
	))

	// Frame loop
	for !window.ShouldClose() {
	    vp := table.Viewport{
	        ScrollX: scrollX, ScrollY: scrollY,
	        Width: w, Height: h,
	    }

	    frame, err := tbl.Layout(vp)
	    if err != nil {
	        return err
	    }

	    scrollX, scrollY = frame.ScrollX, frame.ScrollY // clamped

	    for _, cell := range frame.Cells {
	        paint(cell.Rect, data[cell.Row][cell.Col])
	    }
	    for _, hc := range frame.Headers {
	        paintHeader(hc.Rect, hc.Title)
	    }

	    table.ReleaseFrame(frame)
	    window.SwapBuffers()
	}

Render is the callback-driven equivalent of Layout for hosts that prefer a
pull model; it walks the frame through a Delegate and releases it
afterwards.

# Columns

Columns are identified by index and never reordered by the engine. Each
frame the resolved widths are fitted to the viewport width: every width
stays inside its [MinWidth, MaxWidth] bounds, sticky columns are resolved
first, and the remaining space is distributed evenly with the most
constrained columns saturating first. Fixed columns are declared by setting
MinWidth = MaxWidth; such columns never move and the table scrolls
horizontally when their sum exceeds the viewport.

Width state changes flow through the Table methods:

	tbl.ResizeColumn(col, w)       Explicit width, persists until cleared
	tbl.ClearColumnResize(col)     Remove the explicit width
	tbl.AutoSizeColumn(col)        Re-adopt the measured content width
	tbl.ReportContentWidth(col, w) Feed a measured content width

AutoSizeMode controls when refits happen: on viewport width changes
(default), every frame, or never after the first fit.

# Header Hierarchy

Headers are trees of Leaf and Group nodes. Group cells occupy one header
row; a leaf on a shallower path than the deepest leaf spans the remaining
rows downward so every column's header stack ends at the same edge. Groups
must cover contiguous column runs and leaves must appear in column order;
invalid trees are rejected when installed, never at layout time.

# Row Heights

Every row has the baseline height unless it carries an explicit height
(SetRowHeight) or an expansion (ExpandRow). Overrides live in an
order-statistics index so that OffsetOf and RowAt cost O(log k) for k
overridden rows, independent of the row count; tables with hundreds of
millions of rows and a handful of expanded rows pay for the handful.

Expansion is the inline-detail idiom: ExpandRow(row, extra) grows the row
by exactly extra pixels without moving anything above it, and CollapseRow
restores the measured height untouched.

Offsets and scroll positions are float64. Row counts past tens of millions
overflow float32 pixel coordinates; only viewport-local rectangles are
float32.

# Scroll Regions

A table with sticky columns and a header splits into four regions, indexed
by Region: the body (scrolls both axes), the sticky column gutter (scrolls
vertically), the header band over scrolling columns (scrolls horizontally),
and the pinned corner. Every instruction carries its Region and every cell
belongs to exactly one. Frame.RegionRects holds the four clip rectangles;
painters either scissor per region or rely on the back-to-front instruction
order (scrolling content first, pinned content last).

# Frame Output

Layout returns a *Frame from an internal pool. Frames hold instruction
slices ordered back to front, the visible and prefetch row ranges, the
clamped scroll offsets, and the content dimensions. Call ReleaseFrame when
done; the next Layout reuses the buffers, keeping the steady state
allocation-free. Do not retain frame slices past release.

The Prefetch range widens the visible rows by the configured margin
(WithPrefetchRows, WithPrefetchPixels) and is a hint for asynchronous data
loading; the engine itself never performs I/O and never blocks.

A Table is not safe for concurrent use. The per-frame contract is
single-threaded: mutations apply immediately and the next query observes
them. Hosts that lay out off the UI thread must synchronize externally.
*/
package table

package table

import (
	"fmt"
	"log/slog"
	"math"
	"os"
)

// tableLogLevel controls the log level for layout debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var tableLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the engine.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		tableLogLevel.Set(slog.LevelDebug)
	} else {
		tableLogLevel.Set(slog.LevelInfo)
	}
}

// tableVerbose returns true if debug logging is enabled.
func tableVerbose() bool {
	return tableLogLevel.Level() <= slog.LevelDebug
}

// tableLogger is the logger for layout debugging.
var tableLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: tableLogLevel}))

// Table is the layout engine for one table widget. It owns the column
// specs with their resize overrides, the optional header hierarchy, and the
// row height index; the caller owns cell content and the scroll state.
//
// Each frame the caller passes the current Viewport to Layout or Render and
// receives the geometry of everything visible. Nothing is cached across
// frames except what the caller explicitly configured, so scrolling,
// resizing, and height changes all take effect on the very next frame.
//
// A Table is not safe for concurrent use. The per-frame contract is
// single-threaded: queries observe every mutation applied before the call.
type Table struct {
	cols    *columnSet
	header  *headerModel
	heights *RowHeights
	cfg     config

	frames     uint64
	lastVisits int
}

// Delegate receives the pull-based callbacks of Render, in painting order:
// Prefetch once (data warm-up for the rows about to be needed), then the
// whole-row rects, the body cells scrolling-region first, and the header
// cells last so pinned chrome lands on top.
type Delegate interface {
	Prefetch(rows RowRange)
	Row(r RowInstruction)
	Cell(c CellInstruction)
	HeaderCell(h HeaderInstruction)
}

// New builds a table from column specs and a row count. The zero-option
// table has baseline row height DefaultRowHeight, no header, no prefetch
// margin, and refits column widths when the viewport width changes.
func New(columns []Column, rowCount int64, opts ...Option) (*Table, error) {
	cfg := applyOptions(opts)
	if cfg.rowHeight <= 0 {
		return nil, fmt.Errorf("row height option %g: %w", cfg.rowHeight, ErrRowHeight)
	}
	if cfg.headerRowH <= 0 {
		return nil, fmt.Errorf("header row height option %g: %w", cfg.headerRowH, ErrRowHeight)
	}
	if cfg.prefetchRows < 0 {
		cfg.prefetchRows = 0
	}
	if cfg.prefetchPx < 0 {
		cfg.prefetchPx = 0
	}

	cols, err := newColumnSet(columns)
	if err != nil {
		return nil, err
	}
	heights, err := NewRowHeights(rowCount, cfg.rowHeight)
	if err != nil {
		return nil, err
	}

	t := &Table{cols: cols, heights: heights, cfg: cfg}
	if len(cfg.header) > 0 {
		if err := t.SetHeader(cfg.header...); err != nil {
			return nil, err
		}
	}
	tableLogger.Debug("table created",
		"columns", len(columns),
		"sticky", cols.sticky,
		"rows", rowCount,
		"headerRows", t.HeaderRows())
	return t, nil
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols.specs) }

// NumSticky returns the number of sticky columns in the leading prefix.
func (t *Table) NumSticky() int { return t.cols.sticky }

// RowCount returns the number of body rows.
func (t *Table) RowCount() int64 { return t.heights.RowCount() }

// HeaderRows returns the number of header rows, zero without a header.
func (t *Table) HeaderRows() int {
	if t.header == nil {
		return 0
	}
	return t.header.depth
}

// SetColumns replaces the column specs. Resize overrides and reported
// content widths are dropped with the old specs. If the installed header
// references a column past the new count, the table is left unchanged and
// an error is returned.
func (t *Table) SetColumns(columns []Column) error {
	cols, err := newColumnSet(columns)
	if err != nil {
		return err
	}
	if t.header != nil {
		for i := range t.header.nodes {
			if c := t.header.nodes[i].col; c >= len(columns) {
				return fmt.Errorf("header leaf column %d of %d: %w", c, len(columns), ErrColumnBounds)
			}
		}
		t.header.cells = nil
	}
	t.cols = cols
	tableLogger.Debug("columns replaced", "columns", len(columns), "sticky", cols.sticky)
	return nil
}

// SetRowCount grows or shrinks the table. Shrinking drops height overrides
// and expansion state of removed rows.
func (t *Table) SetRowCount(n int64) error {
	if err := t.heights.SetRowCount(n); err != nil {
		return err
	}
	tableLogger.Debug("row count changed", "rows", n, "overrides", t.heights.Overrides())
	return nil
}

// SetHeader installs a header hierarchy, one node per top-level column or
// group. Calling it with no nodes removes the header.
func (t *Table) SetHeader(nodes ...HeaderNode) error {
	if len(nodes) == 0 {
		t.header = nil
		return nil
	}
	m, err := newHeaderModel(nodes, len(t.cols.specs))
	if err != nil {
		return err
	}
	t.header = m
	tableLogger.Debug("header installed", "rows", m.depth, "cells", len(m.nodes))
	return nil
}

// ClearHeader removes the header; the body then fills the whole viewport.
func (t *Table) ClearHeader() { t.header = nil }

// ResizeColumn applies an explicit width to a resizable column. The width
// is clamped to the column's bounds and persists across refits until
// ClearColumnResize or AutoSizeColumn.
func (t *Table) ResizeColumn(col int, width float32) error {
	if col < 0 || col >= len(t.cols.specs) {
		return fmt.Errorf("resize column %d of %d: %w", col, len(t.cols.specs), ErrColumnBounds)
	}
	if !t.cols.specs[col].Resizable {
		return fmt.Errorf("resize column %d: %w", col, ErrNotResizable)
	}
	if width < 0 || math.IsNaN(float64(width)) {
		return fmt.Errorf("resize column %d to %g: %w", col, width, ErrColumnSpec)
	}
	t.cols.setOverride(col, width)
	tableLogger.Debug("column resized", "col", col, "width", t.cols.override[col])
	return nil
}

// ClearColumnResize removes an explicit width, letting the fit place the
// column again.
func (t *Table) ClearColumnResize(col int) error {
	if col < 0 || col >= len(t.cols.specs) {
		return fmt.Errorf("clear resize column %d of %d: %w", col, len(t.cols.specs), ErrColumnBounds)
	}
	t.cols.clearOverride(col)
	return nil
}

// AutoSizeColumn drops any override and re-adopts the column's natural
// width on the next layout, the way a double-click on a resize handle
// does.
func (t *Table) AutoSizeColumn(col int) error {
	if col < 0 || col >= len(t.cols.specs) {
		return fmt.Errorf("auto-size column %d of %d: %w", col, len(t.cols.specs), ErrColumnBounds)
	}
	t.cols.autoSize(col)
	return nil
}

// ReportContentWidth feeds a measured content width for one column. Auto
// columns adopt the running maximum on their next fit; columns with a
// declared initial width or an override ignore it until auto-sized.
func (t *Table) ReportContentWidth(col int, width float32) error {
	if col < 0 || col >= len(t.cols.specs) {
		return fmt.Errorf("content width column %d of %d: %w", col, len(t.cols.specs), ErrColumnBounds)
	}
	if width < 0 || math.IsNaN(float64(width)) {
		return fmt.Errorf("content width column %d is %g: %w", col, width, ErrColumnSpec)
	}
	t.cols.reportContent(col, width)
	return nil
}

// SetRowHeight records an explicit height for one row.
func (t *Table) SetRowHeight(row int64, height float32) error {
	return t.heights.SetHeight(row, height)
}

// ClearRowHeight restores a row to the baseline height.
func (t *Table) ClearRowHeight(row int64) error {
	return t.heights.ClearHeight(row)
}

// ExpandRow grows a row by extra pixels of inline detail. Offsets of rows
// at or before it do not move; the total height grows by exactly extra.
func (t *Table) ExpandRow(row int64, extra float32) error {
	return t.heights.Expand(row, extra)
}

// CollapseRow removes a row's expansion.
func (t *Table) CollapseRow(row int64) error {
	return t.heights.Collapse(row)
}

// RowExpanded reports whether a row is currently expanded.
func (t *Table) RowExpanded(row int64) bool {
	return t.heights.Expanded(row)
}

// RowHeight returns the effective height of one row.
func (t *Table) RowHeight(row int64) (float32, error) {
	return t.heights.Height(row)
}

// OffsetOf returns the content-space top edge of a row. OffsetOf(RowCount)
// is the total content height.
func (t *Table) OffsetOf(row int64) (float64, error) {
	return t.heights.OffsetOf(row)
}

// RowAt returns the lowest row whose span contains the content-space
// coordinate y. Coordinates outside the content clamp to the first or last
// row.
func (t *Table) RowAt(y float64) int64 {
	return t.heights.RowAt(y)
}

// ContentHeight returns the summed height of all body rows. The header
// band is viewport chrome and not part of it.
func (t *Table) ContentHeight() float64 { return t.heights.TotalHeight() }

// ContentWidth returns the summed width of all columns as of the last fit.
func (t *Table) ContentWidth() float32 { return t.cols.total() }

// ScrollToRow returns the smallest change to the current vertical scroll
// that brings a row fully into view under the header band.
func (t *Table) ScrollToRow(row int64, vp Viewport, current float64) (float64, error) {
	if row < 0 || row >= t.heights.RowCount() {
		return current, fmt.Errorf("scroll to row %d of %d: %w", row, t.heights.RowCount(), ErrRowBounds)
	}
	bodyH := maxf(0, vp.Height-minf(t.headerHeight(), vp.Height))
	return scrollToRow(t.heights, row, bodyH, current), nil
}

// ColumnEdgeAt returns the column whose right edge lies within tol pixels
// of the viewport-space x, for hosts implementing resize handles. Edges of
// scrolling columns account for the current horizontal scroll; edges
// hidden under the sticky gutter are skipped.
func (t *Table) ColumnEdgeAt(x, tol float32, vp Viewport) (int, bool) {
	cs := t.cols
	n := len(cs.specs)
	if n == 0 {
		return 0, false
	}
	sx := float32(clamp64(vp.ScrollX, 0, float64(cs.maxScrollX(vp.Width))))
	stickyW := cs.stickyWidth()

	best, bestDist := -1, tol
	for i := 1; i <= n; i++ {
		px := cs.offsets[i]
		if i > cs.sticky {
			px -= sx
			if px < stickyW-tol {
				continue
			}
		}
		if px > vp.Width+tol {
			break
		}
		d := x - px
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			best, bestDist = i-1, d
		}
	}
	return best, best >= 0
}

// Layout computes the frame for the given viewport. The returned frame
// comes from a pool; pass it to ReleaseFrame when done. Scroll offsets are
// clamped into the scrollable range and the values actually used are
// reported on the frame.
func (t *Table) Layout(vp Viewport) (*Frame, error) {
	if !finite(float64(vp.Width)) || !finite(float64(vp.Height)) ||
		!finite(vp.ScrollX) || !finite(vp.ScrollY) {
		return nil, fmt.Errorf("layout: %w", ErrViewport)
	}
	vp.Width = maxf(0, vp.Width)
	vp.Height = maxf(0, vp.Height)

	t.cols.resolve(vp.Width, t.cfg.autoSize)

	headerH := minf(t.headerHeight(), vp.Height)
	bodyH := maxf(0, vp.Height-headerH)
	sx := clamp64(vp.ScrollX, 0, float64(t.cols.maxScrollX(vp.Width)))
	sy := clamp64(vp.ScrollY, 0, maxScrollY(t.heights, bodyH))

	f := acquireFrame()
	f.ScrollX, f.ScrollY = sx, sy
	f.RegionRects = t.regionRects(vp)
	f.ContentWidth = t.cols.total()
	f.ContentHeight = t.heights.TotalHeight()
	for i := range t.cols.specs {
		f.Columns = append(f.Columns, ColumnMetrics{X: t.cols.offsets[i], Width: t.cols.current[i]})
	}

	vis := VisibleRange{
		Rows: visibleRows(t.heights, sy, bodyH),
		Cols: t.cols.visibleCols(float32(sx), vp.Width),
	}
	if !vis.Rows.Empty() {
		vis.OriginY, _ = t.heights.OffsetOf(vis.Rows.First)
	}
	if !vis.Cols.Empty() {
		vis.OriginX = t.cols.offsets[vis.Cols.First]
	}
	f.Visible = vis
	f.Prefetch = expandRows(vis.Rows, t.prefetchMargin(), t.heights.RowCount())

	t.composeHeaders(f, float32(sx))
	t.composeBody(f, vp, float32(sx), sy, vis)

	t.frames++
	if tableVerbose() {
		tableLogger.Debug("layout",
			"frame", t.frames,
			"visibleRows", vis.Rows.Count(),
			"visibleCols", vis.Cols.Count(),
			"cells", len(f.Cells),
			"indexVisits", t.heights.visits-t.lastVisits)
		t.lastVisits = t.heights.visits
	}
	return f, nil
}

// Render lays out the frame and walks it through the delegate, releasing
// the frame before returning. Use Layout directly to keep the frame.
func (t *Table) Render(vp Viewport, d Delegate) error {
	f, err := t.Layout(vp)
	if err != nil {
		return err
	}
	defer ReleaseFrame(f)

	if !f.Prefetch.Empty() {
		d.Prefetch(f.Prefetch)
	}
	for i := range f.Rows {
		d.Row(f.Rows[i])
	}
	for i := range f.Cells {
		d.Cell(f.Cells[i])
	}
	for i := range f.Headers {
		d.HeaderCell(f.Headers[i])
	}
	return nil
}

// prefetchMargin converts the configured margins to whole rows.
func (t *Table) prefetchMargin() int64 {
	m := t.cfg.prefetchRows
	if t.cfg.prefetchPx > 0 {
		m += int64(math.Ceil(float64(t.cfg.prefetchPx) / float64(t.heights.Baseline())))
	}
	return m
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package table

// Sticky composition. The viewport splits into four regions along the
// sticky-column edge and the header/body edge. Pinned content is emitted
// after scrolling content so painters that draw in order get the right
// stacking; painters that scissor per region can ignore the order.

// regionRects partitions the viewport between the header band and the
// sticky-column gutter. Degenerate configurations produce empty rects: no
// sticky columns leaves the left regions at zero width and the scrolling
// body starting at x=0, no header leaves the top regions at zero height.
func (t *Table) regionRects(vp Viewport) [4]Rect {
	stickyW := minf(t.cols.stickyWidth(), maxf(0, vp.Width))
	headerH := minf(t.headerHeight(), maxf(0, vp.Height))
	rightW := maxf(0, vp.Width-stickyW)
	bottomH := maxf(0, vp.Height-headerH)

	var rr [4]Rect
	rr[RegionLeftTop] = Rect{X: 0, Y: 0, W: stickyW, H: headerH}
	rr[RegionRightTop] = Rect{X: stickyW, Y: 0, W: rightW, H: headerH}
	rr[RegionLeftBottom] = Rect{X: 0, Y: headerH, W: stickyW, H: bottomH}
	rr[RegionRightBottom] = Rect{X: stickyW, Y: headerH, W: rightW, H: bottomH}
	return rr
}

// headerHeight returns the total height of the header band.
func (t *Table) headerHeight() float32 {
	if t.header == nil {
		return 0
	}
	return float32(t.header.depth) * t.cfg.headerRowH
}

// composeHeaders emits header instructions. Cells starting in the sticky
// prefix are pinned; the rest ride the horizontal scroll and are culled
// against their region. A cell appears exactly once no matter what it
// spans.
func (t *Table) composeHeaders(f *Frame, scrollX float32) {
	if t.header == nil {
		return
	}
	cs := t.cols
	cells := t.header.headerCells(cs)

	emit := func(c HeaderCell, region Region) {
		x := cs.offsets[c.ColStart]
		w := cs.offsets[c.ColEnd] - x
		if region == RegionRightTop {
			x -= scrollX
		}
		r := Rect{
			X: x,
			Y: float32(c.Row) * t.cfg.headerRowH,
			W: w,
			H: float32(c.RowSpan) * t.cfg.headerRowH,
		}
		if region == RegionRightTop && !r.Intersects(f.RegionRects[RegionRightTop]) {
			return
		}
		f.Headers = append(f.Headers, HeaderInstruction{HeaderCell: c, Rect: r, Region: region})
	}

	for _, c := range cells {
		if c.ColStart >= cs.sticky {
			emit(c, RegionRightTop)
		}
	}
	for _, c := range cells {
		if c.ColStart < cs.sticky {
			emit(c, RegionLeftTop)
		}
	}
}

// composeBody emits cell instructions for the visible rows, scrolling
// columns first and sticky columns second, plus one whole-row rect per
// visible row. Per-row offsets stay in float64 until they become
// viewport-relative.
func (t *Table) composeBody(f *Frame, vp Viewport, scrollX float32, scrollY float64, vis VisibleRange) {
	if vis.Rows.Empty() {
		return
	}
	cs := t.cols
	headerH := minf(t.headerHeight(), maxf(0, vp.Height))

	if !vis.Cols.Empty() {
		off := vis.OriginY
		for row := vis.Rows.First; row <= vis.Rows.Last; row++ {
			rh, _ := t.heights.Height(row)
			y := float32(off-scrollY) + headerH
			for col := vis.Cols.First; col <= vis.Cols.Last; col++ {
				f.Cells = append(f.Cells, CellInstruction{
					Row:    row,
					Col:    col,
					Rect:   Rect{X: cs.offsets[col] - scrollX, Y: y, W: cs.current[col], H: rh},
					Region: RegionRightBottom,
				})
			}
			off += float64(rh)
		}
	}

	rowW := minf(cs.total(), vp.Width)
	off := vis.OriginY
	for row := vis.Rows.First; row <= vis.Rows.Last; row++ {
		rh, _ := t.heights.Height(row)
		y := float32(off-scrollY) + headerH
		for col := 0; col < cs.sticky; col++ {
			f.Cells = append(f.Cells, CellInstruction{
				Row:    row,
				Col:    col,
				Rect:   Rect{X: cs.offsets[col], Y: y, W: cs.current[col], H: rh},
				Region: RegionLeftBottom,
			})
		}
		f.Rows = append(f.Rows, RowInstruction{
			Row:  row,
			Rect: Rect{X: 0, Y: y, W: rowW, H: rh},
		})
		off += float64(rh)
	}
}

package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/table"
)

const (
	wheelStep     = 48  // pixels per scroll wheel tick
	edgeTolerance = 4   // pixels around a column border that start a drag
	pageFraction  = 0.8 // fraction of the body height scrolled per page
)

// Controller adapts GLFW input to table interactions: wheel and keyboard
// scrolling, and column resizing by dragging cell borders. It accumulates
// scroll deltas between frames; Viewport hands them to the layout and
// Observe writes the clamped result back.
type Controller struct {
	window *glfw.Window
	tbl    *table.Table

	scrollX, scrollY float64
	mouseX, mouseY   float64
	viewW, viewH     float32

	dragCol  int // column being resized, -1 when idle
	dragBase float32
	dragX    float64

	widths  []float32
	headerH float32

	// OnRowClick, when set, receives the row under a left click that did
	// not start a resize drag.
	OnRowClick func(row int64)
}

// NewController creates a controller and installs its GLFW callbacks on
// the window.
func NewController(window *glfw.Window, tbl *table.Table) *Controller {
	c := &Controller{
		window:  window,
		tbl:     tbl,
		dragCol: -1,
	}

	window.SetScrollCallback(c.scrollCallback)
	window.SetMouseButtonCallback(c.mouseButtonCallback)
	window.SetCursorPosCallback(c.cursorPosCallback)
	window.SetKeyCallback(c.keyCallback)

	return c
}

// Viewport returns the viewport for this frame from the window size and
// the accumulated scroll offsets.
func (c *Controller) Viewport() table.Viewport {
	w, h := c.window.GetSize()
	c.viewW, c.viewH = float32(w), float32(h)
	return table.Viewport{
		ScrollX: c.scrollX,
		ScrollY: c.scrollY,
		Width:   c.viewW,
		Height:  c.viewH,
	}
}

// Observe stores the clamped scroll offsets and column geometry from a
// laid-out frame. Call it once per frame before releasing the frame.
func (c *Controller) Observe(f *table.Frame) {
	c.scrollX = f.ScrollX
	c.scrollY = f.ScrollY
	c.headerH = f.RegionRects[table.RegionRightTop].H

	c.widths = c.widths[:0]
	for _, col := range f.Columns {
		c.widths = append(c.widths, col.Width)
	}
}

func (c *Controller) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	c.scrollX -= xoff * wheelStep
	c.scrollY -= yoff * wheelStep
}

func (c *Controller) cursorPosCallback(_ *glfw.Window, x, y float64) {
	c.mouseX, c.mouseY = x, y
	if c.dragCol >= 0 {
		// Resize errors only mean the width clamped or the drag raced a
		// column change; the next frame shows the result either way.
		_ = c.tbl.ResizeColumn(c.dragCol, c.dragBase+float32(x-c.dragX))
	}
}

func (c *Controller) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	if action == glfw.Release {
		c.dragCol = -1
		return
	}

	vp := table.Viewport{
		ScrollX: c.scrollX,
		ScrollY: c.scrollY,
		Width:   c.viewW,
		Height:  c.viewH,
	}
	if col, ok := c.tbl.ColumnEdgeAt(float32(c.mouseX), edgeTolerance, vp); ok {
		if col < len(c.widths) && c.tbl.ResizeColumn(col, c.widths[col]) == nil {
			c.dragCol = col
			c.dragBase = c.widths[col]
			c.dragX = c.mouseX
		}
		return
	}

	if c.OnRowClick == nil || float32(c.mouseY) < c.headerH {
		return
	}
	cy := c.scrollY + c.mouseY - float64(c.headerH)
	if cy < 0 || cy >= c.tbl.ContentHeight() {
		return
	}
	c.OnRowClick(c.tbl.RowAt(cy))
}

func (c *Controller) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	page := float64(c.viewH-c.headerH) * pageFraction
	switch key {
	case glfw.KeyPageUp:
		c.scrollY -= page
	case glfw.KeyPageDown:
		c.scrollY += page
	case glfw.KeyHome:
		c.scrollY = 0
	case glfw.KeyEnd:
		c.scrollY = c.tbl.ContentHeight()
	case glfw.KeyLeft:
		c.scrollX -= wheelStep
	case glfw.KeyRight:
		c.scrollX += wheelStep
	}
}

package table

import "sync"

// Region identifies the scroll quadrant an instruction belongs to. The
// header band is pinned vertically, sticky columns are pinned horizontally,
// and each cell lives in exactly one quadrant.
type Region uint8

const (
	// RegionRightBottom holds body cells in scrolling columns; they move
	// with both scroll axes.
	RegionRightBottom Region = iota
	// RegionLeftBottom holds body cells in sticky columns; they move
	// vertically only.
	RegionLeftBottom
	// RegionRightTop holds header cells over scrolling columns; they move
	// horizontally only.
	RegionRightTop
	// RegionLeftTop holds header cells over sticky columns; they never
	// move.
	RegionLeftTop
)

// String returns the quadrant name.
func (r Region) String() string {
	switch r {
	case RegionRightBottom:
		return "right-bottom"
	case RegionLeftBottom:
		return "left-bottom"
	case RegionRightTop:
		return "right-top"
	case RegionLeftTop:
		return "left-top"
	}
	return "unknown"
}

// CellInstruction places one body cell. Rect is in viewport space, already
// translated for the cell's region; painters clip it against
// Frame.RegionRects[Region].
type CellInstruction struct {
	Row    int64
	Col    int
	Rect   Rect
	Region Region
}

// HeaderInstruction places one header cell.
type HeaderInstruction struct {
	HeaderCell
	Rect   Rect
	Region Region
}

// RowInstruction is the whole-row rectangle of one visible body row,
// spanning sticky and scrolling columns alike. Hosts use it for row
// backgrounds, hover highlights, and selection hit tests without touching
// individual cells.
type RowInstruction struct {
	Row  int64
	Rect Rect
}

// Frame is the complete layout output for one frame. Frames come from an
// internal pool; call ReleaseFrame when done with one to let the next
// Layout reuse its buffers.
//
// Instruction slices are ordered back to front: scrolling content first,
// pinned content last, row-major within a region. Slices alias pooled
// storage and must not be retained past ReleaseFrame.
type Frame struct {
	Columns []ColumnMetrics // resolved geometry for every column, content space
	Headers []HeaderInstruction
	Cells   []CellInstruction
	Rows    []RowInstruction

	Visible  VisibleRange
	Prefetch RowRange

	// ScrollX and ScrollY are the offsets actually used after clamping to
	// the scrollable range; callers should write them back to their own
	// scroll state.
	ScrollX, ScrollY float64

	ContentWidth  float32
	ContentHeight float64

	// RegionRects are the viewport-space clip rectangles of the four
	// regions, indexed by Region. Empty regions have empty rects.
	RegionRects [4]Rect
}

// framePool recycles Frame buffers. A table rebuilds its layout every
// frame, so instruction slices churn constantly; reuse keeps the steady
// state allocation-free.
var framePool = sync.Pool{
	New: func() any {
		return &Frame{
			Columns: make([]ColumnMetrics, 0, 16),
			Headers: make([]HeaderInstruction, 0, 16),
			Cells:   make([]CellInstruction, 0, 256),
			Rows:    make([]RowInstruction, 0, 64),
		}
	},
}

func acquireFrame() *Frame {
	f := framePool.Get().(*Frame)
	f.Reset()
	return f
}

// ReleaseFrame returns a frame to the pool for reuse. The frame and its
// slices must not be used afterwards.
func ReleaseFrame(f *Frame) {
	if f != nil {
		framePool.Put(f)
	}
}

// Reset clears the frame for a new layout pass, keeping allocated capacity.
func (f *Frame) Reset() {
	f.Columns = f.Columns[:0]
	f.Headers = f.Headers[:0]
	f.Cells = f.Cells[:0]
	f.Rows = f.Rows[:0]
	f.Visible = VisibleRange{Rows: RowRange{0, -1}, Cols: ColRange{0, -1}}
	f.Prefetch = RowRange{0, -1}
	f.ScrollX, f.ScrollY = 0, 0
	f.ContentWidth = 0
	f.ContentHeight = 0
	f.RegionRects = [4]Rect{}
}

package table

import (
	"fmt"
	"math"
	"sort"
)

// Column describes one column of a table. Identity is the slice index; the
// engine never reorders columns. The zero value is an auto-sized, fixed,
// non-sticky column with unbounded width.
type Column struct {
	Label     string  // caller convenience, never interpreted by the engine
	InitWidth float32 // initial width in pixels; 0 = auto (content width or share of leftover)
	MinWidth  float32 // lower bound; 0 is allowed
	MaxWidth  float32 // upper bound; 0 = unbounded
	Resizable bool    // accepts explicit resize overrides
	Sticky    bool    // pinned to the left edge; sticky columns must form a leading prefix
}

// ColumnMetrics is the resolved geometry of one column in content space.
type ColumnMetrics struct {
	X     float32 // left edge, cumulative from column 0
	Width float32
}

// AutoSizeMode controls when resolved column widths are refitted to the
// viewport width. Configuration changes (resize, content reports, explicit
// auto-size requests) always trigger a refit regardless of mode.
type AutoSizeMode int

const (
	// AutoSizeOnViewportResize refits when the viewport width changes.
	AutoSizeOnViewportResize AutoSizeMode = iota
	// AutoSizeAlways refits whenever the total width differs from the
	// viewport width.
	AutoSizeAlways
	// AutoSizeNever fits once, then leaves widths alone; the table scrolls
	// horizontally when the total no longer matches the viewport.
	AutoSizeNever
)

// columnSet owns column specs and their resolved widths. Offsets are a
// monotone cumulative sum with one extra entry holding the total width.
type columnSet struct {
	specs    []Column
	sticky   int       // length of the sticky prefix
	current  []float32 // resolved widths from the last fit
	override []float32 // explicit resize widths; negative = unset
	content  []float32 // max reported content width per column; 0 = none
	offsets  []float32 // len(specs)+1 cumulative left edges

	dirty      bool // a mutation invalidated the current fit
	fitted     bool
	lastTarget float32
	gen        uint64 // fit generation, bumped on every refit
}

func newColumnSet(specs []Column) (*columnSet, error) {
	cs := &columnSet{
		specs:    append([]Column(nil), specs...),
		current:  make([]float32, len(specs)),
		override: make([]float32, len(specs)),
		content:  make([]float32, len(specs)),
		offsets:  make([]float32, len(specs)+1),
	}
	inPrefix := true
	for i, c := range cs.specs {
		if c.MinWidth < 0 || c.MaxWidth < 0 {
			return nil, fmt.Errorf("column %d: negative width bound: %w", i, ErrColumnSpec)
		}
		if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
			return nil, fmt.Errorf("column %d: min %g exceeds max %g: %w", i, c.MinWidth, c.MaxWidth, ErrColumnSpec)
		}
		if c.Sticky {
			if !inPrefix {
				return nil, fmt.Errorf("column %d: %w", i, ErrStickyGap)
			}
			cs.sticky++
		} else {
			inPrefix = false
		}
		cs.override[i] = -1
	}
	return cs, nil
}

func (cs *columnSet) minOf(i int) float32 { return cs.specs[i].MinWidth }

func (cs *columnSet) maxOf(i int) float32 {
	if cs.specs[i].MaxWidth <= 0 {
		return float32(math.Inf(1))
	}
	return cs.specs[i].MaxWidth
}

func (cs *columnSet) clampToBounds(i int, w float32) float32 {
	return clampf(w, cs.minOf(i), cs.maxOf(i))
}

// setOverride records an explicit resize. The caller has already validated
// the index and the Resizable flag.
func (cs *columnSet) setOverride(i int, w float32) {
	cs.override[i] = cs.clampToBounds(i, w)
	cs.dirty = true
}

func (cs *columnSet) clearOverride(i int) {
	if cs.override[i] >= 0 {
		cs.override[i] = -1
		cs.dirty = true
	}
}

// autoSize drops the override and re-adopts the column's natural width, the
// way a double-click on a resize handle does.
func (cs *columnSet) autoSize(i int) {
	cs.override[i] = -1
	switch {
	case cs.content[i] > 0:
		cs.current[i] = cs.clampToBounds(i, cs.content[i])
	case cs.specs[i].InitWidth > 0:
		cs.current[i] = cs.clampToBounds(i, cs.specs[i].InitWidth)
	default:
		cs.current[i] = cs.minOf(i)
	}
	cs.dirty = true
}

// reportContent keeps the running max of measured content widths. Auto
// columns without an override adopt a new max right away; columns with a
// declared width keep the measurement for a later autoSize.
func (cs *columnSet) reportContent(i int, w float32) {
	if w <= cs.content[i] {
		return
	}
	cs.content[i] = w
	if cs.specs[i].InitWidth == 0 && cs.override[i] < 0 {
		cs.current[i] = cs.clampToBounds(i, w)
		cs.dirty = true
	}
}

// resolve fits widths to the target and rebuilds offsets. Steady-state
// frames where nothing changed return without touching anything.
func (cs *columnSet) resolve(target float32, mode AutoSizeMode) {
	if target < 0 {
		target = 0
	}
	refit := cs.dirty || !cs.fitted
	switch mode {
	case AutoSizeAlways:
		refit = refit || cs.total() != target
	case AutoSizeOnViewportResize:
		refit = refit || target != cs.lastTarget
	}
	if !refit {
		return
	}

	cs.gen++
	n := len(cs.specs)
	if n == 0 {
		cs.offsets[0] = 0
		cs.dirty, cs.fitted, cs.lastTarget = false, true, target
		return
	}

	if !cs.fitted {
		cs.seed(target)
	}

	// Effective bounds: an overridden column is pinned so the fit cannot
	// move it out from under the user.
	minW := make([]float32, n)
	maxW := make([]float32, n)
	for i := range cs.specs {
		if w := cs.override[i]; w >= 0 {
			cs.current[i] = w
			minW[i], maxW[i] = w, w
		} else {
			minW[i], maxW[i] = cs.minOf(i), cs.maxOf(i)
		}
	}

	// Sticky columns are resolved first: they keep their widths, shrinking
	// only when the prefix alone would not fit the viewport. The remainder
	// is what the scrolling columns get to fill.
	if cs.sticky > 0 {
		var sum float32
		for i := 0; i < cs.sticky; i++ {
			sum += clampf(cs.current[i], minW[i], maxW[i])
		}
		fitWidths(cs.current[:cs.sticky], minW[:cs.sticky], maxW[:cs.sticky], minf(sum, target))
	}
	var stickyW float32
	for i := 0; i < cs.sticky; i++ {
		stickyW += cs.current[i]
	}
	fitWidths(cs.current[cs.sticky:], minW[cs.sticky:], maxW[cs.sticky:], maxf(0, target-stickyW))

	cs.rebuildOffsets()
	cs.dirty, cs.fitted, cs.lastTarget = false, true, target
}

// seed assigns first-fit widths: override, declared initial width, reported
// content width, and finally an even share of the leftover space for auto
// columns nothing is known about.
func (cs *columnSet) seed(target float32) {
	var known float32
	unknown := 0
	for i := range cs.specs {
		switch {
		case cs.override[i] >= 0:
			cs.current[i] = cs.override[i]
		case cs.specs[i].InitWidth > 0:
			cs.current[i] = cs.clampToBounds(i, cs.specs[i].InitWidth)
		case cs.content[i] > 0:
			cs.current[i] = cs.clampToBounds(i, cs.content[i])
		default:
			cs.current[i] = -1
			unknown++
			continue
		}
		known += cs.current[i]
	}
	if unknown == 0 {
		return
	}
	share := maxf(0, target-known) / float32(unknown)
	for i := range cs.specs {
		if cs.current[i] < 0 {
			cs.current[i] = cs.clampToBounds(i, share)
		}
	}
}

func (cs *columnSet) rebuildOffsets() {
	cs.offsets[0] = 0
	for i, w := range cs.current {
		cs.offsets[i+1] = cs.offsets[i] + w
	}
}

func (cs *columnSet) total() float32 { return cs.offsets[len(cs.specs)] }

func (cs *columnSet) stickyWidth() float32 { return cs.offsets[cs.sticky] }

// visibleCols returns the inclusive range of scrolling columns intersecting
// the viewport, given the clamped horizontal scroll. Sticky columns are
// always visible and are not part of the range.
func (cs *columnSet) visibleCols(scrollX, viewW float32) ColRange {
	n := len(cs.specs)
	first := cs.sticky
	stickyW := cs.stickyWidth()
	if n == cs.sticky || viewW <= 0 {
		return ColRange{First: 0, Last: -1}
	}
	// First scrolling column whose right edge clears the sticky region.
	first += sort.Search(n-cs.sticky, func(i int) bool {
		return cs.offsets[cs.sticky+i+1] > scrollX+stickyW
	})
	// Last column whose left edge is inside the viewport.
	last := cs.sticky + sort.Search(n-cs.sticky, func(i int) bool {
		return cs.offsets[cs.sticky+i] >= scrollX+viewW
	}) - 1
	if first > last {
		return ColRange{First: 0, Last: -1}
	}
	return ColRange{First: first, Last: last}
}

// maxScrollX returns the largest useful horizontal scroll offset.
func (cs *columnSet) maxScrollX(viewW float32) float32 {
	scrollable := cs.total() - cs.stickyWidth()
	window := viewW - cs.stickyWidth()
	if window < 0 {
		window = 0
	}
	return maxf(0, scrollable-window)
}

// fitWidths adjusts cur toward target while honoring per-column bounds.
// Columns with the least room saturate first; whatever remains is spread
// evenly across the rest. Widths are clamped to their bounds up front.
func fitWidths(cur, minW, maxW []float32, target float32) {
	if len(cur) == 0 {
		return
	}

	var minSum, maxSum, curSum float32
	for i := range cur {
		cur[i] = clampf(cur[i], minW[i], maxW[i])
		minSum += minW[i]
		maxSum += maxW[i]
		curSum += cur[i]
	}

	if curSum == target {
		return
	}
	grow := curSum < target
	sign := float32(-1)
	if grow {
		sign = 1
	}
	if grow && maxSum <= curSum {
		return
	}
	if !grow && curSum <= minSum {
		return
	}

	type room struct {
		amount float32
		idx    int
	}
	canChange := make([]room, 0, len(cur))
	for i := range cur {
		if grow && cur[i] < maxW[i] {
			canChange = append(canChange, room{maxW[i] - cur[i], i})
		} else if !grow && minW[i] < cur[i] {
			canChange = append(canChange, room{cur[i] - minW[i], i})
		}
	}
	if len(canChange) == 0 {
		return
	}

	// Most room first, so popping from the tail visits the tightest
	// column next.
	sort.SliceStable(canChange, func(a, b int) bool {
		return canChange[a].amount > canChange[b].amount
	})

	remaining := target - curSum
	if remaining < 0 {
		remaining = -remaining
	}
	for len(canChange) > 0 {
		least := canChange[len(canChange)-1]
		canChange = canChange[:len(canChange)-1]

		even := remaining / float32(len(canChange)+1)
		if even <= least.amount {
			cur[least.idx] += sign * even
			for _, r := range canChange {
				cur[r.idx] += sign * even
			}
			return
		}

		if grow {
			cur[least.idx] = maxW[least.idx]
		} else {
			cur[least.idx] = minW[least.idx]
		}
		remaining -= least.amount
	}
}

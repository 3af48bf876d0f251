package table

import "fmt"

// RowHeights maps row indices to vertical offsets for tables where almost
// every row has the same baseline height and a sparse set of rows carry an
// override (a measured height, an expansion, or both).
//
// Overrides live in a treap keyed by row index, stored in an arena and
// augmented with subtree record counts and effective-height sums, so
// OffsetOf and RowAt run in O(log k) for k overridden rows no matter how
// large the row count is. With zero overrides both queries collapse to
// plain arithmetic on the baseline, the same math a uniform list clipper
// uses.
//
// Row indices are int64 and cumulative offsets are float64: row counts
// beyond 32 bits and content heights beyond the float32 mantissa are
// expected inputs, not edge cases.
type RowHeights struct {
	rowCount int64
	baseline float32

	nodes []hrec  // arena; links are indices, -1 is nil
	free  []int32 // recycled arena slots
	root  int32
	rng   uint64 // xorshift state for treap priorities
	path  []int32

	visits int // nodes touched; read by frame stats and complexity tests
}

// hrec is one override record. base < 0 means the row keeps the baseline
// height; extra is the expansion surplus. A record with no base and no
// extra is removed rather than stored.
type hrec struct {
	row   int64
	base  float32
	extra float32
	prio  uint32

	left, right int32
	count       int32   // records in this subtree
	sum         float64 // effective heights of records in this subtree
}

const nilIdx = int32(-1)

// NewRowHeights returns an index for rowCount rows of the given baseline
// height. The baseline must be positive.
func NewRowHeights(rowCount int64, baseline float32) (*RowHeights, error) {
	if rowCount < 0 {
		return nil, fmt.Errorf("row count %d: %w", rowCount, ErrRowBounds)
	}
	if baseline <= 0 {
		return nil, fmt.Errorf("baseline %g: %w", baseline, ErrRowHeight)
	}
	return &RowHeights{
		rowCount: rowCount,
		baseline: baseline,
		root:     nilIdx,
		rng:      0x9E3779B97F4A7C15,
	}, nil
}

// RowCount returns the number of rows.
func (h *RowHeights) RowCount() int64 { return h.rowCount }

// Baseline returns the uniform height of rows without an override.
func (h *RowHeights) Baseline() float32 { return h.baseline }

// Overrides returns the number of rows currently carrying a record.
func (h *RowHeights) Overrides() int {
	if h.root == nilIdx {
		return 0
	}
	return int(h.nodes[h.root].count)
}

// SetRowCount grows or shrinks the table. Shrinking drops every override at
// or past the new count.
func (h *RowHeights) SetRowCount(n int64) error {
	if n < 0 {
		return fmt.Errorf("row count %d: %w", n, ErrRowBounds)
	}
	if n < h.rowCount {
		keep, drop := h.splitTree(h.root, n)
		h.root = keep
		h.freeSubtree(drop)
	}
	h.rowCount = n
	return nil
}

// SetHeight records an explicit height for one row, replacing the baseline.
// Zero is allowed; a zero-height row occupies no vertical space and is
// skipped by RowAt.
func (h *RowHeights) SetHeight(row int64, height float32) error {
	if row < 0 || row >= h.rowCount {
		return fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	if height < 0 {
		return fmt.Errorf("height %g: %w", height, ErrRowHeight)
	}
	h.withRecord(row, true, func(r *hrec) { r.base = height })
	return nil
}

// ClearHeight removes the explicit height of a row, restoring the baseline.
// Expansion state on the row is kept.
func (h *RowHeights) ClearHeight(row int64) error {
	if row < 0 || row >= h.rowCount {
		return fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	h.withRecord(row, false, func(r *hrec) { r.base = -1 })
	return nil
}

// Expand grows a row by extra pixels, as when inline detail unfolds under
// it. The total height grows by exactly extra; offsets of rows at or before
// the expanded row do not move. Expanding an already expanded row replaces
// its extra.
func (h *RowHeights) Expand(row int64, extra float32) error {
	if row < 0 || row >= h.rowCount {
		return fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	if extra <= 0 {
		return fmt.Errorf("expansion %g: %w", extra, ErrRowHeight)
	}
	h.withRecord(row, true, func(r *hrec) { r.extra = extra })
	return nil
}

// Collapse removes a row's expansion. An explicit height on the row is
// kept.
func (h *RowHeights) Collapse(row int64) error {
	if row < 0 || row >= h.rowCount {
		return fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	h.withRecord(row, false, func(r *hrec) { r.extra = 0 })
	return nil
}

// Expanded reports whether the row currently carries an expansion. Rows
// outside the table report false.
func (h *RowHeights) Expanded(row int64) bool {
	t := h.find(row)
	return t != nilIdx && h.nodes[t].extra > 0
}

// Height returns the effective height of one row: its explicit height or
// the baseline, plus any expansion.
func (h *RowHeights) Height(row int64) (float32, error) {
	if row < 0 || row >= h.rowCount {
		return 0, fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	if t := h.find(row); t != nilIdx {
		return h.effective(&h.nodes[t]), nil
	}
	return h.baseline, nil
}

// OffsetOf returns the cumulative offset of the top edge of a row. The row
// may equal RowCount, in which case the result is TotalHeight. Offsets are
// non-decreasing in the row index.
func (h *RowHeights) OffsetOf(row int64) (float64, error) {
	if row < 0 || row > h.rowCount {
		return 0, fmt.Errorf("row %d of %d: %w", row, h.rowCount, ErrRowBounds)
	}
	cnt, sum := h.statsBefore(row)
	return float64(h.baseline)*float64(row-cnt) + sum, nil
}

// TotalHeight returns the summed height of all rows.
func (h *RowHeights) TotalHeight() float64 {
	var cnt int64
	var sum float64
	if h.root != nilIdx {
		cnt = int64(h.nodes[h.root].count)
		sum = h.nodes[h.root].sum
	}
	return float64(h.baseline)*float64(h.rowCount-cnt) + sum
}

// RowAt returns the lowest row whose vertical span contains y. Zero-height
// rows contain nothing and are skipped. Coordinates are clamped: negative y
// yields the first row, y at or past the total height yields the last. An
// empty index yields 0.
func (h *RowHeights) RowAt(y float64) int64 {
	if h.rowCount == 0 {
		return 0
	}
	if y < 0 {
		y = 0
	}
	if y >= h.TotalHeight() {
		return h.rowCount - 1
	}

	var cntAcc int64
	var sumAcc float64
	t := h.root
	for t != nilIdx {
		h.visits++
		n := &h.nodes[t]
		lcnt, lsum := cntAcc, sumAcc
		if n.left != nilIdx {
			l := &h.nodes[n.left]
			lcnt += int64(l.count)
			lsum += l.sum
		}
		start := float64(h.baseline)*float64(n.row-lcnt) + lsum
		eff := float64(h.effective(n))
		switch {
		case y < start:
			t = n.left
		case y < start+eff:
			return n.row
		default:
			cntAcc = lcnt + 1
			sumAcc = lsum + eff
			t = n.right
		}
	}
	// y lands in a run of baseline rows between overrides.
	row := cntAcc + int64((y-sumAcc)/float64(h.baseline))
	if row >= h.rowCount {
		row = h.rowCount - 1
	}
	return row
}

// effective returns the height a record gives its row.
func (h *RowHeights) effective(r *hrec) float32 {
	base := h.baseline
	if r.base >= 0 {
		base = r.base
	}
	return base + r.extra
}

// statsBefore returns how many records precede row and the sum of their
// effective heights.
func (h *RowHeights) statsBefore(row int64) (int64, float64) {
	var cnt int64
	var sum float64
	t := h.root
	for t != nilIdx {
		h.visits++
		n := &h.nodes[t]
		if row <= n.row {
			t = n.left
			continue
		}
		if n.left != nilIdx {
			l := &h.nodes[n.left]
			cnt += int64(l.count)
			sum += l.sum
		}
		cnt++
		sum += float64(h.effective(n))
		t = n.right
	}
	return cnt, sum
}

func (h *RowHeights) find(row int64) int32 {
	t := h.root
	for t != nilIdx {
		h.visits++
		n := &h.nodes[t]
		switch {
		case row < n.row:
			t = n.left
		case row > n.row:
			t = n.right
		default:
			return t
		}
	}
	return nilIdx
}

// withRecord finds or creates the record for row, applies mut, and repairs
// subtree aggregates along the touched path. Records that end up carrying
// no information are removed.
func (h *RowHeights) withRecord(row int64, create bool, mut func(*hrec)) {
	h.path = h.path[:0]
	t := h.root
	for t != nilIdx {
		h.visits++
		h.path = append(h.path, t)
		n := &h.nodes[t]
		switch {
		case row < n.row:
			t = n.left
		case row > n.row:
			t = n.right
		default:
			mut(n)
			if n.base < 0 && n.extra == 0 {
				h.root = h.erase(h.root, row)
				return
			}
			for i := len(h.path) - 1; i >= 0; i-- {
				h.pull(h.path[i])
			}
			return
		}
	}
	if !create {
		return
	}
	idx := h.alloc(row)
	mut(&h.nodes[idx])
	if h.nodes[idx].base < 0 && h.nodes[idx].extra == 0 {
		h.freeNode(idx)
		return
	}
	h.root = h.insert(h.root, idx)
}

func (h *RowHeights) alloc(row int64) int32 {
	var idx int32
	if k := len(h.free); k > 0 {
		idx = h.free[k-1]
		h.free = h.free[:k-1]
	} else {
		h.nodes = append(h.nodes, hrec{})
		idx = int32(len(h.nodes) - 1)
	}
	h.nodes[idx] = hrec{
		row:   row,
		base:  -1,
		prio:  h.nextPrio(),
		left:  nilIdx,
		right: nilIdx,
	}
	return idx
}

func (h *RowHeights) freeNode(idx int32) {
	h.nodes[idx] = hrec{left: nilIdx, right: nilIdx}
	h.free = append(h.free, idx)
}

func (h *RowHeights) freeSubtree(t int32) {
	if t == nilIdx {
		return
	}
	stack := []int32{t}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := h.nodes[i]
		if n.left != nilIdx {
			stack = append(stack, n.left)
		}
		if n.right != nilIdx {
			stack = append(stack, n.right)
		}
		h.freeNode(i)
	}
}

// pull recomputes one node's aggregates from its children. Mutations repair
// only the nodes on the search path; the rest of the tree is untouched.
func (h *RowHeights) pull(t int32) {
	n := &h.nodes[t]
	n.count = 1
	n.sum = float64(h.effective(n))
	if n.left != nilIdx {
		l := &h.nodes[n.left]
		n.count += l.count
		n.sum += l.sum
	}
	if n.right != nilIdx {
		r := &h.nodes[n.right]
		n.count += r.count
		n.sum += r.sum
	}
}

func (h *RowHeights) insert(t, idx int32) int32 {
	if t == nilIdx {
		h.pull(idx)
		return idx
	}
	h.visits++
	if h.nodes[idx].row < h.nodes[t].row {
		h.nodes[t].left = h.insert(h.nodes[t].left, idx)
		if h.nodes[h.nodes[t].left].prio > h.nodes[t].prio {
			t = h.rotateRight(t)
		}
	} else {
		h.nodes[t].right = h.insert(h.nodes[t].right, idx)
		if h.nodes[h.nodes[t].right].prio > h.nodes[t].prio {
			t = h.rotateLeft(t)
		}
	}
	h.pull(t)
	return t
}

func (h *RowHeights) erase(t int32, row int64) int32 {
	if t == nilIdx {
		return nilIdx
	}
	h.visits++
	n := &h.nodes[t]
	switch {
	case row < n.row:
		n.left = h.erase(n.left, row)
	case row > n.row:
		n.right = h.erase(n.right, row)
	default:
		joined := h.join(n.left, n.right)
		h.freeNode(t)
		return joined
	}
	h.pull(t)
	return t
}

func (h *RowHeights) join(a, b int32) int32 {
	if a == nilIdx {
		return b
	}
	if b == nilIdx {
		return a
	}
	h.visits++
	if h.nodes[a].prio > h.nodes[b].prio {
		h.nodes[a].right = h.join(h.nodes[a].right, b)
		h.pull(a)
		return a
	}
	h.nodes[b].left = h.join(a, h.nodes[b].left)
	h.pull(b)
	return b
}

// splitTree divides a subtree into records below key and records at or
// above it.
func (h *RowHeights) splitTree(t int32, key int64) (int32, int32) {
	if t == nilIdx {
		return nilIdx, nilIdx
	}
	h.visits++
	n := &h.nodes[t]
	if n.row < key {
		l, r := h.splitTree(n.right, key)
		n.right = l
		h.pull(t)
		return t, r
	}
	l, r := h.splitTree(n.left, key)
	n.left = r
	h.pull(t)
	return l, t
}

func (h *RowHeights) rotateRight(t int32) int32 {
	l := h.nodes[t].left
	h.nodes[t].left = h.nodes[l].right
	h.nodes[l].right = t
	h.pull(t)
	h.pull(l)
	return l
}

func (h *RowHeights) rotateLeft(t int32) int32 {
	r := h.nodes[t].right
	h.nodes[t].right = h.nodes[r].left
	h.nodes[r].left = t
	h.pull(t)
	h.pull(r)
	return r
}

func (h *RowHeights) nextPrio() uint32 {
	h.rng ^= h.rng << 13
	h.rng ^= h.rng >> 7
	h.rng ^= h.rng << 17
	return uint32(h.rng)
}

package table

import (
	"fmt"
	"sort"
)

// HeaderNode is one node of a header hierarchy: either a leaf referencing a
// column, or a group spanning its children. Build nodes with Leaf and Group;
// the zero value is a leaf for column 0.
type HeaderNode struct {
	Title    string // group caption; leaves take their title from the column Label
	Col      int    // column index for leaves; -1 for groups
	Children []HeaderNode
}

// Leaf returns a header node for a single column.
func Leaf(col int) HeaderNode {
	return HeaderNode{Col: col}
}

// Group returns a header node spanning the given children. A group with no
// children is invalid and is rejected when the header is installed.
func Group(title string, children ...HeaderNode) HeaderNode {
	return HeaderNode{Title: title, Col: -1, Children: children}
}

// IsLeaf reports whether the node references a single column.
func (n HeaderNode) IsLeaf() bool {
	return len(n.Children) == 0 && n.Col >= 0
}

// HeaderCell is one laid-out cell of the header band. Cells are ordered by
// (Row, ColStart). A leaf on a shallower path than the deepest leaf spans
// the remaining header rows, so every column's header stack has equal
// height.
type HeaderCell struct {
	Title    string
	Row      int  // header row index, 0 at the top
	RowSpan  int  // number of header rows covered
	ColStart int  // first column covered
	ColEnd   int  // one past the last column covered
	Leaf     bool // true when the cell heads a single column
}

// hnode is the arena form of a validated header node. The tree is flattened
// in pre-order; subtree aggregates are filled by a reverse sweep.
type hnode struct {
	title  string
	col    int // leaf column; -1 for groups
	parent int32
	row    int

	minCol, maxCol int
	leaves         int
}

// headerModel is a validated header hierarchy. Cell layout is cached and
// rebuilt only when the column fit generation moves.
type headerModel struct {
	nodes []hnode
	depth int // number of header rows

	cells   []HeaderCell
	cellGen uint64
}

// newHeaderModel validates and flattens a header forest. Both passes use
// explicit stacks; pathological tree depth cannot exhaust the call stack.
func newHeaderModel(roots []HeaderNode, numCols int) (*headerModel, error) {
	m := &headerModel{}

	type frame struct {
		node   *HeaderNode
		parent int32
		row    int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{&roots[i], -1, 0})
	}

	prevCol := -1
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		idx := int32(len(m.nodes))
		switch {
		case len(n.Children) > 0:
			m.nodes = append(m.nodes, hnode{
				title:  n.Title,
				col:    -1,
				parent: f.parent,
				row:    f.row,
				minCol: numCols,
				maxCol: -1,
			})
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{&n.Children[i], idx, f.row + 1})
			}
		case n.Col < 0:
			return nil, ErrEmptyGroup
		default:
			if n.Col >= numCols {
				return nil, fmt.Errorf("header leaf column %d of %d: %w", n.Col, numCols, ErrColumnBounds)
			}
			if n.Col == prevCol {
				return nil, fmt.Errorf("header leaf column %d: %w", n.Col, ErrDuplicateLeaf)
			}
			if n.Col < prevCol {
				return nil, fmt.Errorf("header leaf column %d after %d: %w", n.Col, prevCol, ErrHeaderOrder)
			}
			prevCol = n.Col
			m.nodes = append(m.nodes, hnode{
				title:  n.Title,
				col:    n.Col,
				parent: f.parent,
				row:    f.row,
				minCol: n.Col,
				maxCol: n.Col,
				leaves: 1,
			})
			if r := f.row + 1; r > m.depth {
				m.depth = r
			}
		}
	}

	// Children appear after their parent in pre-order, so a reverse sweep
	// sees every subtree before the node that owns it.
	for i := len(m.nodes) - 1; i > 0; i-- {
		n := &m.nodes[i]
		if n.parent < 0 {
			continue
		}
		p := &m.nodes[n.parent]
		if n.minCol < p.minCol {
			p.minCol = n.minCol
		}
		if n.maxCol > p.maxCol {
			p.maxCol = n.maxCol
		}
		p.leaves += n.leaves
	}
	for i := range m.nodes {
		n := &m.nodes[i]
		if n.col < 0 && n.leaves != n.maxCol-n.minCol+1 {
			return nil, fmt.Errorf("header group %q spans columns %d-%d with %d leaves: %w",
				n.title, n.minCol, n.maxCol, n.leaves, ErrHeaderOrder)
		}
	}
	return m, nil
}

// headerCells lays the model out against the current column fit, taking
// leaf titles from the column labels. The result is ordered by
// (Row, ColStart) and cached until the fit generation changes.
func (m *headerModel) headerCells(cs *columnSet) []HeaderCell {
	if m == nil {
		return nil
	}
	if m.cells != nil && m.cellGen == cs.gen {
		return m.cells
	}
	cells := m.cells[:0]
	for i := range m.nodes {
		n := &m.nodes[i]
		cell := HeaderCell{
			Title:    n.title,
			Row:      n.row,
			RowSpan:  1,
			ColStart: n.minCol,
			ColEnd:   n.maxCol + 1,
		}
		if n.col >= 0 {
			cell.Leaf = true
			cell.Title = cs.specs[n.col].Label
			cell.RowSpan = m.depth - n.row
		}
		cells = append(cells, cell)
	}
	sort.SliceStable(cells, func(a, b int) bool {
		if cells[a].Row != cells[b].Row {
			return cells[a].Row < cells[b].Row
		}
		return cells[a].ColStart < cells[b].ColStart
	})
	m.cells = cells
	m.cellGen = cs.gen
	return m.cells
}

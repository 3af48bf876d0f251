package table

import "errors"

// Sentinel errors for invalid input. All configuration and query errors wrap
// one of these, so callers can classify failures with errors.Is. Degenerate
// but valid configurations (zero rows, zero columns, no sticky columns, no
// header) never produce an error; they produce empty results.
var (
	// ErrColumnBounds reports a column index outside [0, NumColumns).
	ErrColumnBounds = errors.New("table: column index out of range")

	// ErrRowBounds reports a row index outside the declared row count.
	ErrRowBounds = errors.New("table: row index out of range")

	// ErrColumnSpec reports an unsatisfiable column constraint, such as a
	// negative width bound or MinWidth exceeding MaxWidth.
	ErrColumnSpec = errors.New("table: invalid column width constraints")

	// ErrStickyGap reports sticky columns that do not form a contiguous
	// leading prefix.
	ErrStickyGap = errors.New("table: sticky columns must form a leading prefix")

	// ErrEmptyGroup reports a header group with no children.
	ErrEmptyGroup = errors.New("table: header group has no children")

	// ErrDuplicateLeaf reports a header tree referencing the same column
	// from more than one leaf.
	ErrDuplicateLeaf = errors.New("table: column referenced by multiple header leaves")

	// ErrHeaderOrder reports header leaves that are out of column order, or
	// a group whose leaves do not cover a contiguous column range.
	ErrHeaderOrder = errors.New("table: header leaves must cover columns left to right")

	// ErrRowHeight reports a non-positive baseline or a negative override.
	ErrRowHeight = errors.New("table: invalid row height")

	// ErrNotResizable reports a resize applied to a column whose spec does
	// not allow it.
	ErrNotResizable = errors.New("table: column is not resizable")

	// ErrViewport reports a viewport with NaN or infinite dimensions or
	// scroll offsets.
	ErrViewport = errors.New("table: viewport values must be finite")
)

package table

// Test hooks. Visits counts index nodes touched by queries and mutations,
// which is how the complexity tests check that query cost scales with the
// number of overrides rather than the number of rows.

func (h *RowHeights) Visits() int { return h.visits }

func (h *RowHeights) ResetVisits() { h.visits = 0 }

var FitWidths = fitWidths

func (t *Table) ColumnOffsets() []float32 { return t.cols.offsets }

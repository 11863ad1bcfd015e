package statustable

// Table is an assembled or reloaded status table.
type Table struct {
	// Columns is the output column order.
	Columns []string
	Rows    []StatusRow
}

// Records renders every row in column order.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Rows[i].Values(t.Columns)
	}
	return out
}

// Objects renders every row as a column keyed map.
func (t *Table) Objects() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Rows[i].Object(t.Columns)
	}
	return out
}

// Find returns the row of a CTOI.
func (t *Table) Find(ctoi string) (*StatusRow, bool) {
	for i := range t.Rows {
		if t.Rows[i].CTOI == ctoi {
			return &t.Rows[i], true
		}
	}
	return nil, false
}

// Filter returns a table with the rows matching keep, sharing the columns of t.
func (t *Table) Filter(keep func(*StatusRow) bool) *Table {
	out := &Table{Columns: t.Columns}
	for i := range t.Rows {
		if keep(&t.Rows[i]) {
			out.Rows = append(out.Rows, t.Rows[i])
		}
	}
	return out
}

// Query selects rows observed in a sector and/or carrying a disposition.
// Zero values disable a criterion.
type Query struct {
	Sector      int
	Disposition string
}

func (q Query) Matches(r *StatusRow) bool {
	if q.Sector > 0 && !r.HasSector(q.Sector) {
		return false
	}
	if q.Disposition != "" && !r.Disposition.Equals(q.Disposition) {
		return false
	}
	return true
}

func (t *Table) Select(q Query) *Table {
	return t.Filter(q.Matches)
}

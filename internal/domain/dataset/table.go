package dataset

// Table is a raw tabular dataset as handed over by a loader. Cells keep the
// type the source produced them with (string from CSV, int64/float64/[]byte/nil
// from the warehouse driver).
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Index maps each column label to its position. Labels are expected to be
// unique; NormalizeColumns guarantees that for normalized tables.
func (t Table) Index() map[string]int {
	out := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		out[col] = i
	}
	return out
}

// Cell returns the value at row/col, or nil when the row is shorter than the header.
func (t Table) Cell(row, col int) any {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return nil
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return nil
	}
	return cells[col]
}

// Resolve picks the first label in aliases that is present in index.
func Resolve(index map[string]int, aliases ...string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := index[alias]; ok {
			return idx, true
		}
	}
	return -1, false
}

// RequireColumns returns a *SchemaError when any of the required fields has
// none of its aliases present in t.
func RequireColumns(t Table, required map[string][]string) error {
	index := t.Index()
	var missing []string
	for _, field := range sortedKeys(required) {
		if _, ok := Resolve(index, required[field]...); !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return newSchemaError(t.Name, missing, t.Columns)
}

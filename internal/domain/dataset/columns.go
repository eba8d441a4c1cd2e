package dataset

import (
	"sort"
	"strings"
)

// NormalizeLabel trims, upper-cases and drops every rune outside [A-Z0-9_].
func NormalizeLabel(label string) string {
	upper := strings.ToUpper(strings.TrimSpace(label))

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeColumns returns a copy of t whose column labels went through
// NormalizeLabel. Row data and order are shared with t, not copied.
// Two source labels that collapse onto the same label are rejected with a
// *DuplicateColumnError.
func NormalizeColumns(t Table) (Table, error) {
	columns := make([]string, len(t.Columns))
	seen := make(map[string][]string, len(t.Columns))
	for i, col := range t.Columns {
		label := NormalizeLabel(col)
		columns[i] = label
		seen[label] = append(seen[label], col)
	}

	for _, label := range columns {
		if sources := seen[label]; len(sources) > 1 {
			return Table{}, newDuplicateColumnError(t.Name, label, sources)
		}
	}

	return Table{
		Name:    t.Name,
		Columns: columns,
		Rows:    t.Rows,
	}, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

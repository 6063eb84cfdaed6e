// Package schema normalises table column definitions received from the backend or the editor.
package schema

import "github.com/SscSPs/workspace_dashboard/internal/core/domain"

// DefaultColumns are injected into every table schema when absent, in this order.
var DefaultColumns = []domain.Column{
	{Name: "Informed", Type: domain.ColumnCheckbox, IsDefault: true},
	{Name: "Source", Type: domain.ColumnText, IsDefault: true},
	{Name: "Feedback", Type: domain.ColumnText, IsDefault: true},
}

// Normalize dedupes columns by exact name, keeping the first occurrence and the
// original order, then appends every default column whose name is missing.
// Columns with an empty name are dropped. Normalize(Normalize(x)) == Normalize(x).
func Normalize(columns []domain.Column) []domain.Column {
	seen := make(map[string]struct{}, len(columns)+len(DefaultColumns))
	out := make([]domain.Column, 0, len(columns)+len(DefaultColumns))

	for _, col := range columns {
		if col.Name == "" {
			continue
		}
		if _, dup := seen[col.Name]; dup {
			continue
		}
		seen[col.Name] = struct{}{}
		out = append(out, cloneColumn(col))
	}

	for _, def := range DefaultColumns {
		if _, ok := seen[def.Name]; ok {
			continue
		}
		seen[def.Name] = struct{}{}
		out = append(out, cloneColumn(def))
	}
	return out
}

func cloneColumn(c domain.Column) domain.Column {
	if c.Options != nil {
		c.Options = append([]string(nil), c.Options...)
	}
	return c
}

package domain

// Row is one record in a workspace table: a candidate (HR) or a task (PM).
// Its shape is governed by the table schema, not by the type.
type Row struct {
	RowID string         `json:"_id"`
	Data  map[string]any `json:"data"`
}

// ColumnType enumerates the cell editors known to the table view.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnNumber   ColumnType = "number"
	ColumnDate     ColumnType = "date"
	ColumnSelect   ColumnType = "select"
	ColumnCheckbox ColumnType = "checkbox"
	ColumnEmail    ColumnType = "email"
	ColumnURL      ColumnType = "url"
)

// Column is one schema definition of the table.
type Column struct {
	Name      string     `json:"name"`
	Type      ColumnType `json:"type"`
	IsDefault bool       `json:"isDefault,omitempty"`
	Required  bool       `json:"required,omitempty"`
	Options   []string   `json:"options,omitempty"`
}

// Table is the denormalised row set plus schema of an HR workspace.
type Table struct {
	Rows   []Row    `json:"rows"`
	Schema []Column `json:"schema"`
}

// RowPatch is a partial update of one row's data.
type RowPatch struct {
	RowID string         `json:"_id"`
	Data  map[string]any `json:"data"`
}

// ChangeSet is the batched payload of POST /workspaces/:id/sync.
type ChangeSet struct {
	Added   []Row      `json:"added"`
	Updated []RowPatch `json:"updated"`
	Deleted []string   `json:"deleted"`
	Columns []Column   `json:"columns,omitempty"`
}

// IsEmpty reports whether the change set carries nothing to send.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0 && c.Columns == nil
}

// RowMail is the body of the send-row-mail call.
type RowMail struct {
	To      string `json:"to,omitempty" validate:"omitempty,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required"`
}

// StatusField is the row data key the kanban view groups by.
const StatusField = "status"

// Clone copies the row; the data map is copied one level deep.
func (r Row) Clone() Row {
	return Row{RowID: r.RowID, Data: cloneData(r.Data)}
}

// Clone copies the table rows and schema.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Rows:   make([]Row, len(t.Rows)),
		Schema: append([]Column(nil), t.Schema...),
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// MergeData returns base overlaid with patch. Neither argument is modified.
func MergeData(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

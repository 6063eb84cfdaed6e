package dto

import "github.com/SscSPs/workspace_dashboard/internal/core/domain"

// --- Table DTOs ---

// AddRowRequest stages a new row. The id is optional; one is generated when empty.
type AddRowRequest struct {
	RowID string         `json:"_id"`
	Data  map[string]any `json:"data" binding:"required"`
}

// ToRow converts the request to a domain row.
func (r AddRowRequest) ToRow() domain.Row {
	return domain.Row{RowID: r.RowID, Data: r.Data}
}

// UpdateRowRequest stages a partial row update.
type UpdateRowRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

// SetColumnsRequest stages a new table schema.
type SetColumnsRequest struct {
	Columns []ColumnRequest `json:"columns" binding:"required,dive"`
}

// ColumnRequest is one column definition.
type ColumnRequest struct {
	Name     string            `json:"name" binding:"required"`
	Type     domain.ColumnType `json:"type" binding:"required,oneof=text number date select checkbox email url"`
	Required bool              `json:"required"`
	Options  []string          `json:"options"`
}

// ToColumns converts the request to domain columns.
func (r SetColumnsRequest) ToColumns() []domain.Column {
	cols := make([]domain.Column, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = domain.Column{Name: c.Name, Type: c.Type, Required: c.Required, Options: c.Options}
	}
	return cols
}

// ListRowsResponse wraps the rows of a table.
type ListRowsResponse struct {
	Rows []domain.Row `json:"rows"`
}

// ColumnsResponse wraps a normalised schema.
type ColumnsResponse struct {
	Columns []domain.Column `json:"columns"`
}

// MoveCardRequest moves a kanban card to another column.
type MoveCardRequest struct {
	RowID    string `json:"rowId" binding:"required"`
	ToColumn string `json:"toColumn" binding:"required"`
}

// SendRowMailRequest mails the candidate of a row.
type SendRowMailRequest struct {
	To      string `json:"to" binding:"omitempty,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required"`
}

// ToMail converts the request to a domain mail.
func (r SendRowMailRequest) ToMail() domain.RowMail {
	return domain.RowMail{To: r.To, Subject: r.Subject, Body: r.Body}
}

// ReportQuery selects the column a breakdown groups by.
type ReportQuery struct {
	Column string `form:"column" binding:"required"`
}

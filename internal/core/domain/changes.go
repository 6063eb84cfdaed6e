package domain

// PendingOp is the coalesced operation pending for one row.
type PendingOp string

const (
	OpAdd    PendingOp = "add"
	OpUpdate PendingOp = "update"
	OpRemove PendingOp = "remove"
)

// PendingChange is one coalesced entry of a change buffer.
type PendingChange struct {
	RowID string         `json:"_id"`
	Op    PendingOp      `json:"op"`
	Data  map[string]any `json:"data,omitempty"`
}

// BufferSnapshot is the serialisable state of a change buffer. Changes are in
// first-touch order and Removed is sorted, so equal buffers encode identically.
type BufferSnapshot struct {
	WorkspaceID string          `json:"workspaceId"`
	Changes     []PendingChange `json:"changes"`
	Columns     []Column        `json:"columns,omitempty"`
	Removed     []string        `json:"removed,omitempty"`
}

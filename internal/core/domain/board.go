package domain

// CardState tracks an optimistic kanban move.
type CardState string

const (
	CardSynced    CardState = "synced"
	CardPending   CardState = "pending"
	CardCommitted CardState = "committed"
	CardReverted  CardState = "reverted"
)

// Default kanban columns of a PM workspace.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// DefaultBoardColumns are always shown, in this order.
var DefaultBoardColumns = []string{StatusTodo, StatusInProgress, StatusDone}

// Card is one task on the board.
type Card struct {
	RowID  string         `json:"_id"`
	Title  string         `json:"title,omitempty"`
	Column string         `json:"column"`
	State  CardState      `json:"state"`
	Data   map[string]any `json:"data,omitempty"`
}

// BoardColumn is one lane of the board.
type BoardColumn struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Board is the kanban projection of a workspace table.
type Board struct {
	WorkspaceID string        `json:"workspaceId"`
	Columns     []BoardColumn `json:"columns"`
}

package domain

import "github.com/shopspring/decimal"

// BreakdownBucket counts rows sharing one value of the grouped column.
type BreakdownBucket struct {
	Value   string          `json:"value"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// Breakdown groups the rows of a workspace table by one column.
type Breakdown struct {
	WorkspaceID string            `json:"workspaceId"`
	Column      string            `json:"column"`
	Total       int               `json:"total"`
	Buckets     []BreakdownBucket `json:"buckets"`
}

// ProjectProgress summarises a PM board.
type ProjectProgress struct {
	WorkspaceID    string            `json:"workspaceId"`
	Total          int               `json:"total"`
	Done           int               `json:"done"`
	CompletionRate decimal.Decimal   `json:"completionRate"`
	ByStatus       []BreakdownBucket `json:"byStatus"`
}

package services

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// TableEditorSvc buffers row and column edits and syncs them in one call
type TableEditorSvc interface {
	ListRows(ctx context.Context, userID, workspaceID string) ([]domain.Row, error)
	AddRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error)
	UpdateRow(ctx context.Context, userID, workspaceID, rowID string, patch map[string]any) error
	RemoveRow(ctx context.Context, userID, workspaceID, rowID string, confirm bool) error
	SetColumns(ctx context.Context, userID, workspaceID string, columns []domain.Column) ([]domain.Column, error)
	Pending(ctx context.Context, userID, workspaceID string) (*domain.BufferSnapshot, error)
	Flush(ctx context.Context, userID, workspaceID string) (*FlushResult, error)
}

// TableRowSvc defines direct, unbuffered row operations
type TableRowSvc interface {
	CreateRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error)
	SendRowMail(ctx context.Context, userID, workspaceID, rowID string, mail domain.RowMail) error
}

// KanbanSvc projects a PM table onto a board
type KanbanSvc interface {
	Board(ctx context.Context, userID, workspaceID string) (*domain.Board, error)

	// MoveCard moves optimistically and syncs immediately. On failure the card is
	// reverted and the error returned together with the reverted board.
	MoveCard(ctx context.Context, userID, workspaceID, rowID, toColumn string) (*domain.Board, error)
}

// TableSvcFacade combines all table-related service interfaces
type TableSvcFacade interface {
	TableEditorSvc
	TableRowSvc
	KanbanSvc
}

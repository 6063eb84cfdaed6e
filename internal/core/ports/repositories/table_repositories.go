package repositories

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// TableRepository defines the row operations of a workspace table
type TableRepository interface {
	ListRows(ctx context.Context, workspaceID string) ([]domain.Row, error)
	CreateRow(ctx context.Context, workspaceID string, row domain.Row) (*domain.Row, error)

	// SyncTable commits a whole change set in one call and returns the resulting table.
	SyncTable(ctx context.Context, workspaceID string, changes domain.ChangeSet) (*domain.Table, error)

	SendRowMail(ctx context.Context, workspaceID, rowID string, mail domain.RowMail) error
}

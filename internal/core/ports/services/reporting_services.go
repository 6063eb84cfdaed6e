package services

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// ReportingSvc aggregates workspace tables
type ReportingSvc interface {
	// RowBreakdown groups the rows by the value of column.
	RowBreakdown(ctx context.Context, userID, workspaceID, column string) (*domain.Breakdown, error)

	// ProjectProgress reports the done share of a PM board.
	ProjectProgress(ctx context.Context, userID, workspaceID string) (*domain.ProjectProgress, error)
}

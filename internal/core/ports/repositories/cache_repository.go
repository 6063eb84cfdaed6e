package repositories

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// WorkspaceListCache caches the owned/shared workspace lists per user.
type WorkspaceListCache interface {
	// GetWorkspaceList returns apperrors.ErrNotFound on a miss.
	GetWorkspaceList(ctx context.Context, userID string) (*domain.WorkspaceList, error)
	SetWorkspaceList(ctx context.Context, userID string, list *domain.WorkspaceList) error
	InvalidateWorkspaceList(ctx context.Context, userID string) error
}

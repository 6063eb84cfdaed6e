package repositories

import "context"

// DraftKey identifies the unsynced change buffer of one user in one workspace.
type DraftKey struct {
	UserID      string
	WorkspaceID string
}

// DraftRepository persists change buffer snapshots between process restarts.
type DraftRepository interface {
	// SaveDraft upserts the serialized buffer.
	SaveDraft(ctx context.Context, key DraftKey, payload []byte) error

	// FindDraft returns apperrors.ErrNotFound when nothing is stored.
	FindDraft(ctx context.Context, key DraftKey) ([]byte, error)

	DeleteDraft(ctx context.Context, key DraftKey) error
}

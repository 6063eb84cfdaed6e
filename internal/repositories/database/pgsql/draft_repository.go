package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/workspace_dashboard/internal/models"
)

type PgxDraftRepository struct {
	BaseRepository
}

// newPgxDraftRepository creates a repository for unsynced change buffers.
func newPgxDraftRepository(db DBTX) *PgxDraftRepository {
	return &PgxDraftRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DraftRepository = (*PgxDraftRepository)(nil)

// SaveDraft inserts or replaces the buffer of one user in one workspace.
func (r *PgxDraftRepository) SaveDraft(ctx context.Context, key portsrepo.DraftKey, payload []byte) error {
	now := time.Now().UTC()
	draft := models.PendingChangeDraft{
		UserID:      key.UserID,
		WorkspaceID: key.WorkspaceID,
		Payload:     payload,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO pending_changes (user_id, workspace_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, workspace_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		draft.UserID,
		draft.WorkspaceID,
		draft.Payload,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft for workspace %s: %w", key.WorkspaceID, err)
	}
	return nil
}

// FindDraft loads the stored buffer or returns apperrors.ErrNotFound.
func (r *PgxDraftRepository) FindDraft(ctx context.Context, key portsrepo.DraftKey) ([]byte, error) {
	query := `
		SELECT user_id, workspace_id, payload, created_at, updated_at
		FROM pending_changes
		WHERE user_id = $1 AND workspace_id = $2;
	`
	var draft models.PendingChangeDraft
	err := r.Pool.QueryRow(ctx, query, key.UserID, key.WorkspaceID).Scan(
		&draft.UserID,
		&draft.WorkspaceID,
		&draft.Payload,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft for workspace %s: %w", key.WorkspaceID, err)
	}
	return draft.Payload, nil
}

// DeleteDraft removes the stored buffer. Deleting a missing draft is not an error.
func (r *PgxDraftRepository) DeleteDraft(ctx context.Context, key portsrepo.DraftKey) error {
	query := `DELETE FROM pending_changes WHERE user_id = $1 AND workspace_id = $2;`
	if _, err := r.Pool.Exec(ctx, query, key.UserID, key.WorkspaceID); err != nil {
		return fmt.Errorf("failed to delete draft for workspace %s: %w", key.WorkspaceID, err)
	}
	return nil
}

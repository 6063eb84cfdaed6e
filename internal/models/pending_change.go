package models

import "time"

// PendingChangeDraft is one row of the pending_changes table: the serialized
// change buffer of a user in a workspace.
type PendingChangeDraft struct {
	UserID      string    `db:"user_id"`
	WorkspaceID string    `db:"workspace_id"`
	Payload     []byte    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

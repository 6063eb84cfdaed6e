package remote

import (
	"context"
	"net/http"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// ListRows calls GET /workspaces/:id/rows.
func (c *Client) ListRows(ctx context.Context, workspaceID string) ([]domain.Row, error) {
	var out []domain.Row
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "rows"), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Row{}
	}
	return out, nil
}

// CreateRow calls POST /workspaces/:id/rows.
func (c *Client) CreateRow(ctx context.Context, workspaceID string, row domain.Row) (*domain.Row, error) {
	var out domain.Row
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "rows"), row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncTable calls POST /workspaces/:id/sync with the whole change set.
func (c *Client) SyncTable(ctx context.Context, workspaceID string, changes domain.ChangeSet) (*domain.Table, error) {
	if changes.Added == nil {
		changes.Added = []domain.Row{}
	}
	if changes.Updated == nil {
		changes.Updated = []domain.RowPatch{}
	}
	if changes.Deleted == nil {
		changes.Deleted = []string{}
	}
	var out domain.Table
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "sync"), changes, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendRowMail calls POST /workspaces/:id/rows/:rowId/mail.
func (c *Client) SendRowMail(ctx context.Context, workspaceID, rowID string, mail domain.RowMail) error {
	_, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "rows", rowID, "mail"), mail, nil)
	return err
}

package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

// tableService implements the TableSvcFacade interface
type tableService struct {
	authorizer
	repo portsrepo.TableRepository
}

// NewTableService creates a new table service with the provided dependencies
func NewTableService(sessions *SessionRegistry, repo portsrepo.TableRepository) portssvc.TableSvcFacade {
	return &tableService{
		authorizer: authorizer{sessions: sessions},
		repo:       repo,
	}
}

// Ensure tableService implements the TableSvcFacade interface
var _ portssvc.TableSvcFacade = (*tableService)(nil)

// ListRows fetches the rows of the workspace table
func (s *tableService) ListRows(ctx context.Context, userID, workspaceID string) ([]domain.Row, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRows(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rows", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return rows, nil
}

// AddRow stages a new row in the change buffer
func (s *tableService) AddRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return nil, err
	}
	added, err := access.session.Buffer(ctx, workspaceID).Add(ctx, row)
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdateRow stages a partial row update
func (s *tableService) UpdateRow(ctx context.Context, userID, workspaceID, rowID string, patch map[string]any) error {
	if len(patch) == 0 {
		return apperrors.NewValidationError("patch must change at least one field")
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return err
	}
	return access.session.Buffer(ctx, workspaceID).Update(ctx, rowID, patch)
}

// RemoveRow stages a row deletion; it needs confirmation
func (s *tableService) RemoveRow(ctx context.Context, userID, workspaceID, rowID string, confirm bool) error {
	if err := requireConfirmation(confirm, "deleting a row"); err != nil {
		return err
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return err
	}
	return access.session.Buffer(ctx, workspaceID).Remove(ctx, rowID)
}

// SetColumns stages a normalised schema
func (s *tableService) SetColumns(ctx context.Context, userID, workspaceID string, columns []domain.Column) ([]domain.Column, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return nil, err
	}
	return access.session.Buffer(ctx, workspaceID).SetColumns(ctx, columns), nil
}

// Pending returns the unsynced edits
func (s *tableService) Pending(ctx context.Context, userID, workspaceID string) (*domain.BufferSnapshot, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	view := access.session.Buffer(ctx, workspaceID).View()
	return &view, nil
}

// Flush syncs the buffer and merges the result into the session
func (s *tableService) Flush(ctx context.Context, userID, workspaceID string) (*portssvc.FlushResult, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return nil, err
	}
	res, err := access.session.Buffer(ctx, workspaceID).Flush(ctx)
	if err != nil {
		return nil, err
	}
	s.applyFlush(access.session, workspaceID, res)
	return res, nil
}

func (s *tableService) applyFlush(session *Session, workspaceID string, res *portssvc.FlushResult) {
	if res.Table != nil {
		session.Store.ApplyTable(workspaceID, res.Table)
	}
	board := session.Board(workspaceID)
	for _, row := range res.Sent.Added {
		if status, ok := row.Data[domain.StatusField].(string); ok {
			board.Commit(row.RowID, status)
		}
	}
	for _, patch := range res.Sent.Updated {
		if status, ok := patch.Data[domain.StatusField].(string); ok {
			board.Commit(patch.RowID, status)
		}
	}
}

// Board loads the kanban projection of a PM workspace
func (s *tableService) Board(ctx context.Context, userID, workspaceID string) (*domain.Board, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	if err := requireProjectFocus(access.workspace); err != nil {
		return nil, err
	}
	board, err := s.loadBoard(ctx, access, workspaceID)
	if err != nil {
		return nil, err
	}
	return board.View(), nil
}

func (s *tableService) loadBoard(ctx context.Context, access *workspaceAccess, workspaceID string) (*KanbanBoard, error) {
	rows, err := s.repo.ListRows(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load board rows", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	rows = overlayPending(rows, access.session.Buffer(ctx, workspaceID).Pending())
	board := access.session.Board(workspaceID)
	board.Load(rows)
	return board, nil
}

// MoveCard moves optimistically, then syncs right away
func (s *tableService) MoveCard(ctx context.Context, userID, workspaceID, rowID, toColumn string) (*domain.Board, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return nil, err
	}
	if err := requireProjectFocus(access.workspace); err != nil {
		return nil, err
	}

	board := access.session.Board(workspaceID)
	if _, ok := board.Card(rowID); !ok {
		if board, err = s.loadBoard(ctx, access, workspaceID); err != nil {
			return nil, err
		}
	}
	if _, err := board.Move(rowID, toColumn); err != nil {
		return nil, err
	}

	buf := access.session.Buffer(ctx, workspaceID)
	if err := buf.Update(ctx, rowID, map[string]any{domain.StatusField: toColumn}); err != nil {
		board.Revert(rowID, toColumn)
		return board.View(), err
	}

	res, err := buf.Flush(ctx)
	switch {
	case err == nil:
		s.applyFlush(access.session, workspaceID, res)
		return board.View(), nil
	case errors.Is(err, apperrors.ErrFlushInProgress):
		// the outstanding flush did not carry this move; it stays pending
		s.LogDebug(ctx, "Card move queued behind running flush", slog.String("row_id", rowID))
		return board.View(), nil
	default:
		back := board.Revert(rowID, toColumn)
		if back != toColumn {
			// keep the buffer in line with the card; the failed move must not resurface
			if uerr := buf.Update(ctx, rowID, map[string]any{domain.StatusField: back}); uerr != nil {
				s.LogError(ctx, uerr, "Failed to roll back card move", slog.String("row_id", rowID))
			}
		}
		s.LogInfo(ctx, "Card move reverted",
			slog.String("workspace_id", workspaceID),
			slog.String("row_id", rowID),
			slog.String("column", back))
		return board.View(), err
	}
}

// CreateRow creates a row directly, bypassing the buffer
func (s *tableService) CreateRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateRow(ctx, workspaceID, row)
	if err != nil {
		s.LogError(ctx, err, "Failed to create row", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return created, nil
}

// SendRowMail mails a candidate from the table
func (s *tableService) SendRowMail(ctx context.Context, userID, workspaceID, rowID string, mail domain.RowMail) error {
	if rowID == "" {
		return apperrors.NewValidationError("row id is required")
	}
	if err := validateParams(mail); err != nil {
		return err
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent); err != nil {
		return err
	}
	if err := s.repo.SendRowMail(ctx, workspaceID, rowID, mail); err != nil {
		s.LogError(ctx, err, "Failed to send row mail",
			slog.String("workspace_id", workspaceID),
			slog.String("row_id", rowID))
		return err
	}
	return nil
}

func requireProjectFocus(ws *domain.Workspace) error {
	if ws.MainFocus.IsProjectFocus() {
		return nil
	}
	return apperrors.NewValidationError("the board is only available for project workspaces")
}

// overlayPending applies unsynced buffer changes on top of backend rows.
func overlayPending(rows []domain.Row, cs domain.ChangeSet) []domain.Row {
	deleted := make(map[string]bool, len(cs.Deleted))
	for _, id := range cs.Deleted {
		deleted[id] = true
	}
	patches := make(map[string]map[string]any, len(cs.Updated))
	for _, p := range cs.Updated {
		patches[p.RowID] = p.Data
	}

	out := make([]domain.Row, 0, len(rows)+len(cs.Added))
	for _, row := range rows {
		if deleted[row.RowID] {
			continue
		}
		if patch, ok := patches[row.RowID]; ok {
			row = domain.Row{RowID: row.RowID, Data: domain.MergeData(row.Data, patch)}
		}
		out = append(out, row)
	}
	return append(out, cs.Added...)
}

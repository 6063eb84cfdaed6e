package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/core/schema"
)

type bufferEntry struct {
	op   domain.PendingOp
	data map[string]any
	seq  uint64 // first touch, fixes the order rows are sent in
	rev  uint64 // bumped on every mutation
}

type capturedEntry struct {
	op  domain.PendingOp
	rev uint64
}

// ChangeBuffer collects row and column edits of one workspace table and sends
// them as a single sync call. Edits to the same row coalesce; a failed flush
// leaves the buffer exactly as it was.
type ChangeBuffer struct {
	BaseService
	workspaceID string
	repo        portsrepo.TableRepository
	drafts      portsrepo.DraftRepository
	draftKey    portsrepo.DraftKey

	mu         sync.Mutex
	entries    map[string]*bufferEntry
	removed    map[string]struct{}
	columns    []domain.Column
	columnsRev uint64
	seq        uint64
	rev        uint64
	inFlight   map[string]capturedEntry

	// persistMu orders draft writes so the last one stored is the newest view.
	persistMu sync.Mutex
}

// NewChangeBuffer creates an empty buffer. drafts may be nil.
func NewChangeBuffer(workspaceID string, repo portsrepo.TableRepository, drafts portsrepo.DraftRepository, draftKey portsrepo.DraftKey) *ChangeBuffer {
	return &ChangeBuffer{
		workspaceID: workspaceID,
		repo:        repo,
		drafts:      drafts,
		draftKey:    draftKey,
		entries:     make(map[string]*bufferEntry),
		removed:     make(map[string]struct{}),
	}
}

// WorkspaceID returns the workspace the buffer belongs to.
func (b *ChangeBuffer) WorkspaceID() string { return b.workspaceID }

// Add stages a new row. A row without id gets a generated one. Adding an id
// that already has a pending change fails with ErrDuplicate; adding a removed
// id is dropped.
func (b *ChangeBuffer) Add(ctx context.Context, row domain.Row) (domain.Row, error) {
	if row.RowID == "" {
		row.RowID = uuid.NewString()
	}
	if row.Data == nil {
		row.Data = map[string]any{}
	}

	b.mu.Lock()
	if _, gone := b.removed[row.RowID]; gone {
		b.mu.Unlock()
		b.LogDebug(ctx, "Dropping add of removed row", slog.String("row_id", row.RowID))
		return row, nil
	}
	if _, exists := b.entries[row.RowID]; exists {
		b.mu.Unlock()
		return row, fmt.Errorf("row %s: %w", row.RowID, apperrors.ErrDuplicate)
	}
	b.seq++
	b.rev++
	b.entries[row.RowID] = &bufferEntry{op: domain.OpAdd, data: domain.MergeData(nil, row.Data), seq: b.seq, rev: b.rev}
	b.mu.Unlock()

	b.persist(ctx)
	return row.Clone(), nil
}

// Update stages a partial update. Patches to a pending add or update merge
// into it; patches to a removed id are dropped.
func (b *ChangeBuffer) Update(ctx context.Context, rowID string, patch map[string]any) error {
	if rowID == "" {
		return apperrors.NewValidationError("row id is required")
	}

	b.mu.Lock()
	if _, gone := b.removed[rowID]; gone {
		b.mu.Unlock()
		b.LogDebug(ctx, "Dropping update of removed row", slog.String("row_id", rowID))
		return nil
	}
	b.rev++
	if e, ok := b.entries[rowID]; ok {
		e.data = domain.MergeData(e.data, patch)
		e.rev = b.rev
	} else {
		b.seq++
		b.entries[rowID] = &bufferEntry{op: domain.OpUpdate, data: domain.MergeData(nil, patch), seq: b.seq, rev: b.rev}
	}
	b.mu.Unlock()

	b.persist(ctx)
	return nil
}

// Remove stages a deletion. Removing a row that was only added locally
// cancels the add; nothing is sent for it. Later mutations of the id are dropped.
func (b *ChangeBuffer) Remove(ctx context.Context, rowID string) error {
	if rowID == "" {
		return apperrors.NewValidationError("row id is required")
	}

	b.mu.Lock()
	if _, gone := b.removed[rowID]; gone {
		b.mu.Unlock()
		return nil
	}
	b.removed[rowID] = struct{}{}
	b.rev++
	e, ok := b.entries[rowID]
	switch {
	case ok && e.op == domain.OpAdd && !b.addInFlight(rowID):
		delete(b.entries, rowID)
	case ok:
		// the row exists remotely (or is being created right now)
		e.op = domain.OpRemove
		e.data = nil
		e.rev = b.rev
	default:
		b.seq++
		b.entries[rowID] = &bufferEntry{op: domain.OpRemove, seq: b.seq, rev: b.rev}
	}
	b.mu.Unlock()

	b.persist(ctx)
	return nil
}

func (b *ChangeBuffer) addInFlight(rowID string) bool {
	c, ok := b.inFlight[rowID]
	return ok && c.op == domain.OpAdd
}

// SetColumns stages a schema change; the columns are normalised first.
func (b *ChangeBuffer) SetColumns(ctx context.Context, columns []domain.Column) []domain.Column {
	normalized := schema.Normalize(columns)

	b.mu.Lock()
	b.rev++
	b.columns = normalized
	b.columnsRev = b.rev
	b.mu.Unlock()

	b.persist(ctx)
	return append([]domain.Column(nil), normalized...)
}

// Pending returns the change set a flush would send now.
func (b *ChangeBuffer) Pending() domain.ChangeSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changeSetLocked()
}

// Len returns the number of rows with a pending change.
func (b *ChangeBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Flushing reports whether a flush is outstanding.
func (b *ChangeBuffer) Flushing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inFlight != nil
}

func (b *ChangeBuffer) orderedIDsLocked() []string {
	ids := make([]string, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return b.entries[ids[i]].seq < b.entries[ids[j]].seq
	})
	return ids
}

func (b *ChangeBuffer) changeSetLocked() domain.ChangeSet {
	cs := domain.ChangeSet{
		Added:   []domain.Row{},
		Updated: []domain.RowPatch{},
		Deleted: []string{},
	}
	for _, id := range b.orderedIDsLocked() {
		e := b.entries[id]
		switch e.op {
		case domain.OpAdd:
			cs.Added = append(cs.Added, domain.Row{RowID: id, Data: domain.MergeData(nil, e.data)})
		case domain.OpUpdate:
			cs.Updated = append(cs.Updated, domain.RowPatch{RowID: id, Data: domain.MergeData(nil, e.data)})
		case domain.OpRemove:
			cs.Deleted = append(cs.Deleted, id)
		}
	}
	if b.columns != nil {
		cs.Columns = append([]domain.Column(nil), b.columns...)
	}
	return cs
}

// Flush sends every pending change in one SyncTable call. An empty buffer is
// a no-op. Only one flush may be outstanding; a second one fails with
// ErrFlushInProgress. On failure nothing changes, except that an add removed
// while in flight cancels out. On success only the changes that were sent are
// cleared; an add edited while in flight stays pending as an update carrying
// its full data.
func (b *ChangeBuffer) Flush(ctx context.Context) (*portssvc.FlushResult, error) {
	b.mu.Lock()
	if b.inFlight != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("workspace %s: %w", b.workspaceID, apperrors.ErrFlushInProgress)
	}
	cs := b.changeSetLocked()
	if cs.IsEmpty() {
		b.mu.Unlock()
		return &portssvc.FlushResult{Sent: cs}, nil
	}
	captured := make(map[string]capturedEntry, len(b.entries))
	for id, e := range b.entries {
		captured[id] = capturedEntry{op: e.op, rev: e.rev}
	}
	capturedColumnsRev := b.columnsRev
	hadColumns := b.columns != nil
	b.inFlight = captured
	b.mu.Unlock()

	table, err := b.repo.SyncTable(ctx, b.workspaceID, cs)

	b.mu.Lock()
	b.inFlight = nil
	if err != nil {
		cancelled := 0
		for id, c := range captured {
			// the add never reached the backend, so a later remove cancels it
			if e, ok := b.entries[id]; ok && c.op == domain.OpAdd && e.op == domain.OpRemove {
				delete(b.entries, id)
				cancelled++
			}
		}
		b.mu.Unlock()
		b.LogError(ctx, err, "Table sync failed",
			slog.String("workspace_id", b.workspaceID),
			slog.Int("added", len(cs.Added)),
			slog.Int("updated", len(cs.Updated)),
			slog.Int("deleted", len(cs.Deleted)))
		if cancelled > 0 {
			b.persist(ctx)
		}
		return nil, err
	}

	for id, c := range captured {
		e, ok := b.entries[id]
		if !ok {
			continue
		}
		if e.rev == c.rev {
			delete(b.entries, id)
			continue
		}
		if c.op == domain.OpAdd && e.op == domain.OpAdd {
			// the row now exists remotely; resend its full data as an update
			e.op = domain.OpUpdate
		}
	}
	if hadColumns && b.columnsRev == capturedColumnsRev {
		b.columns = nil
	}
	b.mu.Unlock()

	b.LogInfo(ctx, "Table synced",
		slog.String("workspace_id", b.workspaceID),
		slog.Int("added", len(cs.Added)),
		slog.Int("updated", len(cs.Updated)),
		slog.Int("deleted", len(cs.Deleted)))
	b.persist(ctx)
	return &portssvc.FlushResult{Sent: cs, Table: table}, nil
}

// Snapshot encodes the buffer deterministically.
func (b *ChangeBuffer) Snapshot() ([]byte, error) {
	return json.Marshal(b.View())
}

// View returns the buffer contents in first-touch order.
func (b *ChangeBuffer) View() domain.BufferSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := domain.BufferSnapshot{
		WorkspaceID: b.workspaceID,
		Changes:     make([]domain.PendingChange, 0, len(b.entries)),
	}
	for _, id := range b.orderedIDsLocked() {
		e := b.entries[id]
		snap.Changes = append(snap.Changes, domain.PendingChange{RowID: id, Op: e.op, Data: domain.MergeData(nil, e.data)})
		if e.op == domain.OpRemove {
			snap.Changes[len(snap.Changes)-1].Data = nil
		}
	}
	if b.columns != nil {
		snap.Columns = append([]domain.Column(nil), b.columns...)
	}
	for id := range b.removed {
		snap.Removed = append(snap.Removed, id)
	}
	sort.Strings(snap.Removed)
	return snap
}

// Restore replaces the buffer contents with a snapshot.
func (b *ChangeBuffer) Restore(payload []byte) error {
	var snap domain.BufferSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("decode buffer snapshot: %w", err)
	}
	if snap.WorkspaceID != "" && snap.WorkspaceID != b.workspaceID {
		return fmt.Errorf("snapshot belongs to workspace %s, not %s", snap.WorkspaceID, b.workspaceID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFlight != nil {
		return fmt.Errorf("workspace %s: %w", b.workspaceID, apperrors.ErrFlushInProgress)
	}
	b.entries = make(map[string]*bufferEntry, len(snap.Changes))
	b.removed = make(map[string]struct{}, len(snap.Removed))
	b.seq, b.rev = 0, 0
	for _, c := range snap.Changes {
		switch c.Op {
		case domain.OpAdd, domain.OpUpdate, domain.OpRemove:
		default:
			return fmt.Errorf("unknown pending op %q for row %s", c.Op, c.RowID)
		}
		b.seq++
		b.rev++
		e := &bufferEntry{op: c.Op, seq: b.seq, rev: b.rev}
		if c.Op != domain.OpRemove {
			e.data = domain.MergeData(nil, c.Data)
		}
		b.entries[c.RowID] = e
	}
	for _, id := range snap.Removed {
		b.removed[id] = struct{}{}
	}
	b.columns = nil
	if snap.Columns != nil {
		b.rev++
		b.columns = append([]domain.Column(nil), snap.Columns...)
		b.columnsRev = b.rev
	}
	return nil
}

// LoadDraft restores a persisted draft, if any.
func (b *ChangeBuffer) LoadDraft(ctx context.Context) error {
	if b.drafts == nil {
		return nil
	}
	payload, err := b.drafts.FindDraft(ctx, b.draftKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := b.Restore(payload); err != nil {
		return err
	}
	b.LogInfo(ctx, "Restored unsynced table edits", slog.String("workspace_id", b.workspaceID), slog.Int("rows", b.Len()))
	return nil
}

// DiscardDraft deletes the persisted draft.
func (b *ChangeBuffer) DiscardDraft(ctx context.Context) {
	if b.drafts == nil {
		return
	}
	b.persistMu.Lock()
	defer b.persistMu.Unlock()
	b.deleteDraft(ctx)
}

func (b *ChangeBuffer) deleteDraft(ctx context.Context) {
	if err := b.drafts.DeleteDraft(ctx, b.draftKey); err != nil {
		b.LogError(ctx, err, "Failed to delete table draft", slog.String("workspace_id", b.workspaceID))
	}
}

// persist writes the buffer to the draft store. Failures are logged; the
// in-memory buffer stays authoritative.
func (b *ChangeBuffer) persist(ctx context.Context) {
	if b.drafts == nil {
		return
	}
	b.persistMu.Lock()
	defer b.persistMu.Unlock()

	view := b.View()
	if len(view.Changes) == 0 && view.Columns == nil {
		b.deleteDraft(ctx)
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		b.LogError(ctx, err, "Failed to encode table draft", slog.String("workspace_id", b.workspaceID))
		return
	}
	if err := b.drafts.SaveDraft(ctx, b.draftKey, payload); err != nil {
		b.LogError(ctx, err, "Failed to save table draft", slog.String("workspace_id", b.workspaceID))
	}
}

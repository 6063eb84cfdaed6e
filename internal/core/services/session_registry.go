package services

import (
	"context"
	"log/slog"
	"sync"

	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
)

// Session is everything the BFF keeps for one logged-in user.
type Session struct {
	BaseService
	Store *SessionStore

	userID string
	tables portsrepo.TableRepository
	drafts portsrepo.DraftRepository

	mu      sync.Mutex
	buffers map[string]*bufferSlot
	boards  map[string]*KanbanBoard
}

// bufferSlot hands out its buffer only once the persisted draft is restored.
type bufferSlot struct {
	once sync.Once
	buf  *ChangeBuffer
}

// Buffer returns the change buffer of workspaceID, creating it on first use
// and restoring any persisted draft. Concurrent first callers wait for the
// restore, so no edit can land before it.
func (s *Session) Buffer(ctx context.Context, workspaceID string) *ChangeBuffer {
	s.mu.Lock()
	slot, ok := s.buffers[workspaceID]
	if !ok {
		slot = &bufferSlot{}
		s.buffers[workspaceID] = slot
	}
	s.mu.Unlock()
	return s.open(ctx, slot, workspaceID)
}

func (s *Session) open(ctx context.Context, slot *bufferSlot, workspaceID string) *ChangeBuffer {
	slot.once.Do(func() {
		buf := NewChangeBuffer(workspaceID, s.tables, s.drafts, portsrepo.DraftKey{UserID: s.userID, WorkspaceID: workspaceID})
		if err := buf.LoadDraft(ctx); err != nil {
			s.LogError(ctx, err, "Failed to restore table draft", slog.String("workspace_id", workspaceID))
		}
		slot.buf = buf
	})
	return slot.buf
}

// Board returns the kanban board of workspaceID, creating it on first use.
func (s *Session) Board(workspaceID string) *KanbanBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	board, ok := s.boards[workspaceID]
	if !ok {
		board = NewKanbanBoard(workspaceID)
		s.boards[workspaceID] = board
	}
	return board
}

// DropWorkspace forgets the buffer and board of a deleted workspace.
func (s *Session) DropWorkspace(ctx context.Context, workspaceID string) {
	s.mu.Lock()
	slot := s.buffers[workspaceID]
	delete(s.buffers, workspaceID)
	delete(s.boards, workspaceID)
	s.mu.Unlock()
	if slot != nil {
		s.open(ctx, slot, workspaceID).DiscardDraft(ctx)
	}
}

func (s *Session) teardown(ctx context.Context) {
	s.Store.Teardown()
	s.mu.Lock()
	buffers := s.buffers
	s.buffers = make(map[string]*bufferSlot)
	s.boards = make(map[string]*KanbanBoard)
	s.mu.Unlock()
	for workspaceID, slot := range buffers {
		s.open(ctx, slot, workspaceID).DiscardDraft(ctx)
	}
}

// SessionRegistry hands out one Session per user.
type SessionRegistry struct {
	BaseService
	workspaces    portsrepo.WorkspaceReader
	tables        portsrepo.TableRepository
	drafts        portsrepo.DraftRepository
	listCache     portsrepo.WorkspaceListCache
	maxWorkspaces int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry creates an empty registry. drafts and listCache may be nil.
func NewSessionRegistry(workspaces portsrepo.WorkspaceReader, tables portsrepo.TableRepository, drafts portsrepo.DraftRepository, listCache portsrepo.WorkspaceListCache, maxWorkspaces int) *SessionRegistry {
	return &SessionRegistry{
		workspaces:    workspaces,
		tables:        tables,
		drafts:        drafts,
		listCache:     listCache,
		maxWorkspaces: maxWorkspaces,
		sessions:      make(map[string]*Session),
	}
}

// Session returns the user's session, creating it on first use.
func (r *SessionRegistry) Session(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s := &Session{
		Store:   NewSessionStore(userID, r.workspaces, r.listCache, r.maxWorkspaces),
		userID:  userID,
		tables:  r.tables,
		drafts:  r.drafts,
		buffers: make(map[string]*bufferSlot),
		boards:  make(map[string]*KanbanBoard),
	}
	r.sessions[userID] = s
	return s
}

// Teardown drops the user's session, persisted drafts included.
func (r *SessionRegistry) Teardown(ctx context.Context, userID string) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mu.Unlock()
	if !ok {
		return
	}
	s.teardown(ctx)
	s.Store.InvalidateLists(ctx)
	r.LogInfo(ctx, "Session torn down", slog.String("user_id", userID))
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

const listFlightKey = "workspaces"

// SessionStore holds the workspace selection of one user: the selected
// workspace, the user's role in it and the capabilities that role grants.
// Detail loads are tagged with a generation so only the latest applies.
type SessionStore struct {
	BaseService
	userID        string
	repo          portsrepo.WorkspaceReader
	listCache     portsrepo.WorkspaceListCache
	maxWorkspaces int
	flight        singleflight.Group

	mu         sync.Mutex
	listStatus portssvc.SessionStatus
	listing    bool
	listEpoch  uint64
	owned      []domain.Workspace
	shared     []domain.Workspace
	loadErr    error

	generation uint64
	selecting  bool
	selected   *domain.Workspace
	roles      domain.RoleIndex
}

// NewSessionStore creates an uninitialized store for userID. listCache may be nil.
func NewSessionStore(userID string, repo portsrepo.WorkspaceReader, listCache portsrepo.WorkspaceListCache, maxWorkspaces int) *SessionStore {
	return &SessionStore{
		userID:        userID,
		repo:          repo,
		listCache:     listCache,
		maxWorkspaces: maxWorkspaces,
		listStatus:    portssvc.SessionUninitialized,
	}
}

// UserID returns the owner of the store.
func (s *SessionStore) UserID() string { return s.userID }

// ListsLoaded reports whether the owned/shared lists have been fetched successfully.
func (s *SessionStore) ListsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listStatus == portssvc.SessionReady
}

// LoadWorkspaces fetches the owned and shared lists. Concurrent callers share
// one backend call. On failure the lists are emptied and the cause is kept, so
// a failed load stays distinguishable from having no workspaces.
func (s *SessionStore) LoadWorkspaces(ctx context.Context) (*domain.WorkspaceList, error) {
	s.mu.Lock()
	s.listing = true
	epoch := s.listEpoch
	s.mu.Unlock()

	v, err, _ := s.flight.Do(listFlightKey, func() (any, error) {
		return s.fetchList(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.listEpoch {
		// torn down while loading
		return nil, fmt.Errorf("workspace list: %w", apperrors.ErrStaleResponse)
	}
	s.listing = false
	if err != nil {
		s.owned, s.shared = []domain.Workspace{}, []domain.Workspace{}
		s.loadErr = err
		s.listStatus = portssvc.SessionLoadFailed
		return nil, err
	}
	list := v.(*domain.WorkspaceList)
	s.owned = cloneWorkspaces(list.Owned)
	s.shared = cloneWorkspaces(list.Shared)
	s.loadErr = nil
	s.listStatus = portssvc.SessionReady
	return &domain.WorkspaceList{Owned: cloneWorkspaces(s.owned), Shared: cloneWorkspaces(s.shared)}, nil
}

func (s *SessionStore) fetchList(ctx context.Context) (*domain.WorkspaceList, error) {
	if s.listCache != nil {
		list, err := s.listCache.GetWorkspaceList(ctx, s.userID)
		if err == nil {
			s.LogDebug(ctx, "Workspace list served from cache", slog.String("user_id", s.userID))
			return list, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Workspace list cache read failed", slog.String("user_id", s.userID))
		}
	}

	list, err := s.repo.ListWorkspaces(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load workspaces", slog.String("user_id", s.userID))
		return nil, err
	}

	if s.listCache != nil {
		if cerr := s.listCache.SetWorkspaceList(ctx, s.userID, list); cerr != nil {
			s.LogError(ctx, cerr, "Workspace list cache write failed", slog.String("user_id", s.userID))
		}
	}
	return list, nil
}

// InvalidateLists drops the cached lists after a workspace or membership change.
func (s *SessionStore) InvalidateLists(ctx context.Context) {
	s.flight.Forget(listFlightKey)
	if s.listCache == nil {
		return
	}
	if err := s.listCache.InvalidateWorkspaceList(ctx, s.userID); err != nil {
		s.LogError(ctx, err, "Workspace list cache invalidation failed", slog.String("user_id", s.userID))
	}
}

// SelectWorkspace loads workspaceID and makes it the selection. When another
// selection (or ClearSelection/Teardown) happened while the load was in
// flight, the response is discarded and ErrStaleResponse returned.
func (s *SessionStore) SelectWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	if workspaceID == "" {
		return nil, apperrors.NewValidationError("workspace id is required")
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.selecting = true
	s.mu.Unlock()

	ws, err := s.repo.GetWorkspace(ctx, workspaceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.LogDebug(ctx, "Discarding stale workspace response",
			slog.String("workspace_id", workspaceID),
			slog.Uint64("generation", gen),
			slog.Uint64("current_generation", s.generation))
		return nil, fmt.Errorf("workspace %s: %w", workspaceID, apperrors.ErrStaleResponse)
	}
	s.selecting = false
	if err != nil {
		s.selected = nil
		s.roles = domain.RoleIndex{}
		return nil, err
	}
	if ws.WorkspaceID == "" {
		ws.WorkspaceID = workspaceID
	}
	s.selected = ws.Clone()
	s.roles = domain.NewRoleIndex(s.selected)
	return ws.Clone(), nil
}

// EnsureSelected makes the route's workspace the selection. It is a no-op
// when that workspace is already selected and settled. An empty routeID
// clears the selection and returns (nil, nil).
func (s *SessionStore) EnsureSelected(ctx context.Context, routeID string) (*domain.Workspace, error) {
	if routeID == "" {
		s.ClearSelection()
		return nil, nil
	}
	s.mu.Lock()
	if s.selected != nil && s.selected.WorkspaceID == routeID && !s.selecting {
		ws := s.selected.Clone()
		s.mu.Unlock()
		return ws, nil
	}
	s.mu.Unlock()
	return s.SelectWorkspace(ctx, routeID)
}

// ClearSelection leaves the store with no workspace selected and discards
// any in-flight detail load.
func (s *SessionStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.selecting = false
	s.selected = nil
	s.roles = domain.RoleIndex{}
}

// ApplyWorkspace merges a backend copy of a workspace into the store. Fields
// the backend omitted (members, table) keep their current value. It returns
// false when ws is not the selected workspace; list entries are refreshed
// either way.
func (s *SessionStore) ApplyWorkspace(ws *domain.Workspace) bool {
	if ws == nil || ws.WorkspaceID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	replaceListed(s.owned, ws)
	replaceListed(s.shared, ws)

	if s.selected == nil || s.selected.WorkspaceID != ws.WorkspaceID {
		return false
	}
	merged := ws.Clone()
	if merged.Members == nil {
		merged.Members = append([]domain.Member(nil), s.selected.Members...)
	}
	if merged.Table == nil {
		merged.Table = s.selected.Table.Clone()
	}
	if merged.Owner.ID == "" {
		merged.Owner = s.selected.Owner
	}
	s.selected = merged
	s.roles = domain.NewRoleIndex(s.selected)
	return true
}

// ApplyTable replaces the table of the selected workspace.
func (s *SessionStore) ApplyTable(workspaceID string, table *domain.Table) bool {
	if table == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil || s.selected.WorkspaceID != workspaceID {
		return false
	}
	s.selected.Table = table.Clone()
	return true
}

// ApplyMembers replaces the member list of the selected workspace and
// rebuilds the role index.
func (s *SessionStore) ApplyMembers(workspaceID string, members []domain.Member) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil || s.selected.WorkspaceID != workspaceID {
		return false
	}
	s.selected.Members = append([]domain.Member(nil), members...)
	s.roles = domain.NewRoleIndex(s.selected)
	return true
}

// AddOwned records a freshly created workspace.
func (s *SessionStore) AddOwned(ws *domain.Workspace) {
	if ws == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = append(s.owned, *ws.Clone())
}

// AddShared records a workspace joined through an invitation.
func (s *SessionStore) AddShared(ws *domain.Workspace) {
	if ws == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared = append(s.shared, *ws.Clone())
}

// RemoveWorkspace forgets a deleted workspace and clears it if selected.
func (s *SessionStore) RemoveWorkspace(workspaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned = withoutWorkspace(s.owned, workspaceID)
	s.shared = withoutWorkspace(s.shared, workspaceID)
	if s.selected != nil && s.selected.WorkspaceID == workspaceID {
		s.generation++
		s.selected = nil
		s.roles = domain.RoleIndex{}
	}
}

// Role returns the user's role in the selected workspace.
func (s *SessionStore) Role() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleLocked()
}

func (s *SessionStore) roleLocked() domain.Role {
	if s.selected == nil {
		return domain.RoleNone
	}
	return s.roles.RoleOf(s.userID)
}

// Permissions returns the capabilities of the user in the selected workspace.
func (s *SessionStore) Permissions() permissions.Capabilities {
	return permissions.CapabilitiesFor(s.Role())
}

// CanCreateWorkspace reports whether the owned count is below the ceiling.
func (s *SessionStore) CanCreateWorkspace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canCreateLocked()
}

func (s *SessionStore) canCreateLocked() bool {
	return len(s.owned) < s.maxWorkspaces
}

// Teardown drops every piece of session state.
func (s *SessionStore) Teardown() {
	s.flight.Forget(listFlightKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.listEpoch++
	s.listing = false
	s.selecting = false
	s.selected = nil
	s.roles = domain.RoleIndex{}
	s.owned, s.shared = nil, nil
	s.loadErr = nil
	s.listStatus = portssvc.SessionUninitialized
}

// Snapshot returns a copy of the current state.
func (s *SessionStore) Snapshot() *portssvc.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := s.roleLocked()
	snap := &portssvc.SessionSnapshot{
		Status:             s.statusLocked(),
		SelectedWorkspace:  s.selected.Clone(),
		Role:               role,
		Permissions:        permissions.CapabilitiesFor(role),
		Owned:              cloneWorkspaces(s.owned),
		Shared:             cloneWorkspaces(s.shared),
		CanCreateWorkspace: s.canCreateLocked(),
	}
	if snap.Owned == nil {
		snap.Owned = []domain.Workspace{}
	}
	if snap.Shared == nil {
		snap.Shared = []domain.Workspace{}
	}
	if s.selected != nil {
		snap.RoutePrefix, _ = s.selected.MainFocus.RoutePrefix()
	}
	if s.loadErr != nil {
		snap.LoadError = s.loadErr.Error()
	}
	return snap
}

func (s *SessionStore) statusLocked() portssvc.SessionStatus {
	switch {
	case s.listing || s.selecting:
		return portssvc.SessionLoading
	case s.listStatus == portssvc.SessionLoadFailed:
		return portssvc.SessionLoadFailed
	case s.listStatus == portssvc.SessionReady || s.selected != nil:
		return portssvc.SessionReady
	default:
		return portssvc.SessionUninitialized
	}
}

func cloneWorkspaces(in []domain.Workspace) []domain.Workspace {
	if in == nil {
		return nil
	}
	out := make([]domain.Workspace, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}

func replaceListed(list []domain.Workspace, ws *domain.Workspace) {
	for i := range list {
		if list[i].WorkspaceID != ws.WorkspaceID {
			continue
		}
		if ws.Name != "" {
			list[i].Name = ws.Name
		}
		list[i].Description = ws.Description
		if ws.MainFocus != "" {
			list[i].MainFocus = ws.MainFocus
		}
		if ws.Members != nil {
			list[i].Members = append([]domain.Member(nil), ws.Members...)
		}
	}
}

func withoutWorkspace(list []domain.Workspace, workspaceID string) []domain.Workspace {
	out := list[:0]
	for _, ws := range list {
		if ws.WorkspaceID != workspaceID {
			out = append(out, ws)
		}
	}
	return out
}

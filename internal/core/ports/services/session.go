package services

import (
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
)

// SessionStatus is the load state of a user's workspace session.
type SessionStatus string

const (
	SessionUninitialized SessionStatus = "uninitialized"
	SessionLoading       SessionStatus = "loading"
	SessionReady         SessionStatus = "ready"
	SessionLoadFailed    SessionStatus = "load_failed"
)

// SessionSnapshot is a point-in-time copy of a session store.
type SessionSnapshot struct {
	Status             SessionStatus            `json:"status"`
	SelectedWorkspace  *domain.Workspace        `json:"selectedWorkspace"`
	Role               domain.Role              `json:"role"`
	Permissions        permissions.Capabilities `json:"permissions"`
	RoutePrefix        string                   `json:"routePrefix,omitempty"`
	Owned              []domain.Workspace       `json:"owned"`
	Shared             []domain.Workspace       `json:"shared"`
	LoadError          string                   `json:"loadError,omitempty"`
	CanCreateWorkspace bool                     `json:"canCreateWorkspace"`
}

// HasSelection reports whether a workspace is selected.
func (s *SessionSnapshot) HasSelection() bool {
	return s != nil && s.SelectedWorkspace != nil
}

// RouteResolution is the dashboard route of a workspace.
type RouteResolution struct {
	WorkspaceID string           `json:"workspaceId"`
	MainFocus   domain.MainFocus `json:"mainFocus"`
	Routable    bool             `json:"routable"`
	Prefix      string           `json:"prefix,omitempty"`
	Path        string           `json:"path,omitempty"`
}

// FlushResult is the outcome of a successful table sync.
type FlushResult struct {
	// Sent is the change set that was committed; empty when nothing was pending.
	Sent  domain.ChangeSet `json:"sent"`
	Table *domain.Table    `json:"table,omitempty"`
}

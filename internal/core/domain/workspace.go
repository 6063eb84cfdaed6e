package domain

import "time"

// MainFocus selects the feature set and routing prefix of a workspace.
type MainFocus string

const (
	FocusHumanResources    MainFocus = "human-resources"
	FocusProjectManagement MainFocus = "project-management"
	FocusProductManagement MainFocus = "product-management" // legacy alias of project-management
)

// Route prefixes used by the dashboard views.
const (
	RoutePrefixHR = "hr"
	RoutePrefixPM = "pm"
)

// RoutePrefix returns the dashboard routing prefix for the focus.
// The second value is false when the focus is not recognised.
func (f MainFocus) RoutePrefix() (string, bool) {
	switch f {
	case FocusHumanResources:
		return RoutePrefixHR, true
	case FocusProjectManagement, FocusProductManagement:
		return RoutePrefixPM, true
	default:
		return "", false
	}
}

// IsProjectFocus reports whether the workspace uses the PM feature set (kanban, issues).
func (f MainFocus) IsProjectFocus() bool {
	prefix, _ := f.RoutePrefix()
	return prefix == RoutePrefixPM
}

// Role is a member's privilege tag within one workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	RoleNone   Role = ""
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// Member is a (user, role) pair inside a workspace.
type Member struct {
	User     UserRef    `json:"user"`
	Role     Role       `json:"role"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

// Workspace is the top-level tenant: a recruiting pipeline or a project board.
type Workspace struct {
	WorkspaceID string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       UserRef   `json:"owner"`
	MainFocus   MainFocus `json:"mainFocus"`
	Members     []Member  `json:"members"`
	Table       *Table    `json:"table,omitempty"`
	Timestamps
}

// SharedMemberCount counts members that are not the owner.
func (w *Workspace) SharedMemberCount() int {
	count := 0
	for _, m := range w.Members {
		if m.User.ID == w.Owner.ID || m.Role == RoleOwner {
			continue
		}
		count++
	}
	return count
}

// WorkspaceList is the backend's answer to GET /workspaces.
type WorkspaceList struct {
	Owned  []Workspace `json:"owned"`
	Shared []Workspace `json:"shared"`
}

// CreateWorkspaceParams holds the fields sent when creating a workspace.
type CreateWorkspaceParams struct {
	Name        string    `json:"name" validate:"required,min=3,max=64"`
	Description string    `json:"description,omitempty" validate:"max=500"`
	MainFocus   MainFocus `json:"mainFocus" validate:"required"`
}

// UpdateWorkspaceParams holds the mutable fields of a workspace. mainFocus is deliberately absent.
type UpdateWorkspaceParams struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// InviteParams is the body of POST /workspaces/:id/invite.
type InviteParams struct {
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required,oneof=admin editor viewer"`
}

// InvitationStatus tracks the lifecycle of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a pending offer to join a workspace.
type Invitation struct {
	InvitationID string           `json:"_id"`
	Workspace    UserRefWorkspace `json:"workspace"`
	Email        string           `json:"email"`
	Role         Role             `json:"role"`
	Status       InvitationStatus `json:"status"`
	InvitedBy    UserRef          `json:"invitedBy"`
	ExpiresAt    *time.Time       `json:"expiresAt,omitempty"`
}

// UserRefWorkspace is the minimal workspace projection embedded in an invitation.
type UserRefWorkspace struct {
	WorkspaceID string    `json:"_id"`
	Name        string    `json:"name"`
	MainFocus   MainFocus `json:"mainFocus,omitempty"`
}

// Clone returns a copy that shares no slices or row data with w.
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	out := *w
	out.Members = append([]Member(nil), w.Members...)
	out.Table = w.Table.Clone()
	return &out
}

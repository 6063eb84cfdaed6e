// Package permissions maps a workspace role to the capabilities the dashboard gates on.
package permissions

import "github.com/SscSPs/workspace_dashboard/internal/core/domain"

// Capabilities is the set of UI/action gates derived from a role.
type Capabilities struct {
	CanManageWorkspace bool `json:"canManageWorkspace"`
	CanDeleteWorkspace bool `json:"canDeleteWorkspace"`
	CanManageMembers   bool `json:"canManageMembers"`
	CanEditContent     bool `json:"canEditContent"`
}

// Rank orders roles by privilege: owner > admin > editor > viewer.
// Unknown roles rank 0, below viewer.
func Rank(role domain.Role) int {
	switch role {
	case domain.RoleOwner:
		return 4
	case domain.RoleAdmin:
		return 3
	case domain.RoleEditor:
		return 2
	case domain.RoleViewer:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether role meets or exceeds required.
func AtLeast(role, required domain.Role) bool {
	r := Rank(role)
	return r > 0 && r >= Rank(required)
}

// CapabilitiesFor returns the capabilities of role. Missing or unknown roles get none.
func CapabilitiesFor(role domain.Role) Capabilities {
	return Capabilities{
		CanManageWorkspace: AtLeast(role, domain.RoleEditor),
		CanDeleteWorkspace: AtLeast(role, domain.RoleOwner),
		CanManageMembers:   AtLeast(role, domain.RoleAdmin),
		CanEditContent:     AtLeast(role, domain.RoleEditor),
	}
}

// Action names a gated operation.
type Action string

const (
	ActionView            Action = "view"
	ActionManageWorkspace Action = "manage_workspace"
	ActionDeleteWorkspace Action = "delete_workspace"
	ActionManageMembers   Action = "manage_members"
	ActionEditContent     Action = "edit_content"
)

// Allows reports whether the capabilities permit a. ActionView is always allowed;
// membership is checked separately.
func (c Capabilities) Allows(a Action) bool {
	switch a {
	case ActionView:
		return true
	case ActionManageWorkspace:
		return c.CanManageWorkspace
	case ActionDeleteWorkspace:
		return c.CanDeleteWorkspace
	case ActionManageMembers:
		return c.CanManageMembers
	case ActionEditContent:
		return c.CanEditContent
	default:
		return false
	}
}

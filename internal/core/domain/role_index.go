package domain

// RoleIndex maps user ids to their role in one workspace.
// Build it once per membership-list change and look roles up by id.
type RoleIndex struct {
	ownerID string
	roles   map[string]Role
}

// NewRoleIndex indexes the workspace members. The owning-user reference always
// resolves to RoleOwner; any other member tagged owner is demoted to admin so
// exactly one user resolves to owner. Members with unknown roles are skipped.
func NewRoleIndex(ws *Workspace) RoleIndex {
	idx := RoleIndex{roles: make(map[string]Role)}
	if ws == nil {
		return idx
	}

	idx.ownerID = ws.Owner.ID
	if idx.ownerID == "" {
		// no owner reference: adopt the first member tagged owner
		for _, m := range ws.Members {
			if m.Role == RoleOwner && m.User.ID != "" {
				idx.ownerID = m.User.ID
				break
			}
		}
	}

	for _, m := range ws.Members {
		if m.User.ID == "" || !m.Role.Valid() {
			continue
		}
		role := m.Role
		if role == RoleOwner && m.User.ID != idx.ownerID {
			role = RoleAdmin
		}
		idx.roles[m.User.ID] = role
	}
	if idx.ownerID != "" {
		idx.roles[idx.ownerID] = RoleOwner
	}
	return idx
}

// RoleOf returns the user's role, or RoleNone when the user is not a member.
func (idx RoleIndex) RoleOf(userID string) Role {
	if userID == "" {
		return RoleNone
	}
	return idx.roles[userID]
}

// OwnerID returns the id that resolves to RoleOwner.
func (idx RoleIndex) OwnerID() string {
	return idx.ownerID
}

// Len returns the number of indexed users, owner included.
func (idx RoleIndex) Len() int {
	return len(idx.roles)
}

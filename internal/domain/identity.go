package domain

// Role names. Stored as group names; a user's effective role is the name of
// the first group in their membership set.
const (
	RoleAdmin     = "Admin"
	RoleOrganizer = "Organizer"
	RoleUser      = "User"
)

// NoGroupAssigned is the displayed role for users without any group.
const NoGroupAssigned = "No Group Assigned"

// Identity is the authenticated caller passed explicitly into guards and
// operations. The zero value is the anonymous identity.
type Identity struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity belongs to no authenticated user.
func (i Identity) IsAnonymous() bool {
	return i.ID == ""
}

// HasRole reports whether the identity's group set contains the named role.
// Anonymous identities fail every role check; HasRole never panics.
func (i Identity) HasRole(role string) bool {
	if i.IsAnonymous() {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the Admin role.
func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// IsOrganizer reports whether the identity holds the Organizer role.
func (i Identity) IsOrganizer() bool {
	return i.HasRole(RoleOrganizer)
}

// IsUser reports whether the identity holds the User role.
func (i Identity) IsUser() bool {
	return i.HasRole(RoleUser)
}

// IsOrganizerOrAdmin reports whether the identity's group set intersects
// {Organizer, Admin}.
func (i Identity) IsOrganizerOrAdmin() bool {
	return i.IsOrganizer() || i.IsAdmin()
}

// IsAuthenticated reports whether the identity belongs to a signed-in user,
// regardless of role.
func (i Identity) IsAuthenticated() bool {
	return !i.IsAnonymous()
}

// EffectiveRole returns the identity's single display role: the first role in
// the membership set. Multi-group users are a data-integrity concern; callers
// that build identities log a warning for them, but authorization predicates
// always check the full set so ordering never affects access decisions.
func (i Identity) EffectiveRole() string {
	if len(i.Roles) == 0 {
		return NoGroupAssigned
	}
	return i.Roles[0]
}

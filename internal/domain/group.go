package domain

import "context"

// Group is a named role container ("Admin", "Organizer", "User").
// swagger:model Group
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupWithMemberCount is a group annotated with how many users belong to it.
type GroupWithMemberCount struct {
	Group
	MemberCount int `json:"member_count"`
}

// GroupRepository defines storage operations for groups and memberships.
// Delete must refuse to remove a group that still has members and return
// ErrConflict instead, leaving the group and its members unchanged.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context) ([]*GroupWithMemberCount, error)
	ListByUserID(ctx context.Context, userID string) ([]*Group, error)
	AssignUser(ctx context.Context, userID, groupID string) error
	ReplaceUserGroups(ctx context.Context, userID string, groupIDs []string) error
	Delete(ctx context.Context, id string) error
}

// GroupService defines admin group management.
type GroupService interface {
	Create(ctx context.Context, name string) (*Group, error)
	List(ctx context.Context) ([]*GroupWithMemberCount, error)
	Delete(ctx context.Context, id string) error
}

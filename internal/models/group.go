package models

// Role is a member's permission level inside a group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// rank orders roles so that owner > editor > viewer.
var rank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// AtLeast reports whether r grants at least the permissions of min.
// Unknown roles grant nothing.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && rank[r] >= rank[min]
}

// Group owns tables and carries the memberships that gate access to them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Thursday Night Poker").
	Name string

	// Description is optional free text.
	Description string

	// Members is populated by GetGroup; list queries leave it empty.
	Members []Membership

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Membership is the join between a user and a group.
// Exactly one row per (group, user); the role is a scalar.
type Membership struct {
	GroupID string
	UserID  string
	Role    Role

	// DisplayName and Email are filled from the users table on reads.
	DisplayName string
	Email       string

	// JoinedAt is the Unix timestamp when the user joined the group.
	JoinedAt int64
}

// PlayerAlias links a player name used at the group's tables to a registered user.
// Aliases only feed statistics; ledger math never reads them.
type PlayerAlias struct {
	GroupID    string
	PlayerName string
	UserID     string
	CreatedAt  int64
}

// Package access resolves a user's effective role in a group and decides
// whether an operation is allowed. Every service consults the same Resolver
// instead of checking membership ad hoc.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

var (
	// ErrForbidden is returned when the actor is a member but lacks the rank.
	ErrForbidden = errors.New("permission denied")

	// ErrNotVisible is returned when the actor is not a member of the group.
	// Callers report it exactly like a missing resource.
	ErrNotVisible = errors.New("not a member of this group")
)

// Actor is the resolved identity of a request.
type Actor struct {
	UserID string
	Admin  bool // platform administrator
}

// Operation is a class of request gated by a minimum role.
type Operation int

const (
	// OpView reads tables, players, balances, rotation and stats.
	OpView Operation = iota
	// OpPlay seats players and records buy-ins, cash-outs and reactivations.
	OpPlay
	// OpEditTable creates, renames, updates and opens/closes tables.
	OpEditTable
	// OpManageGroup edits or deletes the group, its members, aliases and tables.
	OpManageGroup
)

var required = map[Operation]models.Role{
	OpView:        models.RoleViewer,
	OpPlay:        models.RoleEditor,
	OpEditTable:   models.RoleEditor,
	OpManageGroup: models.RoleOwner,
}

func (op Operation) String() string {
	switch op {
	case OpView:
		return "view"
	case OpPlay:
		return "play"
	case OpEditTable:
		return "edit table"
	case OpManageGroup:
		return "manage group"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// MembershipReader looks up groups and single memberships.
// Both return storage.ErrNotFound when the row does not exist.
type MembershipReader interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error)
}

// Resolver computes effective roles from group memberships.
type Resolver struct {
	members MembershipReader
}

// NewResolver creates a Resolver backed by members.
func NewResolver(members MembershipReader) *Resolver {
	return &Resolver{members: members}
}

// Role returns the actor's effective role in groupID.
// Admins are treated as owners of every existing group.
func (r *Resolver) Role(ctx context.Context, actor Actor, groupID string) (models.Role, error) {
	if actor.Admin {
		_, err := r.members.GetGroup(ctx, groupID)
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNotVisible
		}
		if err != nil {
			return "", fmt.Errorf("failed to resolve role: %w", err)
		}
		return models.RoleOwner, nil
	}
	if actor.UserID == "" {
		return "", ErrNotVisible
	}

	m, err := r.members.GetMembership(ctx, groupID, actor.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotVisible
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve role: %w", err)
	}
	return m.Role, nil
}

// Require returns nil if the actor may perform op on resources of groupID.
func (r *Resolver) Require(ctx context.Context, actor Actor, groupID string, op Operation) error {
	role, err := r.Role(ctx, actor, groupID)
	if err != nil {
		return err
	}
	if !role.AtLeast(required[op]) {
		return fmt.Errorf("%w: %s requires %s, have %s", ErrForbidden, op, required[op], role)
	}
	return nil
}

// RequireMove checks moving a table from one group to another: the actor
// must own both groups. A destination the actor cannot see is reported as
// ErrForbidden so that group existence does not leak.
func (r *Resolver) RequireMove(ctx context.Context, actor Actor, fromGroupID, toGroupID string) error {
	if actor.Admin {
		return nil
	}
	for _, groupID := range []string{fromGroupID, toGroupID} {
		role, err := r.Role(ctx, actor, groupID)
		if errors.Is(err, ErrNotVisible) {
			return fmt.Errorf("%w: moving tables requires owning both groups", ErrForbidden)
		}
		if err != nil {
			return err
		}
		if role != models.RoleOwner {
			return fmt.Errorf("%w: moving tables requires owning both groups", ErrForbidden)
		}
	}
	return nil
}

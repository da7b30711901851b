package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/auth"
	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/notify"
	"github.com/mmynk/pokerledger/internal/storage"
	api "github.com/mmynk/pokerledger/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store    storage.Store
	resolver *access.Resolver
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, notifier notify.Notifier, logger *slog.Logger) *GroupService {
	return &GroupService{
		store:    store,
		resolver: access.NewResolver(store),
		notifier: notifier,
		logger:   logger,
	}
}

// groupTx runs fn in one transaction with the group row locked, after
// checking that actor may perform op in the group.
func groupTx(ctx context.Context, store storage.Store, actor access.Actor, groupID string, op access.Operation, fn func(tx storage.Tx, group *models.Group) error) error {
	return store.InTx(ctx, func(tx storage.Tx) error {
		if err := access.NewResolver(tx).Require(ctx, actor, groupID, op); err != nil {
			return err
		}
		group, err := tx.LockGroup(ctx, groupID)
		if err != nil {
			return err
		}
		return fn(tx, group)
	})
}

// ensureOwnerRemains fails with errLastOwner when m is the group's only owner.
// The group row must be locked by the caller.
func ensureOwnerRemains(ctx context.Context, tx storage.Tx, m *models.Membership) error {
	if m.Role != models.RoleOwner {
		return nil
	}
	members, err := tx.ListMemberships(ctx, m.GroupID)
	if err != nil {
		return err
	}
	owners := 0
	for _, other := range members {
		if other.Role == models.RoleOwner {
			owners++
		}
	}
	if owners <= 1 {
		return errLastOwner
	}
	return nil
}

// parseRole validates a role name. Empty defaults to viewer.
func parseRole(s string) (models.Role, error) {
	if s == "" {
		return models.RoleViewer, nil
	}
	role := models.Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", invalidArgument("role must be owner, editor or viewer")
	}
	return role, nil
}

func (s *GroupService) notify(ctx context.Context, kind notify.Kind, group *models.Group, subject string) {
	err := s.notifier.Notify(ctx, notify.Event{
		Kind:      kind,
		GroupID:   group.ID,
		GroupName: group.Name,
		Subject:   subject,
	})
	if err != nil {
		s.logger.Warn("notification failed", "group_id", group.ID, "kind", kind, "error", err)
	}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", actor.UserID)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group, actor.UserID); err != nil {
		return nil, connectError(s.logger, "CreateGroup", err)
	}

	// Re-read to pick up the owner's display name
	created, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, connectError(s.logger, "CreateGroup", err)
	}

	s.logger.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.CreateGroupResponse{
		Group: toAPIGroup(created),
	}), nil
}

// GetGroup retrieves a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Require(ctx, actor, req.Msg.GroupId, access.OpView); err != nil {
		return nil, connectError(s.logger, "GetGroup", err)
	}
	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, connectError(s.logger, "GetGroup", err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group: toAPIGroup(group),
	}), nil
}

// ListGroups returns the caller's groups, or every group for an admin.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	var groups []*models.Group
	if actor.Admin {
		groups, err = s.store.ListGroups(ctx)
	} else {
		groups, err = s.store.ListGroupsForUser(ctx, actor.UserID)
	}
	if err != nil {
		return nil, connectError(s.logger, "ListGroups", err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	s.logger.Debug("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group or changes its description.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateGroup request received", "group_id", req.Msg.GroupId, "name", req.Msg.GetName())

	var updated *models.Group
	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, group *models.Group) error {
		if req.Msg.Name != nil {
			name := strings.TrimSpace(*req.Msg.Name)
			if name == "" {
				return invalidArgument("group name is required")
			}
			group.Name = name
		}
		if req.Msg.Description != nil {
			group.Description = strings.TrimSpace(*req.Msg.Description)
		}
		if err := tx.UpdateGroup(ctx, group); err != nil {
			return err
		}
		var err error
		updated, err = tx.GetGroup(ctx, group.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "UpdateGroup", err)
	}

	s.logger.Info("Group updated", "group_id", updated.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{
		Group: toAPIGroup(updated),
	}), nil
}

// DeleteGroup deletes a group together with its tables.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, group *models.Group) error {
		return tx.DeleteGroup(ctx, group.ID)
	})
	if err != nil {
		return nil, connectError(s.logger, "DeleteGroup", err)
	}

	s.logger.Info("Group deleted", "group_id", req.Msg.GroupId)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds a registered user, looked up by email, to the group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AddMember request received", "group_id", req.Msg.GroupId, "role", req.Msg.Role)

	role, err := parseRole(req.Msg.Role)
	if err != nil {
		return nil, err
	}

	var (
		member *models.Membership
		group  *models.Group
	)
	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, g *models.Group) error {
		user, err := tx.GetUserByEmail(ctx, auth.NormalizeEmail(req.Msg.Email))
		if err != nil {
			return err
		}
		_, err = tx.GetMembership(ctx, g.ID, user.ID)
		switch {
		case err == nil:
			return fmt.Errorf("user %s in group %s: %w", user.ID, g.ID, storage.ErrConflict)
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}
		if err := tx.PutMembership(ctx, &models.Membership{GroupID: g.ID, UserID: user.ID, Role: role}); err != nil {
			return err
		}
		group = g
		member, err = tx.GetMembership(ctx, g.ID, user.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "AddMember", err)
	}

	s.logger.Info("Member added", "group_id", group.ID, "user_id", member.UserID, "role", member.Role)
	s.notify(ctx, notify.MemberJoined, group, member.DisplayName)
	return connect.NewResponse(&api.AddMemberResponse{
		Member: toAPIMember(member),
	}), nil
}

// UpdateMemberRole changes a member's role. The last owner cannot be demoted.
func (s *GroupService) UpdateMemberRole(ctx context.Context, req *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateMemberRole request received",
		"group_id", req.Msg.GroupId,
		"user_id", req.Msg.UserId,
		"role", req.Msg.Role,
	)

	if req.Msg.Role == "" {
		return nil, invalidArgument("role is required")
	}
	role, err := parseRole(req.Msg.Role)
	if err != nil {
		return nil, err
	}

	var member *models.Membership
	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, group *models.Group) error {
		m, err := tx.GetMembership(ctx, group.ID, req.Msg.UserId)
		if err != nil {
			return err
		}
		if role != models.RoleOwner {
			if err := ensureOwnerRemains(ctx, tx, m); err != nil {
				return err
			}
		}
		m.Role = role
		if err := tx.PutMembership(ctx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, connectError(s.logger, "UpdateMemberRole", err)
	}

	return connect.NewResponse(&api.UpdateMemberRoleResponse{
		Member: toAPIMember(member),
	}), nil
}

// RemoveMember removes another member from the group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RemoveMember request received", "group_id", req.Msg.GroupId, "user_id", req.Msg.UserId)

	var (
		removed *models.Membership
		group   *models.Group
	)
	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, g *models.Group) error {
		m, err := tx.GetMembership(ctx, g.ID, req.Msg.UserId)
		if err != nil {
			return err
		}
		if err := ensureOwnerRemains(ctx, tx, m); err != nil {
			return err
		}
		removed, group = m, g
		return tx.DeleteMembership(ctx, g.ID, m.UserID)
	})
	if err != nil {
		return nil, connectError(s.logger, "RemoveMember", err)
	}

	s.notify(ctx, notify.MemberLeft, group, removed.DisplayName)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// LeaveGroup removes the caller from the group.
func (s *GroupService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("LeaveGroup request received", "group_id", req.Msg.GroupId, "user_id", actor.UserID)

	var (
		left  *models.Membership
		group *models.Group
	)
	err = s.store.InTx(ctx, func(tx storage.Tx) error {
		// Membership is the permission here, so admins are not special.
		m, err := tx.GetMembership(ctx, req.Msg.GroupId, actor.UserID)
		if err != nil {
			return err
		}
		g, err := tx.LockGroup(ctx, req.Msg.GroupId)
		if err != nil {
			return err
		}
		if err := ensureOwnerRemains(ctx, tx, m); err != nil {
			return err
		}
		left, group = m, g
		return tx.DeleteMembership(ctx, g.ID, actor.UserID)
	})
	if err != nil {
		return nil, connectError(s.logger, "LeaveGroup", err)
	}

	s.notify(ctx, notify.MemberLeft, group, left.DisplayName)
	return connect.NewResponse(&api.LeaveGroupResponse{}), nil
}

// closedTables loads a group's closed tables with their players.
func (s *GroupService) closedTables(ctx context.Context, groupID string) ([]ledger.ClosedTable, error) {
	tables, err := s.store.ListTables(ctx, groupID, models.TableFilter{ClosedOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]ledger.ClosedTable, 0, len(tables))
	for _, t := range tables {
		players, err := s.store.ListPlayers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.ClosedTable{Table: *t, Players: players})
	}
	return out, nil
}

// GetFoodRotation ranks the group's players by whose turn it is to order food.
func (s *GroupService) GetFoodRotation(ctx context.Context, req *connect.Request[api.GetFoodRotationRequest]) (*connect.Response[api.GetFoodRotationResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Require(ctx, actor, req.Msg.GroupId, access.OpView); err != nil {
		return nil, connectError(s.logger, "GetFoodRotation", err)
	}
	tables, err := s.closedTables(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, connectError(s.logger, "GetFoodRotation", err)
	}

	entries := ledger.RankFoodRotation(tables)
	s.logger.Debug("GetFoodRotation successful", "group_id", req.Msg.GroupId, "tables", len(tables), "players", len(entries))
	return connect.NewResponse(&api.GetFoodRotationResponse{
		Entries: toAPIRotation(entries),
	}), nil
}

// LinkPlayerAlias links a player name used at the group's tables to a member.
func (s *GroupService) LinkPlayerAlias(ctx context.Context, req *connect.Request[api.LinkPlayerAliasRequest]) (*connect.Response[api.LinkPlayerAliasResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("LinkPlayerAlias request received", "group_id", req.Msg.GroupId, "user_id", req.Msg.UserId)

	name := ledger.NormalizeName(req.Msg.PlayerName)
	if name == "" {
		return nil, connectError(s.logger, "LinkPlayerAlias", ledger.ErrInvalidName)
	}

	alias := &models.PlayerAlias{GroupID: req.Msg.GroupId, PlayerName: name, UserID: req.Msg.UserId}
	err = groupTx(ctx, s.store, actor, req.Msg.GroupId, access.OpManageGroup, func(tx storage.Tx, group *models.Group) error {
		if _, err := tx.GetMembership(ctx, group.ID, alias.UserID); err != nil {
			return err
		}
		return tx.PutAlias(ctx, alias)
	})
	if err != nil {
		return nil, connectError(s.logger, "LinkPlayerAlias", err)
	}

	return connect.NewResponse(&api.LinkPlayerAliasResponse{
		Alias: &api.PlayerAlias{
			GroupId:    alias.GroupID,
			PlayerName: alias.PlayerName,
			UserId:     alias.UserID,
		},
	}), nil
}

// GetUserStats aggregates a user's results over the group's closed tables,
// matching seats by the player names linked to the user.
func (s *GroupService) GetUserStats(ctx context.Context, req *connect.Request[api.GetUserStatsRequest]) (*connect.Response[api.GetUserStatsResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Require(ctx, actor, req.Msg.GroupId, access.OpView); err != nil {
		return nil, connectError(s.logger, "GetUserStats", err)
	}

	aliases, err := s.store.ListAliases(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, connectError(s.logger, "GetUserStats", err)
	}
	names := make(map[string]bool)
	for _, a := range aliases {
		if a.UserID == req.Msg.UserId {
			names[a.PlayerName] = true
		}
	}

	var stats ledger.PlayerStats
	if len(names) > 0 {
		tables, err := s.closedTables(ctx, req.Msg.GroupId)
		if err != nil {
			return nil, connectError(s.logger, "GetUserStats", err)
		}
		stats = ledger.SummarizeResults(tables, names)
	}

	return connect.NewResponse(&api.GetUserStatsResponse{
		Stats: toAPIStats(req.Msg.UserId, stats),
	}), nil
}

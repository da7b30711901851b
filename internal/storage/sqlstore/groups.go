package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

// CreateGroup inserts the group and its first owner atomically.
func (s *SQLStore) CreateGroup(ctx context.Context, group *models.Group, ownerID string) error {
	group.ID = uuid.New().String()
	group.CreatedAt = now()

	return s.InTx(ctx, func(tx storage.Tx) error {
		ts := tx.(*SQLStore)
		_, err := ts.exec(ctx,
			`INSERT INTO groups (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			group.ID, group.Name, group.Description, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		owner := &models.Membership{
			GroupID:  group.ID,
			UserID:   ownerID,
			Role:     models.RoleOwner,
			JoinedAt: group.CreatedAt,
		}
		if err := ts.PutMembership(ctx, owner); err != nil {
			return err
		}
		group.Members = []models.Membership{*owner}
		return nil
	})
}

// GetGroup retrieves a group with its members.
func (s *SQLStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.queryRow(ctx,
		`SELECT id, name, description, created_at FROM groups WHERE id = ?`, groupID,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// LockGroup retrieves a group without members and holds its row lock for
// the rest of the transaction.
func (s *SQLStore) LockGroup(ctx context.Context, groupID string) (*models.Group, error) {
	query := `SELECT id, name, description, created_at FROM groups WHERE id = ?`
	if s.inTx() && s.dialect == Postgres {
		query += ` FOR UPDATE`
	}
	rows, err := s.query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock group: %w", err)
	}
	groups, err := collect(rows, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return groups[0], nil
}

// ListGroups returns all groups, newest first.
func (s *SQLStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.query(ctx,
		`SELECT id, name, description, created_at FROM groups ORDER BY created_at DESC, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	groups, err := collect(rows, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to scan groups: %w", err)
	}
	return groups, nil
}

// ListGroupsForUser returns the groups userID is a member of, newest first.
func (s *SQLStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC, g.name
	`
	rows, err := s.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user: %w", err)
	}
	groups, err := collect(rows, scanGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to scan groups: %w", err)
	}
	return groups, nil
}

func scanGroup(rows *sql.Rows) (*models.Group, error) {
	g := &models.Group{}
	if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGroup updates a group's name and description.
func (s *SQLStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	res, err := s.exec(ctx,
		`UPDATE groups SET name = ?, description = ? WHERE id = ?`,
		group.Name, group.Description, group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return expectAffected(res, "group", group.ID)
}

// DeleteGroup deletes a group. Memberships, aliases and tables cascade.
func (s *SQLStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.exec(ctx, `DELETE FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return expectAffected(res, "group", groupID)
}

const membershipQuery = `
	SELECT m.group_id, m.user_id, m.role, u.display_name, u.email, m.joined_at
	FROM group_members m
	JOIN users u ON u.id = m.user_id
`

func scanMembership(rows *sql.Rows) (models.Membership, error) {
	var m models.Membership
	err := rows.Scan(&m.GroupID, &m.UserID, &m.Role, &m.DisplayName, &m.Email, &m.JoinedAt)
	return m, err
}

// GetMembership returns the user's membership in the group.
func (s *SQLStore) GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	rows, err := s.query(ctx, membershipQuery+` WHERE m.group_id = ? AND m.user_id = ?`, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	members, err := collect(rows, scanMembership)
	if err != nil {
		return nil, fmt.Errorf("failed to scan membership: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("membership %s/%s: %w", groupID, userID, storage.ErrNotFound)
	}
	return &members[0], nil
}

// ListMemberships returns a group's members ordered by join time.
func (s *SQLStore) ListMemberships(ctx context.Context, groupID string) ([]models.Membership, error) {
	rows, err := s.query(ctx, membershipQuery+` WHERE m.group_id = ? ORDER BY m.joined_at, u.display_name`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	members, err := collect(rows, scanMembership)
	if err != nil {
		return nil, fmt.Errorf("failed to scan memberships: %w", err)
	}
	return members, nil
}

// PutMembership inserts a membership or changes the role of an existing one.
func (s *SQLStore) PutMembership(ctx context.Context, m *models.Membership) error {
	if m.JoinedAt == 0 {
		m.JoinedAt = now()
	}
	query := `
		INSERT INTO group_members (group_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (group_id, user_id) DO UPDATE SET role = excluded.role
	`
	if _, err := s.exec(ctx, query, m.GroupID, m.UserID, string(m.Role), m.JoinedAt); err != nil {
		return fmt.Errorf("failed to put membership: %w", err)
	}
	return nil
}

// DeleteMembership removes a user from a group.
func (s *SQLStore) DeleteMembership(ctx context.Context, groupID, userID string) error {
	res, err := s.exec(ctx, `DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	return expectAffected(res, "membership", groupID+"/"+userID)
}

// PutAlias links a normalized player name to a user.
func (s *SQLStore) PutAlias(ctx context.Context, alias *models.PlayerAlias) error {
	if alias.CreatedAt == 0 {
		alias.CreatedAt = now()
	}
	query := `
		INSERT INTO player_aliases (group_id, player_name, user_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (group_id, player_name) DO UPDATE SET user_id = excluded.user_id, created_at = excluded.created_at
	`
	if _, err := s.exec(ctx, query, alias.GroupID, alias.PlayerName, alias.UserID, alias.CreatedAt); err != nil {
		return fmt.Errorf("failed to put alias: %w", err)
	}
	return nil
}

// ListAliases returns every alias in the group.
func (s *SQLStore) ListAliases(ctx context.Context, groupID string) ([]models.PlayerAlias, error) {
	rows, err := s.query(ctx,
		`SELECT group_id, player_name, user_id, created_at FROM player_aliases WHERE group_id = ? ORDER BY player_name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	aliases, err := collect(rows, func(rows *sql.Rows) (models.PlayerAlias, error) {
		var a models.PlayerAlias
		err := rows.Scan(&a.GroupID, &a.PlayerName, &a.UserID, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan aliases: %w", err)
	}
	return aliases, nil
}

package access

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

type fakeMembers map[string]models.Role // key: groupID + "/" + userID

func (f fakeMembers) GetMembership(_ context.Context, groupID, userID string) (*models.Membership, error) {
	role, ok := f[groupID+"/"+userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &models.Membership{GroupID: groupID, UserID: userID, Role: role}, nil
}

func (f fakeMembers) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	for key := range f {
		if strings.HasPrefix(key, groupID+"/") {
			return &models.Group{ID: groupID}, nil
		}
	}
	return nil, storage.ErrNotFound
}

func newTestResolver() *Resolver {
	return NewResolver(fakeMembers{
		"g1/owner":  models.RoleOwner,
		"g1/editor": models.RoleEditor,
		"g1/viewer": models.RoleViewer,
		"g2/owner":  models.RoleOwner,
		"g2/editor": models.RoleOwner,
	})
}

func TestRequire(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		group   string
		op      Operation
		wantErr error
	}{
		{name: "viewer can view", actor: Actor{UserID: "viewer"}, op: OpView},
		{name: "viewer cannot play", actor: Actor{UserID: "viewer"}, op: OpPlay, wantErr: ErrForbidden},
		{name: "editor can play", actor: Actor{UserID: "editor"}, op: OpPlay},
		{name: "editor can edit tables", actor: Actor{UserID: "editor"}, op: OpEditTable},
		{name: "editor cannot manage group", actor: Actor{UserID: "editor"}, op: OpManageGroup, wantErr: ErrForbidden},
		{name: "owner can manage group", actor: Actor{UserID: "owner"}, op: OpManageGroup},
		{name: "stranger is not told", actor: Actor{UserID: "stranger"}, op: OpView, wantErr: ErrNotVisible},
		{name: "anonymous is not told", actor: Actor{}, op: OpView, wantErr: ErrNotVisible},
		{name: "admin bypasses membership", actor: Actor{UserID: "stranger", Admin: true}, op: OpManageGroup},
		{name: "admin on missing group", actor: Actor{UserID: "stranger", Admin: true}, group: "g-unknown", op: OpView, wantErr: ErrNotVisible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.group
			if group == "" {
				group = "g1"
			}
			err := r.Require(ctx, tt.actor, group, tt.op)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Require() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Require() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireMove(t *testing.T) {
	r := newTestResolver()
	ctx := context.Background()

	// "editor" edits g1 but owns g2: not enough.
	if err := r.RequireMove(ctx, Actor{UserID: "editor"}, "g1", "g2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("editor move error = %v, want ErrForbidden", err)
	}
	if err := r.RequireMove(ctx, Actor{UserID: "owner"}, "g1", "g2"); err != nil {
		t.Errorf("owner of both groups should move, got %v", err)
	}
	if err := r.RequireMove(ctx, Actor{UserID: "owner"}, "g1", "g-unknown"); !errors.Is(err, ErrForbidden) {
		t.Errorf("unknown destination error = %v, want ErrForbidden", err)
	}
	if err := r.RequireMove(ctx, Actor{UserID: "nobody", Admin: true}, "g1", "g-unknown"); err != nil {
		t.Errorf("admin move should succeed, got %v", err)
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !models.RoleOwner.AtLeast(models.RoleEditor) {
		t.Error("owner should satisfy editor")
	}
	if models.RoleViewer.AtLeast(models.RoleEditor) {
		t.Error("viewer should not satisfy editor")
	}
	if models.Role("guest").AtLeast(models.RoleViewer) {
		t.Error("unknown role should grant nothing")
	}
}

package service

import (
	"context"
	"slices"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/notify"
	api "github.com/mmynk/pokerledger/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	env := setupTestServer(t)
	alice := env.newUser(t, "Alice")

	resp, err := env.groups.CreateGroup(context.Background(), as(alice.ID, &api.CreateGroupRequest{
		Name:        "  Thursday Night Poker ",
		Description: "home game",
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.Id == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Thursday Night Poker" {
		t.Errorf("name: expected 'Thursday Night Poker', got '%s'", group.Name)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if len(group.Members) != 1 {
		t.Fatalf("members: expected 1, got %d", len(group.Members))
	}
	owner := group.Members[0]
	if owner.UserId != alice.ID || owner.Role != "owner" || owner.Email != alice.Email {
		t.Errorf("unexpected owner membership: %+v", owner)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	env := setupTestServer(t)
	alice := env.newUser(t, "Alice")

	_, err := env.groups.CreateGroup(context.Background(), as(alice.ID, &api.CreateGroupRequest{Name: "   "}))
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = env.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: "anon"}))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestGroupVisibility(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	mallory := env.newUser(t, "Mallory")
	group := env.newGroup(t, alice, nil)

	// A group the caller cannot see looks exactly like one that does not exist.
	_, hiddenErr := env.groups.GetGroup(ctx, as(mallory.ID, &api.GetGroupRequest{GroupId: group.Id}))
	wantCode(t, hiddenErr, connect.CodeNotFound)
	_, missingErr := env.groups.GetGroup(ctx, as(mallory.ID, &api.GetGroupRequest{GroupId: "no-such-group"}))
	wantCode(t, missingErr, connect.CodeNotFound)
	if hiddenErr.Error() != missingErr.Error() {
		t.Errorf("expected identical errors, got %q and %q", hiddenErr, missingErr)
	}

	resp, err := env.groups.GetGroup(ctx, asAdmin(mallory.ID, &api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("admin GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Id != group.Id {
		t.Errorf("expected group %s, got %s", group.Id, resp.Msg.Group.Id)
	}
}

func TestAdminMissingGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	admin := env.newUser(t, "Admin")

	_, err := env.groups.GetFoodRotation(ctx, asAdmin(admin.ID, &api.GetFoodRotationRequest{GroupId: "nope"}))
	wantCode(t, err, connect.CodeNotFound)
	_, err = env.tables.ListTables(ctx, asAdmin(admin.ID, &api.ListTablesRequest{GroupId: "nope"}))
	wantCode(t, err, connect.CodeNotFound)
	_, err = env.tables.CreateTable(ctx, asAdmin(admin.ID, &api.CreateTableRequest{
		GroupId: "nope", Name: "Ghost", SmallBlind: 100, BigBlind: 200, MinimumBuyIn: 400,
	}))
	wantCode(t, err, connect.CodeNotFound)
}

func TestListGroups(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	bob := env.newUser(t, "Bob")
	env.newGroup(t, alice, nil)
	env.newGroup(t, bob, nil)
	shared := env.newGroup(t, bob, map[*models.User]models.Role{alice: models.RoleViewer})

	resp, err := env.groups.ListGroups(ctx, as(alice.ID, &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups for alice, got %d", len(resp.Msg.Groups))
	}
	ids := []string{resp.Msg.Groups[0].Id, resp.Msg.Groups[1].Id}
	if !slices.Contains(ids, shared.Id) {
		t.Errorf("expected shared group %s in %v", shared.Id, ids)
	}

	resp, err = env.groups.ListGroups(ctx, asAdmin(alice.ID, &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("admin ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 3 {
		t.Errorf("expected admin to see 3 groups, got %d", len(resp.Msg.Groups))
	}
}

func TestUpdateGroup(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	bob := env.newUser(t, "Bob")
	group := env.newGroup(t, alice, map[*models.User]models.Role{bob: models.RoleEditor})

	name := "Friday Poker"
	_, err := env.groups.UpdateGroup(ctx, as(bob.ID, &api.UpdateGroupRequest{GroupId: group.Id, Name: &name}))
	wantCode(t, err, connect.CodePermissionDenied)

	resp, err := env.groups.UpdateGroup(ctx, as(alice.ID, &api.UpdateGroupRequest{GroupId: group.Id, Name: &name}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != name {
		t.Errorf("name: expected '%s', got '%s'", name, resp.Msg.Group.Name)
	}
	if len(resp.Msg.Group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(resp.Msg.Group.Members))
	}

	empty := " "
	_, err = env.groups.UpdateGroup(ctx, as(alice.ID, &api.UpdateGroupRequest{GroupId: group.Id, Name: &empty}))
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestDeleteGroupCascades(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	group := env.newGroup(t, alice, nil)
	table := env.newTable(t, alice.ID, group.Id, "Game 1")
	player := env.addPlayer(t, alice.ID, table.Id, "Carol")
	env.buyIn(t, alice.ID, table.Id, player.Id, 2000)

	if _, err := env.groups.DeleteGroup(ctx, as(alice.ID, &api.DeleteGroupRequest{GroupId: group.Id})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err := env.tables.GetTable(ctx, asAdmin(alice.ID, &api.GetTableRequest{TableId: table.Id}))
	wantCode(t, err, connect.CodeNotFound)
	_, err = env.groups.GetGroup(ctx, asAdmin(alice.ID, &api.GetGroupRequest{GroupId: group.Id}))
	wantCode(t, err, connect.CodeNotFound)
}

func TestMemberManagement(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	bob := env.newUser(t, "Bob")
	carol := env.newUser(t, "Carol")
	group := env.newGroup(t, alice, nil)

	resp, err := env.groups.AddMember(ctx, as(alice.ID, &api.AddMemberRequest{
		GroupId: group.Id,
		Email:   "  BOB@example.com ",
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if resp.Msg.Member.UserId != bob.ID || resp.Msg.Member.Role != "viewer" {
		t.Errorf("expected bob as viewer, got %+v", resp.Msg.Member)
	}

	tests := []struct {
		name  string
		actor string
		req   *api.AddMemberRequest
		code  connect.Code
	}{
		{
			name:  "already a member",
			actor: alice.ID,
			req:   &api.AddMemberRequest{GroupId: group.Id, Email: bob.Email, Role: "editor"},
			code:  connect.CodeAlreadyExists,
		},
		{
			name:  "viewer cannot add",
			actor: bob.ID,
			req:   &api.AddMemberRequest{GroupId: group.Id, Email: carol.Email},
			code:  connect.CodePermissionDenied,
		},
		{
			name:  "unknown email",
			actor: alice.ID,
			req:   &api.AddMemberRequest{GroupId: group.Id, Email: "nobody@example.com"},
			code:  connect.CodeNotFound,
		},
		{
			name:  "invalid role",
			actor: alice.ID,
			req:   &api.AddMemberRequest{GroupId: group.Id, Email: carol.Email, Role: "dealer"},
			code:  connect.CodeInvalidArgument,
		},
		{
			name:  "non-member",
			actor: carol.ID,
			req:   &api.AddMemberRequest{GroupId: group.Id, Email: carol.Email},
			code:  connect.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.groups.AddMember(ctx, as(tt.actor, tt.req))
			wantCode(t, err, tt.code)
		})
	}

	roleResp, err := env.groups.UpdateMemberRole(ctx, as(alice.ID, &api.UpdateMemberRoleRequest{
		GroupId: group.Id,
		UserId:  bob.ID,
		Role:    "editor",
	}))
	if err != nil {
		t.Fatalf("UpdateMemberRole failed: %v", err)
	}
	if roleResp.Msg.Member.Role != "editor" {
		t.Errorf("expected editor, got %s", roleResp.Msg.Member.Role)
	}

	if _, err := env.groups.RemoveMember(ctx, as(alice.ID, &api.RemoveMemberRequest{GroupId: group.Id, UserId: bob.ID})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	_, err = env.groups.GetGroup(ctx, as(bob.ID, &api.GetGroupRequest{GroupId: group.Id}))
	wantCode(t, err, connect.CodeNotFound)

	want := []notify.Kind{notify.MemberJoined, notify.MemberLeft}
	if got := env.notifier.kinds(); !slices.Equal(got, want) {
		t.Errorf("notifications: expected %v, got %v", want, got)
	}
}

func TestLastOwner(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	bob := env.newUser(t, "Bob")
	group := env.newGroup(t, alice, map[*models.User]models.Role{bob: models.RoleEditor})

	_, err := env.groups.UpdateMemberRole(ctx, as(alice.ID, &api.UpdateMemberRoleRequest{
		GroupId: group.Id,
		UserId:  alice.ID,
		Role:    "viewer",
	}))
	wantCode(t, err, connect.CodeFailedPrecondition)

	_, err = env.groups.LeaveGroup(ctx, as(alice.ID, &api.LeaveGroupRequest{GroupId: group.Id}))
	wantCode(t, err, connect.CodeFailedPrecondition)

	_, err = env.groups.RemoveMember(ctx, asAdmin(bob.ID, &api.RemoveMemberRequest{GroupId: group.Id, UserId: alice.ID}))
	wantCode(t, err, connect.CodeFailedPrecondition)

	// With a second owner the first may step down.
	_, err = env.groups.UpdateMemberRole(ctx, as(alice.ID, &api.UpdateMemberRoleRequest{
		GroupId: group.Id,
		UserId:  bob.ID,
		Role:    "owner",
	}))
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if _, err := env.groups.LeaveGroup(ctx, as(alice.ID, &api.LeaveGroupRequest{GroupId: group.Id})); err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}

	resp, err := env.groups.GetGroup(ctx, as(bob.ID, &api.GetGroupRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(resp.Msg.Group.Members) != 1 || resp.Msg.Group.Members[0].UserId != bob.ID {
		t.Errorf("expected bob as the only member, got %+v", resp.Msg.Group.Members)
	}
}

// playClosedTable seats every name, buys each in for 1000 and cashes them
// out for the same amount, records food and closes the table.
func playClosedTable(t *testing.T, env *testEnv, userID, groupID, name, food string, names ...string) {
	t.Helper()
	table := env.newTable(t, userID, groupID, name)
	for _, n := range names {
		p := env.addPlayer(t, userID, table.Id, n)
		env.buyIn(t, userID, table.Id, p.Id, 1000)
		env.cashOut(t, userID, table.Id, p.Id, 1000)
		if n == food {
			_, err := env.tables.SetFoodPlayer(context.Background(), as(userID, &api.SetFoodPlayerRequest{
				TableId:  table.Id,
				PlayerId: p.Id,
			}))
			if err != nil {
				t.Fatalf("SetFoodPlayer failed: %v", err)
			}
		}
	}
	env.toggle(t, userID, table.Id)
}

func TestGetFoodRotation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	group := env.newGroup(t, alice, nil)

	for _, name := range []string{"Game 1", "Game 2", "Game 3"} {
		playClosedTable(t, env, alice.ID, group.Id, name, "Bob", "Ann", "Bob")
	}
	playClosedTable(t, env, alice.ID, group.Id, "Game 4", "", "Cid")
	// Open tables never count.
	open := env.newTable(t, alice.ID, group.Id, "Live")
	env.addPlayer(t, alice.ID, open.Id, "Ann")

	resp, err := env.groups.GetFoodRotation(ctx, as(alice.ID, &api.GetFoodRotationRequest{GroupId: group.Id}))
	if err != nil {
		t.Fatalf("GetFoodRotation failed: %v", err)
	}

	entries := resp.Msg.Entries
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	tests := []struct {
		name           string
		participations int32
		orders         int32
		eligible       bool
		overdue        bool
	}{
		{"Ann", 3, 0, true, true},
		{"Bob", 3, 3, true, true},
		{"Cid", 1, 0, false, false},
	}
	for i, tt := range tests {
		e := entries[i]
		if e.Name != tt.name {
			t.Errorf("entry %d: expected %s, got %s", i, tt.name, e.Name)
			continue
		}
		if e.Participations != tt.participations || e.FoodOrders != tt.orders {
			t.Errorf("%s: expected %d/%d, got %d/%d", tt.name, tt.orders, tt.participations, e.FoodOrders, e.Participations)
		}
		if e.IsEligible != tt.eligible || e.MostOverdue != tt.overdue {
			t.Errorf("%s: eligible=%v overdue=%v", tt.name, e.IsEligible, e.MostOverdue)
		}
	}
	if entries[0].LastOrderTime != 0 {
		t.Errorf("Ann never ordered, got last order time %d", entries[0].LastOrderTime)
	}
	if entries[1].FoodOrderPercent != 1 {
		t.Errorf("Bob: expected 100%% food orders, got %v", entries[1].FoodOrderPercent)
	}
}

func TestUserStats(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	alice := env.newUser(t, "Alice")
	bob := env.newUser(t, "Bob")
	group := env.newGroup(t, alice, map[*models.User]models.Role{bob: models.RoleViewer})

	table := env.newTable(t, alice.ID, group.Id, "Game 1")
	p1 := env.addPlayer(t, alice.ID, table.Id, "Bobby")
	p2 := env.addPlayer(t, alice.ID, table.Id, "Dan")
	env.buyIn(t, alice.ID, table.Id, p1.Id, 5000)
	env.buyIn(t, alice.ID, table.Id, p2.Id, 5000)
	env.cashOut(t, alice.ID, table.Id, p1.Id, 8000)
	env.cashOut(t, alice.ID, table.Id, p2.Id, 2000)
	env.toggle(t, alice.ID, table.Id)

	_, err := env.groups.LinkPlayerAlias(ctx, as(bob.ID, &api.LinkPlayerAliasRequest{
		GroupId:    group.Id,
		PlayerName: "Bobby",
		UserId:     bob.ID,
	}))
	wantCode(t, err, connect.CodePermissionDenied)

	aliasResp, err := env.groups.LinkPlayerAlias(ctx, as(alice.ID, &api.LinkPlayerAliasRequest{
		GroupId:    group.Id,
		PlayerName: " BOBBY ",
		UserId:     bob.ID,
	}))
	if err != nil {
		t.Fatalf("LinkPlayerAlias failed: %v", err)
	}
	if aliasResp.Msg.Alias.PlayerName != "bobby" {
		t.Errorf("expected normalized alias 'bobby', got '%s'", aliasResp.Msg.Alias.PlayerName)
	}

	resp, err := env.groups.GetUserStats(ctx, as(bob.ID, &api.GetUserStatsRequest{GroupId: group.Id, UserId: bob.ID}))
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	stats := resp.Msg.Stats
	if stats.Games != 1 || stats.TotalBuyIn != 5000 || stats.TotalCashOut != 8000 || stats.Net != 3000 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.BiggestWin != 3000 {
		t.Errorf("biggest win: expected 3000, got %d", stats.BiggestWin)
	}

	resp, err = env.groups.GetUserStats(ctx, as(alice.ID, &api.GetUserStatsRequest{GroupId: group.Id, UserId: alice.ID}))
	if err != nil {
		t.Fatalf("GetUserStats failed: %v", err)
	}
	if resp.Msg.Stats.Games != 0 {
		t.Errorf("expected no games without aliases, got %d", resp.Msg.Stats.Games)
	}
}

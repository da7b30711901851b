package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/pokerledger/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "pokerledger.v1.GroupService"

// Procedure paths of the GroupService RPCs.
const (
	GroupServiceCreateGroupProcedure      = "/pokerledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure         = "/pokerledger.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure       = "/pokerledger.v1.GroupService/ListGroups"
	GroupServiceUpdateGroupProcedure      = "/pokerledger.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure      = "/pokerledger.v1.GroupService/DeleteGroup"
	GroupServiceAddMemberProcedure        = "/pokerledger.v1.GroupService/AddMember"
	GroupServiceUpdateMemberRoleProcedure = "/pokerledger.v1.GroupService/UpdateMemberRole"
	GroupServiceRemoveMemberProcedure     = "/pokerledger.v1.GroupService/RemoveMember"
	GroupServiceLeaveGroupProcedure       = "/pokerledger.v1.GroupService/LeaveGroup"
	GroupServiceGetFoodRotationProcedure  = "/pokerledger.v1.GroupService/GetFoodRotation"
	GroupServiceLinkPlayerAliasProcedure  = "/pokerledger.v1.GroupService/LinkPlayerAlias"
	GroupServiceGetUserStatsProcedure     = "/pokerledger.v1.GroupService/GetUserStats"
)

// GroupServiceHandler is implemented by the server.
// Groups, memberships, food rotation and player statistics.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMemberRole(context.Context, *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	GetFoodRotation(context.Context, *connect.Request[api.GetFoodRotationRequest]) (*connect.Response[api.GetFoodRotationResponse], error)
	LinkPlayerAlias(context.Context, *connect.Request[api.LinkPlayerAliasRequest]) (*connect.Response[api.LinkPlayerAliasResponse], error)
	GetUserStats(context.Context, *connect.Request[api.GetUserStatsRequest]) (*connect.Response[api.GetUserStatsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route("/"+GroupServiceName+"/", map[string]http.Handler{
		GroupServiceCreateGroupProcedure:      connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:         connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:       connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceUpdateGroupProcedure:      connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...),
		GroupServiceDeleteGroupProcedure:      connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceAddMemberProcedure:        connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
		GroupServiceUpdateMemberRoleProcedure: connect.NewUnaryHandler(GroupServiceUpdateMemberRoleProcedure, svc.UpdateMemberRole, opts...),
		GroupServiceRemoveMemberProcedure:     connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GroupServiceLeaveGroupProcedure:       connect.NewUnaryHandler(GroupServiceLeaveGroupProcedure, svc.LeaveGroup, opts...),
		GroupServiceGetFoodRotationProcedure:  connect.NewUnaryHandler(GroupServiceGetFoodRotationProcedure, svc.GetFoodRotation, opts...),
		GroupServiceLinkPlayerAliasProcedure:  connect.NewUnaryHandler(GroupServiceLinkPlayerAliasProcedure, svc.LinkPlayerAlias, opts...),
		GroupServiceGetUserStatsProcedure:     connect.NewUnaryHandler(GroupServiceGetUserStatsProcedure, svc.GetUserStats, opts...),
	})
}

// GroupServiceClient is a client for the pokerledger.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	UpdateMemberRole(context.Context, *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	GetFoodRotation(context.Context, *connect.Request[api.GetFoodRotationRequest]) (*connect.Response[api.GetFoodRotationResponse], error)
	LinkPlayerAlias(context.Context, *connect.Request[api.LinkPlayerAliasRequest]) (*connect.Response[api.LinkPlayerAliasResponse], error)
	GetUserStats(context.Context, *connect.Request[api.GetUserStatsRequest]) (*connect.Response[api.GetUserStatsResponse], error)
}

// NewGroupServiceClient constructs a client for the pokerledger.v1.GroupService service.
// baseURL is the server root, for example https://poker.example.com.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &groupServiceClient{
		createGroup:      connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		updateGroup:      connect.NewClient[api.UpdateGroupRequest, api.UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		deleteGroup:      connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addMember:        connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		updateMemberRole: connect.NewClient[api.UpdateMemberRoleRequest, api.UpdateMemberRoleResponse](httpClient, baseURL+GroupServiceUpdateMemberRoleProcedure, opts...),
		removeMember:     connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+GroupServiceRemoveMemberProcedure, opts...),
		leaveGroup:       connect.NewClient[api.LeaveGroupRequest, api.LeaveGroupResponse](httpClient, baseURL+GroupServiceLeaveGroupProcedure, opts...),
		getFoodRotation:  connect.NewClient[api.GetFoodRotationRequest, api.GetFoodRotationResponse](httpClient, baseURL+GroupServiceGetFoodRotationProcedure, opts...),
		linkPlayerAlias:  connect.NewClient[api.LinkPlayerAliasRequest, api.LinkPlayerAliasResponse](httpClient, baseURL+GroupServiceLinkPlayerAliasProcedure, opts...),
		getUserStats:     connect.NewClient[api.GetUserStatsRequest, api.GetUserStatsResponse](httpClient, baseURL+GroupServiceGetUserStatsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup      *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup         *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups       *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	updateGroup      *connect.Client[api.UpdateGroupRequest, api.UpdateGroupResponse]
	deleteGroup      *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember        *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	updateMemberRole *connect.Client[api.UpdateMemberRoleRequest, api.UpdateMemberRoleResponse]
	removeMember     *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	leaveGroup       *connect.Client[api.LeaveGroupRequest, api.LeaveGroupResponse]
	getFoodRotation  *connect.Client[api.GetFoodRotationRequest, api.GetFoodRotationResponse]
	linkPlayerAlias  *connect.Client[api.LinkPlayerAliasRequest, api.LinkPlayerAliasResponse]
	getUserStats     *connect.Client[api.GetUserStatsRequest, api.GetUserStatsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateMemberRole(ctx context.Context, req *connect.Request[api.UpdateMemberRoleRequest]) (*connect.Response[api.UpdateMemberRoleResponse], error) {
	return c.updateMemberRole.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetFoodRotation(ctx context.Context, req *connect.Request[api.GetFoodRotationRequest]) (*connect.Response[api.GetFoodRotationResponse], error) {
	return c.getFoodRotation.CallUnary(ctx, req)
}

func (c *groupServiceClient) LinkPlayerAlias(ctx context.Context, req *connect.Request[api.LinkPlayerAliasRequest]) (*connect.Response[api.LinkPlayerAliasResponse], error) {
	return c.linkPlayerAlias.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetUserStats(ctx context.Context, req *connect.Request[api.GetUserStatsRequest]) (*connect.Response[api.GetUserStatsResponse], error) {
	return c.getUserStats.CallUnary(ctx, req)
}

package api

type Group struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Members     []*Member `json:"members,omitempty"`
	CreatedAt   int64     `json:"createdAt"`
}

// Member is a user's membership in a group. Role is "owner", "editor" or "viewer".
type Member struct {
	UserId      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	JoinedAt    int64  `json:"joinedAt"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// UpdateGroupRequest changes only the fields that are set.
type UpdateGroupRequest struct {
	GroupId     string  `json:"groupId"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (x *UpdateGroupRequest) GetName() string {
	if x != nil && x.Name != nil {
		return *x.Name
	}
	return ""
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"groupId"`
}

type DeleteGroupResponse struct{}

// AddMemberRequest adds a registered user, found by email, to the group.
type AddMemberRequest struct {
	GroupId string `json:"groupId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdateMemberRoleRequest struct {
	GroupId string `json:"groupId"`
	UserId  string `json:"userId"`
	Role    string `json:"role"`
}

type UpdateMemberRoleResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupId string `json:"groupId"`
	UserId  string `json:"userId"`
}

type RemoveMemberResponse struct{}

type LeaveGroupRequest struct {
	GroupId string `json:"groupId"`
}

type LeaveGroupResponse struct{}

type GetFoodRotationRequest struct {
	GroupId string `json:"groupId"`
}

type GetFoodRotationResponse struct {
	Entries []*RotationEntry `json:"entries"`
}

// RotationEntry is one player's standing in the food rotation.
// LastOrderTime is zero when the player has never ordered.
type RotationEntry struct {
	Name             string  `json:"name"`
	Participations   int32   `json:"participations"`
	FoodOrders       int32   `json:"foodOrders"`
	FoodOrderPercent float64 `json:"foodOrderPercent"`
	LastOrderTime    int64   `json:"lastOrderTime,omitempty"`
	IsEligible       bool    `json:"isEligible"`
	MostOverdue      bool    `json:"mostOverdue"`
}

type PlayerAlias struct {
	GroupId    string `json:"groupId"`
	PlayerName string `json:"playerName"`
	UserId     string `json:"userId"`
}

type LinkPlayerAliasRequest struct {
	GroupId    string `json:"groupId"`
	PlayerName string `json:"playerName"`
	UserId     string `json:"userId"`
}

type LinkPlayerAliasResponse struct {
	Alias *PlayerAlias `json:"alias"`
}

type GetUserStatsRequest struct {
	GroupId string `json:"groupId"`
	UserId  string `json:"userId"`
}

type GetUserStatsResponse struct {
	Stats *PlayerStats `json:"stats"`
}

// PlayerStats aggregates a user's results over a group's closed tables.
type PlayerStats struct {
	UserId       string        `json:"userId"`
	Games        int32         `json:"games"`
	TotalBuyIn   int64         `json:"totalBuyIn"`
	TotalCashOut int64         `json:"totalCashOut"`
	Net          int64         `json:"net"`
	BiggestWin   int64         `json:"biggestWin"`
	BiggestLoss  int64         `json:"biggestLoss"`
	Results      []*GameResult `json:"results,omitempty"`
}

type GameResult struct {
	TableId   string `json:"tableId"`
	TableName string `json:"tableName"`
	GameDate  int64  `json:"gameDate"`
	BuyIn     int64  `json:"buyIn"`
	CashOut   int64  `json:"cashOut"`
	Net       int64  `json:"net"`
}

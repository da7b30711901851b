package api

type Table struct {
	Id           string    `json:"id"`
	GroupId      string    `json:"groupId"`
	Name         string    `json:"name"`
	SmallBlind   int64     `json:"smallBlind"`
	BigBlind     int64     `json:"bigBlind"`
	MinimumBuyIn int64     `json:"minimumBuyIn"`
	Location     string    `json:"location,omitempty"`
	IsActive     bool      `json:"isActive"`
	FoodPlayerId string    `json:"foodPlayerId,omitempty"`
	GameDate     int64     `json:"gameDate"`
	CreatedAt    int64     `json:"createdAt"`
	Players      []*Player `json:"players,omitempty"`
	Balance      *Balance  `json:"balance,omitempty"`
}

// Balance is the table's ledger projection. Difference is
// TotalBuyIns - SettledOut and may be negative.
type Balance struct {
	TotalBuyIns   int64 `json:"totalBuyIns"`
	SettledOut    int64 `json:"settledOut"`
	Difference    int64 `json:"difference"`
	ActivePlayers int32 `json:"activePlayers"`
	CanClose      bool  `json:"canClose"`
}

type CreateTableRequest struct {
	GroupId      string `json:"groupId"`
	Name         string `json:"name"`
	SmallBlind   int64  `json:"smallBlind"`
	BigBlind     int64  `json:"bigBlind"`
	MinimumBuyIn int64  `json:"minimumBuyIn"`
	Location     string `json:"location,omitempty"`
	GameDate     *int64 `json:"gameDate,omitempty"`
}

func (x *CreateTableRequest) GetGameDate() int64 {
	if x != nil && x.GameDate != nil {
		return *x.GameDate
	}
	return 0
}

type CreateTableResponse struct {
	Table *Table `json:"table"`
}

type GetTableRequest struct {
	TableId string `json:"tableId"`
}

type GetTableResponse struct {
	Table *Table `json:"table"`
}

type ListTablesRequest struct {
	GroupId    string `json:"groupId"`
	ClosedOnly bool   `json:"closedOnly,omitempty"`
}

type ListTablesResponse struct {
	Tables []*Table `json:"tables"`
}

// UpdateTableRequest is a patch: unset fields keep their value.
// Setting GroupId to another group moves the table.
type UpdateTableRequest struct {
	TableId      string  `json:"tableId"`
	Name         *string `json:"name,omitempty"`
	SmallBlind   *int64  `json:"smallBlind,omitempty"`
	BigBlind     *int64  `json:"bigBlind,omitempty"`
	MinimumBuyIn *int64  `json:"minimumBuyIn,omitempty"`
	Location     *string `json:"location,omitempty"`
	GameDate     *int64  `json:"gameDate,omitempty"`
	GroupId      *string `json:"groupId,omitempty"`
}

func (x *UpdateTableRequest) GetGroupId() string {
	if x != nil && x.GroupId != nil {
		return *x.GroupId
	}
	return ""
}

type UpdateTableResponse struct {
	Table *Table `json:"table"`
}

type ToggleTableStatusRequest struct {
	TableId string `json:"tableId"`
}

type ToggleTableStatusResponse struct {
	Table *Table `json:"table"`
}

type GetTableBalanceRequest struct {
	TableId string `json:"tableId"`
}

type GetTableBalanceResponse struct {
	Balance *Balance `json:"balance"`
}

// SetFoodPlayerRequest sets the table's food player. An empty PlayerId clears it.
type SetFoodPlayerRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId,omitempty"`
}

type SetFoodPlayerResponse struct {
	Table *Table `json:"table"`
}

type DeleteTableRequest struct {
	TableId string `json:"tableId"`
}

type DeleteTableResponse struct{}

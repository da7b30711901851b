package api

type Player struct {
	Id           string     `json:"id"`
	TableId      string     `json:"tableId"`
	Name         string     `json:"name"`
	Nickname     string     `json:"nickname,omitempty"`
	Active       bool       `json:"active"`
	Chips        int64      `json:"chips"`
	TotalBuyIn   int64      `json:"totalBuyIn"`
	TotalCashOut int64      `json:"totalCashOut"`
	BuyIns       []*BuyIn   `json:"buyIns,omitempty"`
	CashOuts     []*CashOut `json:"cashOuts,omitempty"`
	CreatedAt    int64      `json:"createdAt"`
}

type BuyIn struct {
	Id        string `json:"id"`
	PlayerId  string `json:"playerId"`
	Amount    int64  `json:"amount"`
	CreatedAt int64  `json:"createdAt"`
}

type CashOut struct {
	Id        string `json:"id"`
	PlayerId  string `json:"playerId"`
	Amount    int64  `json:"amount"`
	CreatedAt int64  `json:"createdAt"`
}

type AddPlayerRequest struct {
	TableId      string `json:"tableId"`
	Name         string `json:"name"`
	Nickname     string `json:"nickname,omitempty"`
	InitialChips *int64 `json:"initialChips,omitempty"`
}

func (x *AddPlayerRequest) GetInitialChips() int64 {
	if x != nil && x.InitialChips != nil {
		return *x.InitialChips
	}
	return 0
}

type AddPlayerResponse struct {
	Player *Player `json:"player"`
}

type AddBuyInRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId"`
	Amount   int64  `json:"amount"`
}

type AddBuyInResponse struct {
	Player *Player `json:"player"`
	BuyIn  *BuyIn  `json:"buyIn"`
}

type CashOutRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId"`
	Amount   int64  `json:"amount"`
}

type CashOutResponse struct {
	Player  *Player  `json:"player"`
	CashOut *CashOut `json:"cashOut"`
}

type ReactivatePlayerRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId"`
}

type ReactivatePlayerResponse struct {
	Player *Player `json:"player"`
}

type RemovePlayerRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId"`
}

type RemovePlayerResponse struct{}

type DeleteBuyInRequest struct {
	TableId string `json:"tableId"`
	BuyInId string `json:"buyInId"`
}

type DeleteBuyInResponse struct {
	Player *Player `json:"player"`
}

type UpdateChipsRequest struct {
	TableId  string `json:"tableId"`
	PlayerId string `json:"playerId"`
	Chips    int64  `json:"chips"`
}

type UpdateChipsResponse struct {
	Player *Player `json:"player"`
}

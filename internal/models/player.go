package models

// Player is a seat at one table. The same person appears as a distinct
// Player on every table they play.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string

	// TableID is the table this player belongs to.
	TableID string

	// Name is the display name; Nickname is optional.
	Name     string
	Nickname string

	// Active is true while the player is in play. A cash-out sets it to false.
	Active bool

	// Chips is the advisory current stack in cents.
	Chips int64

	// BuyIns and CashOuts are ordered oldest first.
	BuyIns   []BuyIn
	CashOuts []CashOut

	// CreatedAt is the Unix timestamp when the player was seated.
	CreatedAt int64
}

// TotalBuyIn is the sum of all buy-in amounts, in cents.
func (p *Player) TotalBuyIn() int64 {
	var total int64
	for _, b := range p.BuyIns {
		total += b.Amount
	}
	return total
}

// TotalCashOut is the sum of all cash-out amounts, in cents.
func (p *Player) TotalCashOut() int64 {
	var total int64
	for _, c := range p.CashOuts {
		total += c.Amount
	}
	return total
}

// BuyIn is cash a player put on the table.
type BuyIn struct {
	ID        string
	PlayerID  string
	Amount    int64
	CreatedAt int64
}

// CashOut is cash a player took off the table when leaving play.
type CashOut struct {
	ID        string
	PlayerID  string
	Amount    int64
	CreatedAt int64
}

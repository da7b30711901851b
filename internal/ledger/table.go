package ledger

import (
	"fmt"

	"github.com/mmynk/pokerledger/internal/models"
)

// Balance is the aggregate cash position of a table.
type Balance struct {
	TotalBuyIns   Amount
	SettledOut    Amount
	Difference    Amount // TotalBuyIns - SettledOut
	ActivePlayers int
}

// Balanced reports whether buy-ins and settled value match exactly.
func (b Balance) Balanced() bool {
	return b.Difference == 0
}

// CanClose reports whether a table with this balance may be closed.
func (b Balance) CanClose() bool {
	return b.ActivePlayers == 0 && b.Balanced()
}

// ComputeBalance projects the table balance from every player ever seated.
//
//	totalBuyIns = Σ totalBuyIn(player)
//	settledOut  = Σ (active ? chips : Σ cashOuts)
//	difference  = totalBuyIns - settledOut
func ComputeBalance(players []models.Player) Balance {
	var b Balance
	for i := range players {
		p := &players[i]
		b.TotalBuyIns += Amount(p.TotalBuyIn())
		b.SettledOut += Position(p)
		if p.Active {
			b.ActivePlayers++
		}
	}
	b.Difference = b.TotalBuyIns - b.SettledOut
	return b
}

// UnbalancedError is returned when a close is requested for a table that
// still has active players or whose difference is not zero.
type UnbalancedError struct {
	Balance Balance
}

func (e *UnbalancedError) Error() string {
	b := e.Balance
	if b.ActivePlayers > 0 {
		return fmt.Sprintf("table is unbalanced: %d player(s) still active (total buy-ins %s, settled out %s, difference %s)",
			b.ActivePlayers, b.TotalBuyIns, b.SettledOut, b.Difference)
	}
	return fmt.Sprintf("table is unbalanced: total buy-ins %s, settled out %s, difference %s",
		b.TotalBuyIns, b.SettledOut, b.Difference)
}

func (e *UnbalancedError) Unwrap() error {
	return ErrUnbalancedTable
}

// CheckClose computes the balance and returns an *UnbalancedError unless
// every player is inactive and the difference is zero.
func CheckClose(players []models.Player) (Balance, error) {
	b := ComputeBalance(players)
	if !b.CanClose() {
		return b, &UnbalancedError{Balance: b}
	}
	return b, nil
}

// ValidateStakes enforces 0 < smallBlind <= bigBlind and
// minimumBuyIn >= 2 * bigBlind. Existing buy-ins are never re-checked.
func ValidateStakes(smallBlind, bigBlind, minimumBuyIn Amount) error {
	if smallBlind <= 0 {
		return fmt.Errorf("%w: small blind must be positive", ErrInvalidAmount)
	}
	if bigBlind < smallBlind {
		return fmt.Errorf("%w: big blind %s is below small blind %s", ErrInvalidAmount, bigBlind, smallBlind)
	}
	// Halving the minimum instead of doubling the big blind cannot overflow.
	if minimumBuyIn/2 < bigBlind {
		return fmt.Errorf("%w: minimum buy-in %s must be at least twice the big blind %s", ErrInvalidAmount, minimumBuyIn, bigBlind)
	}
	return nil
}

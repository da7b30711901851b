package ledger

import (
	"fmt"

	"github.com/mmynk/pokerledger/internal/models"
)

// CheckNewPlayer validates seating a player named (name, nickname) at table.
// The pair is compared case-insensitively against everyone already seated.
func CheckNewPlayer(table *models.Table, seated []models.Player, name, nickname string) error {
	if NormalizeName(name) == "" {
		return ErrInvalidName
	}
	if !table.IsActive {
		return ErrTableClosed
	}
	for _, p := range seated {
		if NormalizeName(p.Name) == NormalizeName(name) && NormalizeName(p.Nickname) == NormalizeName(nickname) {
			return fmt.Errorf("%w: %q", ErrDuplicateConflict, displayName(name, nickname))
		}
	}
	return nil
}

// CheckBuyIn validates appending a buy-in of amount for player.
func CheckBuyIn(player *models.Player, amount Amount) error {
	if amount <= 0 {
		return fmt.Errorf("%w: buy-in must be positive, got %s", ErrInvalidAmount, amount)
	}
	if !player.Active {
		return ErrPlayerInactive
	}
	return nil
}

// CheckCashOut validates a cash-out of amount for player. Zero is allowed:
// the player walked away with nothing.
func CheckCashOut(player *models.Player, amount Amount) error {
	if amount < 0 {
		return fmt.Errorf("%w: cash-out cannot be negative, got %s", ErrInvalidAmount, amount)
	}
	if !player.Active {
		return ErrPlayerInactive
	}
	return nil
}

// CheckReactivate validates starting a new stint for a player at table.
func CheckReactivate(table *models.Table) error {
	if !table.IsActive {
		return ErrTableClosed
	}
	return nil
}

// CheckDeleteBuyIn validates removing a buy-in owned by player.
// Settled players keep their history.
func CheckDeleteBuyIn(player *models.Player) error {
	if !player.Active {
		return ErrPlayerInactive
	}
	return nil
}

// CheckChips validates setting a player's advisory stack.
func CheckChips(table *models.Table, chips Amount) error {
	if chips < 0 {
		return fmt.Errorf("%w: chips cannot be negative, got %s", ErrInvalidAmount, chips)
	}
	if !table.IsActive {
		return ErrTableClosed
	}
	return nil
}

// CheckRemovePlayer validates deleting a player and its history.
func CheckRemovePlayer(table *models.Table) error {
	if !table.IsActive {
		return ErrTableClosed
	}
	return nil
}

// Position is what a player is currently settled at: live chips while
// active, the sum of cash-outs once inactive.
func Position(player *models.Player) Amount {
	if player.Active {
		return Amount(player.Chips)
	}
	return Amount(player.TotalCashOut())
}

func displayName(name, nickname string) string {
	if nickname == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, nickname)
}

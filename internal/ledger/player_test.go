package ledger

import (
	"errors"
	"testing"

	"github.com/mmynk/pokerledger/internal/models"
)

func TestCheckNewPlayer(t *testing.T) {
	open := &models.Table{IsActive: true}
	seated := []models.Player{
		{Name: "Alice"},
		{Name: "Bob", Nickname: "The Rock"},
	}

	tests := []struct {
		name     string
		table    *models.Table
		player   string
		nickname string
		wantErr  error
	}{
		{name: "new name", table: open, player: "Charlie"},
		{name: "same name different nickname", table: open, player: "Alice", nickname: "Ace"},
		{name: "duplicate ignores case", table: open, player: "ALICE", wantErr: ErrDuplicateConflict},
		{name: "duplicate with nickname", table: open, player: "bob", nickname: "the rock", wantErr: ErrDuplicateConflict},
		{name: "bob without nickname is distinct", table: open, player: "Bob"},
		{name: "blank name", table: open, player: "   ", wantErr: ErrInvalidName},
		{name: "closed table", table: &models.Table{IsActive: false}, player: "Dana", wantErr: ErrTableClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNewPlayer(tt.table, seated, tt.player, tt.nickname)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckNewPlayer() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckNewPlayer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckBuyIn(t *testing.T) {
	active := &models.Player{Active: true}
	inactive := &models.Player{Active: false}

	tests := []struct {
		name    string
		player  *models.Player
		amount  Amount
		wantErr error
	}{
		{name: "positive amount", player: active, amount: Dollars(100)},
		{name: "zero amount", player: active, amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative amount", player: active, amount: -1, wantErr: ErrInvalidAmount},
		{name: "inactive player", player: inactive, amount: Dollars(20), wantErr: ErrPlayerInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBuyIn(tt.player, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckBuyIn() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckCashOut(t *testing.T) {
	active := &models.Player{Active: true}

	if err := CheckCashOut(active, 0); err != nil {
		t.Errorf("zero cash-out should be allowed, got %v", err)
	}
	if err := CheckCashOut(active, -5); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative cash-out error = %v, want ErrInvalidAmount", err)
	}
	if err := CheckCashOut(&models.Player{}, Dollars(10)); !errors.Is(err, ErrPlayerInactive) {
		t.Errorf("inactive cash-out error = %v, want ErrPlayerInactive", err)
	}
}

func TestLifecycleRules(t *testing.T) {
	open := &models.Table{IsActive: true}
	closed := &models.Table{IsActive: false}

	if err := CheckReactivate(open); err != nil {
		t.Errorf("CheckReactivate(open) = %v", err)
	}
	if err := CheckReactivate(closed); !errors.Is(err, ErrTableClosed) {
		t.Errorf("CheckReactivate(closed) = %v, want ErrTableClosed", err)
	}
	if err := CheckDeleteBuyIn(&models.Player{Active: false}); !errors.Is(err, ErrPlayerInactive) {
		t.Errorf("CheckDeleteBuyIn(inactive) = %v, want ErrPlayerInactive", err)
	}
	if err := CheckChips(open, -1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("CheckChips(-1) = %v, want ErrInvalidAmount", err)
	}
	if err := CheckChips(closed, 10); !errors.Is(err, ErrTableClosed) {
		t.Errorf("CheckChips(closed) = %v, want ErrTableClosed", err)
	}
	if err := CheckRemovePlayer(closed); !errors.Is(err, ErrTableClosed) {
		t.Errorf("CheckRemovePlayer(closed) = %v, want ErrTableClosed", err)
	}
}

func TestPosition(t *testing.T) {
	p := &models.Player{
		Active:   true,
		Chips:    2000,
		CashOuts: []models.CashOut{{Amount: 5000}},
	}
	if got := Position(p); got != 2000 {
		t.Errorf("active Position() = %v, want chips", got)
	}
	p.Active = false
	if got := Position(p); got != 5000 {
		t.Errorf("inactive Position() = %v, want cash-outs", got)
	}
}

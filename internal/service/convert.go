package service

import (
	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/models"
	api "github.com/mmynk/pokerledger/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	out := &api.Group{
		Id:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Members {
		out.Members = append(out.Members, toAPIMember(&g.Members[i]))
	}
	return out
}

func toAPIMember(m *models.Membership) *api.Member {
	return &api.Member{
		UserId:      m.UserID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}

func toAPITable(t *models.Table) *api.Table {
	return &api.Table{
		Id:           t.ID,
		GroupId:      t.GroupID,
		Name:         t.Name,
		SmallBlind:   t.SmallBlind,
		BigBlind:     t.BigBlind,
		MinimumBuyIn: t.MinimumBuyIn,
		Location:     t.Location,
		IsActive:     t.IsActive,
		FoodPlayerId: t.FoodPlayerID,
		GameDate:     t.GameDate,
		CreatedAt:    t.CreatedAt,
	}
}

// toAPITableDetail includes the players and the computed balance.
func toAPITableDetail(t *models.Table, players []models.Player) *api.Table {
	out := toAPITable(t)
	for i := range players {
		out.Players = append(out.Players, toAPIPlayer(&players[i]))
	}
	out.Balance = toAPIBalance(ledger.ComputeBalance(players))
	return out
}

func toAPIBalance(b ledger.Balance) *api.Balance {
	return &api.Balance{
		TotalBuyIns:   b.TotalBuyIns.Cents(),
		SettledOut:    b.SettledOut.Cents(),
		Difference:    b.Difference.Cents(),
		ActivePlayers: int32(b.ActivePlayers),
		CanClose:      b.CanClose(),
	}
}

func toAPIPlayer(p *models.Player) *api.Player {
	out := &api.Player{
		Id:           p.ID,
		TableId:      p.TableID,
		Name:         p.Name,
		Nickname:     p.Nickname,
		Active:       p.Active,
		Chips:        p.Chips,
		TotalBuyIn:   p.TotalBuyIn(),
		TotalCashOut: p.TotalCashOut(),
		CreatedAt:    p.CreatedAt,
	}
	for i := range p.BuyIns {
		out.BuyIns = append(out.BuyIns, toAPIBuyIn(&p.BuyIns[i]))
	}
	for i := range p.CashOuts {
		out.CashOuts = append(out.CashOuts, toAPICashOut(&p.CashOuts[i]))
	}
	return out
}

func toAPICashOut(c *models.CashOut) *api.CashOut {
	return &api.CashOut{
		Id:        c.ID,
		PlayerId:  c.PlayerID,
		Amount:    c.Amount,
		CreatedAt: c.CreatedAt,
	}
}

func toAPIBuyIn(b *models.BuyIn) *api.BuyIn {
	return &api.BuyIn{
		Id:        b.ID,
		PlayerId:  b.PlayerID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
	}
}

func toAPIRotation(entries []ledger.RotationEntry) []*api.RotationEntry {
	out := make([]*api.RotationEntry, len(entries))
	for i, e := range entries {
		out[i] = &api.RotationEntry{
			Name:             e.Name,
			Participations:   int32(e.Participations),
			FoodOrders:       int32(e.FoodOrders),
			FoodOrderPercent: e.FoodOrderPercent,
			LastOrderTime:    e.LastOrderTime,
			IsEligible:       e.IsEligible,
			MostOverdue:      e.MostOverdue,
		}
	}
	return out
}

func toAPIStats(userID string, s ledger.PlayerStats) *api.PlayerStats {
	out := &api.PlayerStats{
		UserId:       userID,
		Games:        int32(s.Games),
		TotalBuyIn:   s.TotalBuyIn.Cents(),
		TotalCashOut: s.TotalCashOut.Cents(),
		Net:          s.Net.Cents(),
		BiggestWin:   s.BiggestWin.Cents(),
		BiggestLoss:  s.BiggestLoss.Cents(),
	}
	for _, r := range s.Results {
		out.Results = append(out.Results, &api.GameResult{
			TableId:   r.TableID,
			TableName: r.TableName,
			GameDate:  r.GameDate,
			BuyIn:     r.BuyIn.Cents(),
			CashOut:   r.CashOut.Cents(),
			Net:       r.Net.Cents(),
		})
	}
	return out
}

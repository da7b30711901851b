package ledger

// GameResult is one player's outcome on a single closed table.
type GameResult struct {
	TableID   string
	TableName string
	GameDate  int64
	BuyIn     Amount
	CashOut   Amount
	Net       Amount
}

// PlayerStats aggregates results across games.
type PlayerStats struct {
	Games        int
	TotalBuyIn   Amount
	TotalCashOut Amount
	Net          Amount
	BiggestWin   Amount
	BiggestLoss  Amount // reported as a negative amount
	Results      []GameResult
}

// SummarizeResults collects the results of every seat whose name is in
// names (normalized) across closed tables. Several matching seats at one
// table count as one game.
func SummarizeResults(tables []ClosedTable, names map[string]bool) PlayerStats {
	var stats PlayerStats
	for _, ct := range tables {
		if ct.Table.IsActive {
			continue
		}

		var res GameResult
		found := false
		for i := range ct.Players {
			p := &ct.Players[i]
			if !names[NormalizeName(p.Name)] {
				continue
			}
			found = true
			res.BuyIn += Amount(p.TotalBuyIn())
			res.CashOut += Position(p)
		}
		if !found {
			continue
		}

		res.TableID = ct.Table.ID
		res.TableName = ct.Table.Name
		res.GameDate = ct.Table.GameDate
		res.Net = res.CashOut - res.BuyIn

		stats.Games++
		stats.TotalBuyIn += res.BuyIn
		stats.TotalCashOut += res.CashOut
		if res.Net > stats.BiggestWin {
			stats.BiggestWin = res.Net
		}
		if res.Net < stats.BiggestLoss {
			stats.BiggestLoss = res.Net
		}
		stats.Results = append(stats.Results, res)
	}
	stats.Net = stats.TotalCashOut - stats.TotalBuyIn
	return stats
}

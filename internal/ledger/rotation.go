package ledger

import (
	"sort"

	"github.com/mmynk/pokerledger/internal/models"
)

const (
	// MinRotationParticipations is the number of closed tables a player must
	// have played before they are ranked for food duty.
	MinRotationParticipations = 3

	// MostOverdueCount is how many eligible players are highlighted.
	MostOverdueCount = 3
)

// ClosedTable is a table together with everyone seated at it.
type ClosedTable struct {
	Table   models.Table
	Players []models.Player
}

// RotationEntry is one player's food-duty record across a group's closed tables.
type RotationEntry struct {
	Name             string
	Participations   int
	FoodOrders       int
	FoodOrderPercent float64 // FoodOrders / Participations, 0..1

	// LastOrderTime is the CreatedAt of the most recent table where this
	// player ordered food; 0 means never.
	LastOrderTime int64

	IsEligible  bool
	MostOverdue bool
}

// HasOrdered reports whether the player ever ordered food.
func (e RotationEntry) HasOrdered() bool {
	return e.LastOrderTime != 0
}

type rotationTally struct {
	entry  RotationEntry
	seenAt int64
}

// RankFoodRotation suggests whose turn it is to order food.
//
// Only closed tables count. Eligible players (at least
// MinRotationParticipations tables) come first, ordered by the share of
// games they ordered food, then by who ordered longest ago (never first),
// then by name. Ineligible players follow alphabetically. The first
// MostOverdueCount eligible entries are flagged MostOverdue.
func RankFoodRotation(tables []ClosedTable) []RotationEntry {
	tallies := make(map[string]*rotationTally)

	for _, ct := range tables {
		if ct.Table.IsActive {
			continue
		}

		foodName := ""
		if ct.Table.FoodPlayerID != "" {
			for _, p := range ct.Players {
				if p.ID == ct.Table.FoodPlayerID {
					foodName = NormalizeName(p.Name)
					break
				}
			}
		}

		// A name seated twice at one table (different nicknames) is one participation.
		counted := make(map[string]bool)
		for _, p := range ct.Players {
			key := NormalizeName(p.Name)
			if key == "" || counted[key] {
				continue
			}
			counted[key] = true

			t, ok := tallies[key]
			if !ok {
				t = &rotationTally{entry: RotationEntry{Name: p.Name}, seenAt: ct.Table.CreatedAt}
				tallies[key] = t
			}
			if ct.Table.CreatedAt > t.seenAt {
				t.entry.Name = p.Name
				t.seenAt = ct.Table.CreatedAt
			}

			t.entry.Participations++
			if key == foodName {
				t.entry.FoodOrders++
				if ct.Table.CreatedAt > t.entry.LastOrderTime {
					t.entry.LastOrderTime = ct.Table.CreatedAt
				}
			}
		}
	}

	var eligible, rest []RotationEntry
	for _, t := range tallies {
		e := t.entry
		e.FoodOrderPercent = float64(e.FoodOrders) / float64(e.Participations)
		e.IsEligible = e.Participations >= MinRotationParticipations
		if e.IsEligible {
			eligible = append(eligible, e)
		} else {
			rest = append(rest, e)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.FoodOrderPercent != b.FoodOrderPercent {
			return a.FoodOrderPercent < b.FoodOrderPercent
		}
		if a.HasOrdered() != b.HasOrdered() {
			return !a.HasOrdered()
		}
		if a.LastOrderTime != b.LastOrderTime {
			return a.LastOrderTime < b.LastOrderTime
		}
		return lessName(a.Name, b.Name)
	})
	sort.Slice(rest, func(i, j int) bool {
		return lessName(rest[i].Name, rest[j].Name)
	})

	for i := 0; i < len(eligible) && i < MostOverdueCount; i++ {
		eligible[i].MostOverdue = true
	}

	return append(eligible, rest...)
}

func lessName(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na != nb {
		return na < nb
	}
	return a < b
}

// Package ledger holds the cash rules of a poker table: how a player's
// position follows from buy-ins and cash-outs, when a table may close,
// and the group-level projections (food rotation, player statistics).
//
// Everything here is pure. Services load state from storage, call into
// this package to validate or project it, then persist the result.
package ledger

import (
	"fmt"
	"strings"
)

// Amount is a money value in cents.
type Amount int64

// Dollars returns n whole dollars as an Amount.
func Dollars(n int64) Amount {
	return Amount(n * 100)
}

// Cents returns the raw cent value.
func (a Amount) Cents() int64 {
	return int64(a)
}

// String formats the amount as dollars, e.g. "$12.50" or "-$1.30".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// NormalizeName folds a player name for comparisons: trimmed and lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

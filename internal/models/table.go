package models

// Table represents one physical poker game.
// A table starts active and may be closed once every player has settled up.
type Table struct {
	// ID is the unique identifier for the table (UUID format).
	ID string

	// GroupID is the group that owns this table.
	GroupID string

	// Name is the human-readable name (e.g., "Friday 1/2 NL").
	Name string

	// SmallBlind and BigBlind are in cents; 0 < SmallBlind <= BigBlind.
	SmallBlind int64
	BigBlind   int64

	// MinimumBuyIn is in cents and must be at least twice the big blind.
	MinimumBuyIn int64

	// Location is optional.
	Location string

	// IsActive is true while the game is open, false once closed.
	IsActive bool

	// FoodPlayerID optionally references the Player of this table
	// who was responsible for ordering food.
	FoodPlayerID string

	// GameDate is the Unix timestamp of the game; defaults to CreatedAt.
	GameDate int64

	// CreatedAt is the Unix timestamp when the table was created.
	CreatedAt int64
}

// TableFilter narrows table listings.
type TableFilter struct {
	// ClosedOnly restricts the result to tables with IsActive = false.
	ClosedOnly bool
}

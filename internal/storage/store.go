// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/pokerledger/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// Tx is the set of operations available both on the store and inside a
// transaction started with Store.InTx.
type Tx interface {
	UserStore
	GroupStore
	TableStore
	PlayerStore
}

// Store defines the storage backend used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	Tx

	// InTx runs fn inside one transaction. The transaction commits if fn
	// returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GroupStore persists groups, memberships and player aliases.
type GroupStore interface {
	// CreateGroup inserts the group and makes ownerID its first owner.
	// The group.ID and CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group, ownerID string) error

	// GetGroup returns the group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// LockGroup reads the group without members and locks its row until the
	// surrounding transaction ends.
	LockGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// ListGroupsForUser returns the groups userID belongs to, newest first.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes the group together with its tables.
	DeleteGroup(ctx context.Context, groupID string) error

	GetMembership(ctx context.Context, groupID, userID string) (*models.Membership, error)
	ListMemberships(ctx context.Context, groupID string) ([]models.Membership, error)

	// PutMembership inserts the membership or updates its role.
	PutMembership(ctx context.Context, m *models.Membership) error
	DeleteMembership(ctx context.Context, groupID, userID string) error

	// PutAlias links a player name to a user, replacing any previous link.
	PutAlias(ctx context.Context, alias *models.PlayerAlias) error
	ListAliases(ctx context.Context, groupID string) ([]models.PlayerAlias, error)
}

// TableStore persists poker tables.
type TableStore interface {
	// CreateTable populates table.ID and CreatedAt.
	CreateTable(ctx context.Context, table *models.Table) error
	GetTable(ctx context.Context, tableID string) (*models.Table, error)

	// LockTable reads the table and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetTable.
	LockTable(ctx context.Context, tableID string) (*models.Table, error)

	// ListTables returns a group's tables, latest game first.
	ListTables(ctx context.Context, groupID string, filter models.TableFilter) ([]*models.Table, error)

	UpdateTable(ctx context.Context, table *models.Table) error
	DeleteTable(ctx context.Context, tableID string) error
}

// PlayerStore persists players and their ledger events.
type PlayerStore interface {
	// CreatePlayer populates player.ID and CreatedAt.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// GetPlayer returns the player with buy-in and cash-out history.
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)

	// ListPlayers returns every player at the table with full history.
	ListPlayers(ctx context.Context, tableID string) ([]models.Player, error)

	// UpdatePlayer writes name, nickname, active and chips.
	UpdatePlayer(ctx context.Context, player *models.Player) error

	// DeletePlayer removes the player and all its history.
	DeletePlayer(ctx context.Context, playerID string) error

	CreateBuyIn(ctx context.Context, buyIn *models.BuyIn) error
	GetBuyIn(ctx context.Context, buyInID string) (*models.BuyIn, error)
	DeleteBuyIn(ctx context.Context, buyInID string) error

	CreateCashOut(ctx context.Context, cashOut *models.CashOut) error
}

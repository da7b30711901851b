package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

const tableColumns = `id, group_id, name, small_blind, big_blind, minimum_buy_in, location, is_active, food_player_id, game_date, created_at`

// CreateTable inserts a new table. GameDate defaults to the creation time.
func (s *SQLStore) CreateTable(ctx context.Context, table *models.Table) error {
	table.ID = uuid.New().String()
	table.CreatedAt = now()
	if table.GameDate == 0 {
		table.GameDate = table.CreatedAt
	}

	query := `INSERT INTO poker_tables (` + tableColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query,
		table.ID,
		table.GroupID,
		table.Name,
		table.SmallBlind,
		table.BigBlind,
		table.MinimumBuyIn,
		table.Location,
		table.IsActive,
		nullString(table.FoodPlayerID),
		table.GameDate,
		table.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// GetTable retrieves a table by ID.
func (s *SQLStore) GetTable(ctx context.Context, tableID string) (*models.Table, error) {
	return s.getTable(ctx, tableID, false)
}

// LockTable retrieves a table and holds its row lock for the rest of the
// transaction. SQLite transactions start IMMEDIATE, so the database write
// lock is already held and a plain read suffices there.
func (s *SQLStore) LockTable(ctx context.Context, tableID string) (*models.Table, error) {
	return s.getTable(ctx, tableID, s.inTx() && s.dialect == Postgres)
}

func (s *SQLStore) getTable(ctx context.Context, tableID string, forUpdate bool) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM poker_tables WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := s.query(ctx, query, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	tables, err := collect(rows, scanTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("table %s: %w", tableID, storage.ErrNotFound)
	}
	return tables[0], nil
}

// ListTables returns a group's tables, latest game first.
func (s *SQLStore) ListTables(ctx context.Context, groupID string, filter models.TableFilter) ([]*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM poker_tables WHERE group_id = ?`
	if filter.ClosedOnly {
		query += ` AND is_active = ?`
	}
	query += ` ORDER BY game_date DESC, created_at DESC, id`

	args := []any{groupID}
	if filter.ClosedOnly {
		args = append(args, false)
	}

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	tables, err := collect(rows, scanTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tables: %w", err)
	}
	return tables, nil
}

func scanTable(rows *sql.Rows) (*models.Table, error) {
	t := &models.Table{}
	var food sql.NullString
	err := rows.Scan(
		&t.ID,
		&t.GroupID,
		&t.Name,
		&t.SmallBlind,
		&t.BigBlind,
		&t.MinimumBuyIn,
		&t.Location,
		&t.IsActive,
		&food,
		&t.GameDate,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.FoodPlayerID = food.String
	return t, nil
}

// UpdateTable writes every mutable column of the table, including its group.
func (s *SQLStore) UpdateTable(ctx context.Context, table *models.Table) error {
	query := `
		UPDATE poker_tables
		SET group_id = ?, name = ?, small_blind = ?, big_blind = ?, minimum_buy_in = ?,
		    location = ?, is_active = ?, food_player_id = ?, game_date = ?
		WHERE id = ?
	`
	res, err := s.exec(ctx, query,
		table.GroupID,
		table.Name,
		table.SmallBlind,
		table.BigBlind,
		table.MinimumBuyIn,
		table.Location,
		table.IsActive,
		nullString(table.FoodPlayerID),
		table.GameDate,
		table.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	return expectAffected(res, "table", table.ID)
}

// DeleteTable deletes a table. Players and their history cascade.
func (s *SQLStore) DeleteTable(ctx context.Context, tableID string) error {
	res, err := s.exec(ctx, `DELETE FROM poker_tables WHERE id = ?`, tableID)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return expectAffected(res, "table", tableID)
}

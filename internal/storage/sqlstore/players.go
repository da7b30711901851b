package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

const playerColumns = `id, table_id, name, nickname, active, chips, created_at`

// CreatePlayer seats a new player. A second player with the same
// case-insensitive (name, nickname) at the table yields ledger.ErrDuplicateConflict.
func (s *SQLStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	player.ID = uuid.New().String()
	player.CreatedAt = now()

	query := `INSERT INTO players (` + playerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.exec(ctx, query,
		player.ID,
		player.TableID,
		player.Name,
		player.Nickname,
		player.Active,
		player.Chips,
		player.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("player %q: %w", player.Name, ledger.ErrDuplicateConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player with full buy-in and cash-out history.
func (s *SQLStore) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	rows, err := s.query(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	players, err := collect(rows, scanPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("player %s: %w", playerID, storage.ErrNotFound)
	}

	if err := s.loadHistory(ctx, players, `b.player_id = ?`, playerID); err != nil {
		return nil, err
	}
	return &players[0], nil
}

// ListPlayers returns the table's players in seating order with full history.
func (s *SQLStore) ListPlayers(ctx context.Context, tableID string) ([]models.Player, error) {
	rows, err := s.query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE table_id = ? ORDER BY created_at, name, id`,
		tableID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	players, err := collect(rows, scanPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan players: %w", err)
	}

	if err := s.loadHistory(ctx, players, `p.table_id = ?`, tableID); err != nil {
		return nil, err
	}
	return players, nil
}

func scanPlayer(rows *sql.Rows) (models.Player, error) {
	var p models.Player
	err := rows.Scan(&p.ID, &p.TableID, &p.Name, &p.Nickname, &p.Active, &p.Chips, &p.CreatedAt)
	return p, err
}

// historyEvent is one row of buy_ins or cash_outs.
type historyEvent struct {
	id, playerID string
	amount       int64
	createdAt    int64
}

func scanEvent(rows *sql.Rows) (historyEvent, error) {
	var e historyEvent
	err := rows.Scan(&e.id, &e.playerID, &e.amount, &e.createdAt)
	return e, err
}

// loadHistory attaches buy-ins and cash-outs to players. where filters the
// joined event rows (b = event table, p = players).
func (s *SQLStore) loadHistory(ctx context.Context, players []models.Player, where string, arg any) error {
	if len(players) == 0 {
		return nil
	}
	index := make(map[string]int, len(players))
	for i := range players {
		index[players[i].ID] = i
	}

	buyIns, err := s.events(ctx, "buy_ins", where, arg)
	if err != nil {
		return err
	}
	for _, e := range buyIns {
		if i, ok := index[e.playerID]; ok {
			players[i].BuyIns = append(players[i].BuyIns, models.BuyIn{
				ID: e.id, PlayerID: e.playerID, Amount: e.amount, CreatedAt: e.createdAt,
			})
		}
	}

	cashOuts, err := s.events(ctx, "cash_outs", where, arg)
	if err != nil {
		return err
	}
	for _, e := range cashOuts {
		if i, ok := index[e.playerID]; ok {
			players[i].CashOuts = append(players[i].CashOuts, models.CashOut{
				ID: e.id, PlayerID: e.playerID, Amount: e.amount, CreatedAt: e.createdAt,
			})
		}
	}
	return nil
}

func (s *SQLStore) events(ctx context.Context, table, where string, arg any) ([]historyEvent, error) {
	query := `
		SELECT b.id, b.player_id, b.amount, b.created_at
		FROM ` + table + ` b
		JOIN players p ON p.id = b.player_id
		WHERE ` + where + `
		ORDER BY b.created_at, b.id
	`
	rows, err := s.query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	events, err := collect(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	return events, nil
}

// UpdatePlayer writes the player's name, nickname, active flag and chips.
func (s *SQLStore) UpdatePlayer(ctx context.Context, player *models.Player) error {
	res, err := s.exec(ctx,
		`UPDATE players SET name = ?, nickname = ?, active = ?, chips = ? WHERE id = ?`,
		player.Name, player.Nickname, player.Active, player.Chips, player.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("player %q: %w", player.Name, ledger.ErrDuplicateConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return expectAffected(res, "player", player.ID)
}

// DeletePlayer deletes a player. History cascades; a table whose food
// player this was loses the reference.
func (s *SQLStore) DeletePlayer(ctx context.Context, playerID string) error {
	if _, err := s.exec(ctx,
		`UPDATE poker_tables SET food_player_id = NULL WHERE food_player_id = ?`, playerID,
	); err != nil {
		return fmt.Errorf("failed to clear food player: %w", err)
	}

	res, err := s.exec(ctx, `DELETE FROM players WHERE id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return expectAffected(res, "player", playerID)
}

// CreateBuyIn appends a buy-in to the player's history.
func (s *SQLStore) CreateBuyIn(ctx context.Context, buyIn *models.BuyIn) error {
	buyIn.ID = uuid.New().String()
	buyIn.CreatedAt = now()

	_, err := s.exec(ctx,
		`INSERT INTO buy_ins (id, player_id, amount, created_at) VALUES (?, ?, ?, ?)`,
		buyIn.ID, buyIn.PlayerID, buyIn.Amount, buyIn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert buy-in: %w", err)
	}
	return nil
}

// GetBuyIn retrieves a single buy-in.
func (s *SQLStore) GetBuyIn(ctx context.Context, buyInID string) (*models.BuyIn, error) {
	b := &models.BuyIn{}
	err := s.queryRow(ctx,
		`SELECT id, player_id, amount, created_at FROM buy_ins WHERE id = ?`, buyInID,
	).Scan(&b.ID, &b.PlayerID, &b.Amount, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("buy-in %s: %w", buyInID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get buy-in: %w", err)
	}
	return b, nil
}

// DeleteBuyIn removes a buy-in from the history.
func (s *SQLStore) DeleteBuyIn(ctx context.Context, buyInID string) error {
	res, err := s.exec(ctx, `DELETE FROM buy_ins WHERE id = ?`, buyInID)
	if err != nil {
		return fmt.Errorf("failed to delete buy-in: %w", err)
	}
	return expectAffected(res, "buy-in", buyInID)
}

// CreateCashOut appends a cash-out to the player's history.
func (s *SQLStore) CreateCashOut(ctx context.Context, cashOut *models.CashOut) error {
	cashOut.ID = uuid.New().String()
	cashOut.CreatedAt = now()

	_, err := s.exec(ctx,
		`INSERT INTO cash_outs (id, player_id, amount, created_at) VALUES (?, ?, ?, ?)`,
		cashOut.ID, cashOut.PlayerID, cashOut.Amount, cashOut.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash-out: %w", err)
	}
	return nil
}

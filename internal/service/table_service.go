package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/metrics"
	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/notify"
	"github.com/mmynk/pokerledger/internal/storage"
	api "github.com/mmynk/pokerledger/pkg/api"
)

// TableService implements the Connect TableService.
type TableService struct {
	store    storage.Store
	resolver *access.Resolver
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewTableService creates a new TableService with the given storage backend.
func NewTableService(store storage.Store, notifier notify.Notifier, logger *slog.Logger) *TableService {
	return &TableService{
		store:    store,
		resolver: access.NewResolver(store),
		notifier: notifier,
		logger:   logger,
	}
}

// tableTx runs fn in one transaction with the table row locked, after
// checking that actor may perform op in the table's group.
func tableTx(ctx context.Context, store storage.Store, actor access.Actor, tableID string, op access.Operation, fn func(tx storage.Tx, table *models.Table) error) error {
	return store.InTx(ctx, func(tx storage.Tx) error {
		table, err := tx.LockTable(ctx, tableID)
		if err != nil {
			return err
		}
		if err := access.NewResolver(tx).Require(ctx, actor, table.GroupID, op); err != nil {
			return err
		}
		return fn(tx, table)
	})
}

// playerAt loads a player and checks that it is seated at table.
func playerAt(ctx context.Context, tx storage.Tx, table *models.Table, playerID string) (*models.Player, error) {
	player, err := tx.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.TableID != table.ID {
		return nil, fmt.Errorf("player %s at table %s: %w", playerID, table.ID, storage.ErrNotFound)
	}
	return player, nil
}

// viewTable loads a table the actor may read.
func (s *TableService) viewTable(ctx context.Context, actor access.Actor, tableID string) (*models.Table, error) {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Require(ctx, actor, table.GroupID, access.OpView); err != nil {
		return nil, err
	}
	return table, nil
}

// CreateTable opens a new active table in a group.
func (s *TableService) CreateTable(ctx context.Context, req *connect.Request[api.CreateTableRequest]) (*connect.Response[api.CreateTableResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateTable request received", "group_id", req.Msg.GroupId, "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("table name is required")
	}
	if err := ledger.ValidateStakes(
		ledger.Amount(req.Msg.SmallBlind),
		ledger.Amount(req.Msg.BigBlind),
		ledger.Amount(req.Msg.MinimumBuyIn),
	); err != nil {
		return nil, connectError(s.logger, "CreateTable", err)
	}

	table := &models.Table{
		GroupID:      req.Msg.GroupId,
		Name:         name,
		SmallBlind:   req.Msg.SmallBlind,
		BigBlind:     req.Msg.BigBlind,
		MinimumBuyIn: req.Msg.MinimumBuyIn,
		Location:     strings.TrimSpace(req.Msg.Location),
		IsActive:     true,
		GameDate:     req.Msg.GetGameDate(),
	}

	err = s.store.InTx(ctx, func(tx storage.Tx) error {
		if err := access.NewResolver(tx).Require(ctx, actor, table.GroupID, access.OpEditTable); err != nil {
			return err
		}
		if _, err := tx.LockGroup(ctx, table.GroupID); err != nil {
			return err
		}
		return tx.CreateTable(ctx, table)
	})
	if err != nil {
		return nil, connectError(s.logger, "CreateTable", err)
	}

	s.logger.Info("Table created", "table_id", table.ID, "group_id", table.GroupID)
	return connect.NewResponse(&api.CreateTableResponse{
		Table: toAPITableDetail(table, nil),
	}), nil
}

// GetTable returns a table with its players, their history and the balance.
func (s *TableService) GetTable(ctx context.Context, req *connect.Request[api.GetTableRequest]) (*connect.Response[api.GetTableResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.viewTable(ctx, actor, req.Msg.TableId)
	if err != nil {
		return nil, connectError(s.logger, "GetTable", err)
	}
	players, err := s.store.ListPlayers(ctx, table.ID)
	if err != nil {
		return nil, connectError(s.logger, "GetTable", err)
	}

	return connect.NewResponse(&api.GetTableResponse{
		Table: toAPITableDetail(table, players),
	}), nil
}

// ListTables returns a group's tables, latest game first.
func (s *TableService) ListTables(ctx context.Context, req *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Require(ctx, actor, req.Msg.GroupId, access.OpView); err != nil {
		return nil, connectError(s.logger, "ListTables", err)
	}
	tables, err := s.store.ListTables(ctx, req.Msg.GroupId, models.TableFilter{ClosedOnly: req.Msg.ClosedOnly})
	if err != nil {
		return nil, connectError(s.logger, "ListTables", err)
	}

	out := make([]*api.Table, len(tables))
	for i, t := range tables {
		out[i] = toAPITable(t)
	}

	s.logger.Debug("ListTables successful", "group_id", req.Msg.GroupId, "count", len(tables))
	return connect.NewResponse(&api.ListTablesResponse{Tables: out}), nil
}

// UpdateTable applies a patch. Stakes are validated on the merged values;
// a new group id moves the table and needs ownership of both groups.
func (s *TableService) UpdateTable(ctx context.Context, req *connect.Request[api.UpdateTableRequest]) (*connect.Response[api.UpdateTableResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateTable request received", "table_id", req.Msg.TableId)

	var (
		updated *models.Table
		players []models.Player
	)
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpEditTable, func(tx storage.Tx, table *models.Table) error {
		patch := req.Msg
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return invalidArgument("table name is required")
			}
			table.Name = name
		}
		if patch.SmallBlind != nil {
			table.SmallBlind = *patch.SmallBlind
		}
		if patch.BigBlind != nil {
			table.BigBlind = *patch.BigBlind
		}
		if patch.MinimumBuyIn != nil {
			table.MinimumBuyIn = *patch.MinimumBuyIn
		}
		if patch.Location != nil {
			table.Location = strings.TrimSpace(*patch.Location)
		}
		if patch.GameDate != nil {
			table.GameDate = *patch.GameDate
		}
		if err := ledger.ValidateStakes(
			ledger.Amount(table.SmallBlind),
			ledger.Amount(table.BigBlind),
			ledger.Amount(table.MinimumBuyIn),
		); err != nil {
			return err
		}

		if to := patch.GetGroupId(); to != "" && to != table.GroupID {
			if err := access.NewResolver(tx).RequireMove(ctx, actor, table.GroupID, to); err != nil {
				return err
			}
			if _, err := tx.LockGroup(ctx, to); err != nil {
				return err
			}
			s.logger.Info("Moving table", "table_id", table.ID, "from", table.GroupID, "to", to)
			table.GroupID = to
		}

		if err := tx.UpdateTable(ctx, table); err != nil {
			return err
		}
		updated = table
		players, err = tx.ListPlayers(ctx, table.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "UpdateTable", err)
	}

	s.logger.Info("Table updated", "table_id", updated.ID)
	return connect.NewResponse(&api.UpdateTableResponse{
		Table: toAPITableDetail(updated, players),
	}), nil
}

// ToggleTableStatus closes an active table or reopens a closed one.
// Closing requires every player to be cashed out and the books to balance;
// the check reads the players under the table lock.
func (s *TableService) ToggleTableStatus(ctx context.Context, req *connect.Request[api.ToggleTableStatusRequest]) (*connect.Response[api.ToggleTableStatusResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ToggleTableStatus request received", "table_id", req.Msg.TableId)

	var (
		updated *models.Table
		players []models.Player
		balance ledger.Balance
	)
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpEditTable, func(tx storage.Tx, table *models.Table) error {
		players, err = tx.ListPlayers(ctx, table.ID)
		if err != nil {
			return err
		}

		if table.IsActive {
			balance, err = ledger.CheckClose(players)
			if err != nil {
				metrics.CloseRejections.Inc()
				return err
			}
		}
		table.IsActive = !table.IsActive
		if err := tx.UpdateTable(ctx, table); err != nil {
			return err
		}
		updated = table
		return nil
	})
	if err != nil {
		return nil, connectError(s.logger, "ToggleTableStatus", err)
	}

	if updated.IsActive {
		metrics.RecordEvent(metrics.EventTableReopen)
		s.logger.Info("Table reopened", "table_id", updated.ID)
	} else {
		metrics.RecordEvent(metrics.EventTableClosed)
		s.logger.Info("Table closed", "table_id", updated.ID, "total_buy_ins", balance.TotalBuyIns.Cents())
		s.notifyClosed(ctx, updated, balance)
	}

	return connect.NewResponse(&api.ToggleTableStatusResponse{
		Table: toAPITableDetail(updated, players),
	}), nil
}

func (s *TableService) notifyClosed(ctx context.Context, table *models.Table, balance ledger.Balance) {
	event := notify.Event{
		Kind:    notify.TableClosed,
		GroupID: table.GroupID,
		Subject: table.Name,
		Detail:  fmt.Sprintf("%s in play", balance.TotalBuyIns),
	}
	if group, err := s.store.GetGroup(ctx, table.GroupID); err == nil {
		event.GroupName = group.Name
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("notification failed", "table_id", table.ID, "error", err)
	}
}

// GetTableBalance previews the close check without changing anything.
func (s *TableService) GetTableBalance(ctx context.Context, req *connect.Request[api.GetTableBalanceRequest]) (*connect.Response[api.GetTableBalanceResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	table, err := s.viewTable(ctx, actor, req.Msg.TableId)
	if err != nil {
		return nil, connectError(s.logger, "GetTableBalance", err)
	}
	players, err := s.store.ListPlayers(ctx, table.ID)
	if err != nil {
		return nil, connectError(s.logger, "GetTableBalance", err)
	}

	return connect.NewResponse(&api.GetTableBalanceResponse{
		Balance: toAPIBalance(ledger.ComputeBalance(players)),
	}), nil
}

// SetFoodPlayer records who ordered food. An empty player id clears it.
// Closed tables accept it so the record can be fixed after the game.
func (s *TableService) SetFoodPlayer(ctx context.Context, req *connect.Request[api.SetFoodPlayerRequest]) (*connect.Response[api.SetFoodPlayerResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SetFoodPlayer request received", "table_id", req.Msg.TableId, "player_id", req.Msg.PlayerId)

	var (
		updated *models.Table
		players []models.Player
	)
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		if req.Msg.PlayerId != "" {
			if _, err := playerAt(ctx, tx, table, req.Msg.PlayerId); err != nil {
				return err
			}
		}
		table.FoodPlayerID = req.Msg.PlayerId
		if err := tx.UpdateTable(ctx, table); err != nil {
			return err
		}
		updated = table
		players, err = tx.ListPlayers(ctx, table.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "SetFoodPlayer", err)
	}

	return connect.NewResponse(&api.SetFoodPlayerResponse{
		Table: toAPITableDetail(updated, players),
	}), nil
}

// DeleteTable removes a table with all its players and history.
func (s *TableService) DeleteTable(ctx context.Context, req *connect.Request[api.DeleteTableRequest]) (*connect.Response[api.DeleteTableResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteTable request received", "table_id", req.Msg.TableId)

	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpManageGroup, func(tx storage.Tx, table *models.Table) error {
		return tx.DeleteTable(ctx, table.ID)
	})
	if err != nil {
		return nil, connectError(s.logger, "DeleteTable", err)
	}

	s.logger.Info("Table deleted", "table_id", req.Msg.TableId)
	return connect.NewResponse(&api.DeleteTableResponse{}), nil
}

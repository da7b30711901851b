package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/ledger"
	"github.com/mmynk/pokerledger/internal/metrics"
	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
	api "github.com/mmynk/pokerledger/pkg/api"
)

// PlayerService implements the Connect PlayerService: seating players and
// recording their buy-ins and cash-outs. Every mutation locks the table row
// so it serializes with a concurrent close.
type PlayerService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPlayerService creates a new PlayerService with the given storage backend.
func NewPlayerService(store storage.Store, logger *slog.Logger) *PlayerService {
	return &PlayerService{store: store, logger: logger}
}

// AddPlayer seats a new active player at an open table.
func (s *PlayerService) AddPlayer(ctx context.Context, req *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AddPlayer request received", "table_id", req.Msg.TableId, "name", req.Msg.Name)

	chips := req.Msg.GetInitialChips()
	player := &models.Player{
		TableID:  req.Msg.TableId,
		Name:     strings.TrimSpace(req.Msg.Name),
		Nickname: strings.TrimSpace(req.Msg.Nickname),
		Active:   true,
		Chips:    chips,
	}

	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		seated, err := tx.ListPlayers(ctx, table.ID)
		if err != nil {
			return err
		}
		if err := ledger.CheckNewPlayer(table, seated, player.Name, player.Nickname); err != nil {
			return err
		}
		if err := ledger.CheckChips(table, ledger.Amount(chips)); err != nil {
			return err
		}
		return tx.CreatePlayer(ctx, player)
	})
	if err != nil {
		return nil, connectError(s.logger, "AddPlayer", err)
	}

	metrics.RecordEvent(metrics.EventPlayerSeated)
	s.logger.Info("Player added", "table_id", player.TableID, "player_id", player.ID)
	return connect.NewResponse(&api.AddPlayerResponse{
		Player: toAPIPlayer(player),
	}), nil
}

// AddBuyIn appends a buy-in for an active player.
func (s *PlayerService) AddBuyIn(ctx context.Context, req *connect.Request[api.AddBuyInRequest]) (*connect.Response[api.AddBuyInResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AddBuyIn request received",
		"table_id", req.Msg.TableId,
		"player_id", req.Msg.PlayerId,
		"amount", req.Msg.Amount,
	)

	buyIn := &models.BuyIn{PlayerID: req.Msg.PlayerId, Amount: req.Msg.Amount}
	var player *models.Player
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		p, err := playerAt(ctx, tx, table, req.Msg.PlayerId)
		if err != nil {
			return err
		}
		if err := ledger.CheckBuyIn(p, ledger.Amount(buyIn.Amount)); err != nil {
			return err
		}
		if err := tx.CreateBuyIn(ctx, buyIn); err != nil {
			return err
		}
		player, err = tx.GetPlayer(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "AddBuyIn", err)
	}

	metrics.RecordEvent(metrics.EventBuyIn)
	return connect.NewResponse(&api.AddBuyInResponse{
		Player: toAPIPlayer(player),
		BuyIn:  toAPIBuyIn(buyIn),
	}), nil
}

// CashOut records what an active player took off the table and marks the
// player inactive. The advisory chip count resets to zero.
func (s *PlayerService) CashOut(ctx context.Context, req *connect.Request[api.CashOutRequest]) (*connect.Response[api.CashOutResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CashOut request received",
		"table_id", req.Msg.TableId,
		"player_id", req.Msg.PlayerId,
		"amount", req.Msg.Amount,
	)

	cashOut := &models.CashOut{PlayerID: req.Msg.PlayerId, Amount: req.Msg.Amount}
	var player *models.Player
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		p, err := playerAt(ctx, tx, table, req.Msg.PlayerId)
		if err != nil {
			return err
		}
		if err := ledger.CheckCashOut(p, ledger.Amount(cashOut.Amount)); err != nil {
			return err
		}
		if err := tx.CreateCashOut(ctx, cashOut); err != nil {
			return err
		}
		p.Active = false
		p.Chips = 0
		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return err
		}
		player, err = tx.GetPlayer(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "CashOut", err)
	}

	metrics.RecordEvent(metrics.EventCashOut)
	return connect.NewResponse(&api.CashOutResponse{
		Player:  toAPIPlayer(player),
		CashOut: toAPICashOut(cashOut),
	}), nil
}

// ReactivatePlayer starts a new stint for a cashed-out player on an open
// table. History is kept; an already active player is left as is.
func (s *PlayerService) ReactivatePlayer(ctx context.Context, req *connect.Request[api.ReactivatePlayerRequest]) (*connect.Response[api.ReactivatePlayerResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ReactivatePlayer request received", "table_id", req.Msg.TableId, "player_id", req.Msg.PlayerId)

	var player *models.Player
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		p, err := playerAt(ctx, tx, table, req.Msg.PlayerId)
		if err != nil {
			return err
		}
		if err := ledger.CheckReactivate(table); err != nil {
			return err
		}
		player = p
		if p.Active {
			return nil
		}
		p.Active = true
		return tx.UpdatePlayer(ctx, p)
	})
	if err != nil {
		return nil, connectError(s.logger, "ReactivatePlayer", err)
	}

	metrics.RecordEvent(metrics.EventReactivate)
	return connect.NewResponse(&api.ReactivatePlayerResponse{
		Player: toAPIPlayer(player),
	}), nil
}

// RemovePlayer deletes a player and its history from an open table.
func (s *PlayerService) RemovePlayer(ctx context.Context, req *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RemovePlayer request received", "table_id", req.Msg.TableId, "player_id", req.Msg.PlayerId)

	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		p, err := playerAt(ctx, tx, table, req.Msg.PlayerId)
		if err != nil {
			return err
		}
		if err := ledger.CheckRemovePlayer(table); err != nil {
			return err
		}
		return tx.DeletePlayer(ctx, p.ID)
	})
	if err != nil {
		return nil, connectError(s.logger, "RemovePlayer", err)
	}

	s.logger.Info("Player removed", "table_id", req.Msg.TableId, "player_id", req.Msg.PlayerId)
	return connect.NewResponse(&api.RemovePlayerResponse{}), nil
}

// DeleteBuyIn removes a mistaken buy-in. Only active players' history can change.
func (s *PlayerService) DeleteBuyIn(ctx context.Context, req *connect.Request[api.DeleteBuyInRequest]) (*connect.Response[api.DeleteBuyInResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteBuyIn request received", "table_id", req.Msg.TableId, "buy_in_id", req.Msg.BuyInId)

	var player *models.Player
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		buyIn, err := tx.GetBuyIn(ctx, req.Msg.BuyInId)
		if err != nil {
			return err
		}
		p, err := playerAt(ctx, tx, table, buyIn.PlayerID)
		if err != nil {
			return err
		}
		if err := ledger.CheckDeleteBuyIn(p); err != nil {
			return err
		}
		if err := tx.DeleteBuyIn(ctx, buyIn.ID); err != nil {
			return err
		}
		player, err = tx.GetPlayer(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, connectError(s.logger, "DeleteBuyIn", err)
	}

	metrics.RecordEvent(metrics.EventDeleteBuyIn)
	return connect.NewResponse(&api.DeleteBuyInResponse{
		Player: toAPIPlayer(player),
	}), nil
}

// UpdateChips sets a player's advisory stack on an open table.
func (s *PlayerService) UpdateChips(ctx context.Context, req *connect.Request[api.UpdateChipsRequest]) (*connect.Response[api.UpdateChipsResponse], error) {
	actor, err := requireActor(ctx)
	if err != nil {
		return nil, err
	}

	var player *models.Player
	err = tableTx(ctx, s.store, actor, req.Msg.TableId, access.OpPlay, func(tx storage.Tx, table *models.Table) error {
		p, err := playerAt(ctx, tx, table, req.Msg.PlayerId)
		if err != nil {
			return err
		}
		if err := ledger.CheckChips(table, ledger.Amount(req.Msg.Chips)); err != nil {
			return err
		}
		p.Chips = req.Msg.Chips
		player = p
		return tx.UpdatePlayer(ctx, p)
	})
	if err != nil {
		return nil, connectError(s.logger, "UpdateChips", err)
	}

	return connect.NewResponse(&api.UpdateChipsResponse{
		Player: toAPIPlayer(player),
	}), nil
}

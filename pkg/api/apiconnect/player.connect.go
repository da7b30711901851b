package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/pokerledger/pkg/api"
)

// PlayerServiceName is the fully-qualified name of the PlayerService service.
const PlayerServiceName = "pokerledger.v1.PlayerService"

// Procedure paths of the PlayerService RPCs.
const (
	PlayerServiceAddPlayerProcedure        = "/pokerledger.v1.PlayerService/AddPlayer"
	PlayerServiceAddBuyInProcedure         = "/pokerledger.v1.PlayerService/AddBuyIn"
	PlayerServiceCashOutProcedure          = "/pokerledger.v1.PlayerService/CashOut"
	PlayerServiceReactivatePlayerProcedure = "/pokerledger.v1.PlayerService/ReactivatePlayer"
	PlayerServiceRemovePlayerProcedure     = "/pokerledger.v1.PlayerService/RemovePlayer"
	PlayerServiceDeleteBuyInProcedure      = "/pokerledger.v1.PlayerService/DeleteBuyIn"
	PlayerServiceUpdateChipsProcedure      = "/pokerledger.v1.PlayerService/UpdateChips"
)

// PlayerServiceHandler is implemented by the server.
// Players and their buy-in and cash-out ledger.
type PlayerServiceHandler interface {
	AddPlayer(context.Context, *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error)
	AddBuyIn(context.Context, *connect.Request[api.AddBuyInRequest]) (*connect.Response[api.AddBuyInResponse], error)
	CashOut(context.Context, *connect.Request[api.CashOutRequest]) (*connect.Response[api.CashOutResponse], error)
	ReactivatePlayer(context.Context, *connect.Request[api.ReactivatePlayerRequest]) (*connect.Response[api.ReactivatePlayerResponse], error)
	RemovePlayer(context.Context, *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error)
	DeleteBuyIn(context.Context, *connect.Request[api.DeleteBuyInRequest]) (*connect.Response[api.DeleteBuyInResponse], error)
	UpdateChips(context.Context, *connect.Request[api.UpdateChipsRequest]) (*connect.Response[api.UpdateChipsResponse], error)
}

// NewPlayerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route("/"+PlayerServiceName+"/", map[string]http.Handler{
		PlayerServiceAddPlayerProcedure:        connect.NewUnaryHandler(PlayerServiceAddPlayerProcedure, svc.AddPlayer, opts...),
		PlayerServiceAddBuyInProcedure:         connect.NewUnaryHandler(PlayerServiceAddBuyInProcedure, svc.AddBuyIn, opts...),
		PlayerServiceCashOutProcedure:          connect.NewUnaryHandler(PlayerServiceCashOutProcedure, svc.CashOut, opts...),
		PlayerServiceReactivatePlayerProcedure: connect.NewUnaryHandler(PlayerServiceReactivatePlayerProcedure, svc.ReactivatePlayer, opts...),
		PlayerServiceRemovePlayerProcedure:     connect.NewUnaryHandler(PlayerServiceRemovePlayerProcedure, svc.RemovePlayer, opts...),
		PlayerServiceDeleteBuyInProcedure:      connect.NewUnaryHandler(PlayerServiceDeleteBuyInProcedure, svc.DeleteBuyIn, opts...),
		PlayerServiceUpdateChipsProcedure:      connect.NewUnaryHandler(PlayerServiceUpdateChipsProcedure, svc.UpdateChips, opts...),
	})
}

// PlayerServiceClient is a client for the pokerledger.v1.PlayerService service.
type PlayerServiceClient interface {
	AddPlayer(context.Context, *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error)
	AddBuyIn(context.Context, *connect.Request[api.AddBuyInRequest]) (*connect.Response[api.AddBuyInResponse], error)
	CashOut(context.Context, *connect.Request[api.CashOutRequest]) (*connect.Response[api.CashOutResponse], error)
	ReactivatePlayer(context.Context, *connect.Request[api.ReactivatePlayerRequest]) (*connect.Response[api.ReactivatePlayerResponse], error)
	RemovePlayer(context.Context, *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error)
	DeleteBuyIn(context.Context, *connect.Request[api.DeleteBuyInRequest]) (*connect.Response[api.DeleteBuyInResponse], error)
	UpdateChips(context.Context, *connect.Request[api.UpdateChipsRequest]) (*connect.Response[api.UpdateChipsResponse], error)
}

// NewPlayerServiceClient constructs a client for the pokerledger.v1.PlayerService service.
// baseURL is the server root, for example https://poker.example.com.
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlayerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &playerServiceClient{
		addPlayer:        connect.NewClient[api.AddPlayerRequest, api.AddPlayerResponse](httpClient, baseURL+PlayerServiceAddPlayerProcedure, opts...),
		addBuyIn:         connect.NewClient[api.AddBuyInRequest, api.AddBuyInResponse](httpClient, baseURL+PlayerServiceAddBuyInProcedure, opts...),
		cashOut:          connect.NewClient[api.CashOutRequest, api.CashOutResponse](httpClient, baseURL+PlayerServiceCashOutProcedure, opts...),
		reactivatePlayer: connect.NewClient[api.ReactivatePlayerRequest, api.ReactivatePlayerResponse](httpClient, baseURL+PlayerServiceReactivatePlayerProcedure, opts...),
		removePlayer:     connect.NewClient[api.RemovePlayerRequest, api.RemovePlayerResponse](httpClient, baseURL+PlayerServiceRemovePlayerProcedure, opts...),
		deleteBuyIn:      connect.NewClient[api.DeleteBuyInRequest, api.DeleteBuyInResponse](httpClient, baseURL+PlayerServiceDeleteBuyInProcedure, opts...),
		updateChips:      connect.NewClient[api.UpdateChipsRequest, api.UpdateChipsResponse](httpClient, baseURL+PlayerServiceUpdateChipsProcedure, opts...),
	}
}

type playerServiceClient struct {
	addPlayer        *connect.Client[api.AddPlayerRequest, api.AddPlayerResponse]
	addBuyIn         *connect.Client[api.AddBuyInRequest, api.AddBuyInResponse]
	cashOut          *connect.Client[api.CashOutRequest, api.CashOutResponse]
	reactivatePlayer *connect.Client[api.ReactivatePlayerRequest, api.ReactivatePlayerResponse]
	removePlayer     *connect.Client[api.RemovePlayerRequest, api.RemovePlayerResponse]
	deleteBuyIn      *connect.Client[api.DeleteBuyInRequest, api.DeleteBuyInResponse]
	updateChips      *connect.Client[api.UpdateChipsRequest, api.UpdateChipsResponse]
}

func (c *playerServiceClient) AddPlayer(ctx context.Context, req *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error) {
	return c.addPlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) AddBuyIn(ctx context.Context, req *connect.Request[api.AddBuyInRequest]) (*connect.Response[api.AddBuyInResponse], error) {
	return c.addBuyIn.CallUnary(ctx, req)
}

func (c *playerServiceClient) CashOut(ctx context.Context, req *connect.Request[api.CashOutRequest]) (*connect.Response[api.CashOutResponse], error) {
	return c.cashOut.CallUnary(ctx, req)
}

func (c *playerServiceClient) ReactivatePlayer(ctx context.Context, req *connect.Request[api.ReactivatePlayerRequest]) (*connect.Response[api.ReactivatePlayerResponse], error) {
	return c.reactivatePlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) RemovePlayer(ctx context.Context, req *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error) {
	return c.removePlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) DeleteBuyIn(ctx context.Context, req *connect.Request[api.DeleteBuyInRequest]) (*connect.Response[api.DeleteBuyInResponse], error) {
	return c.deleteBuyIn.CallUnary(ctx, req)
}

func (c *playerServiceClient) UpdateChips(ctx context.Context, req *connect.Request[api.UpdateChipsRequest]) (*connect.Response[api.UpdateChipsResponse], error) {
	return c.updateChips.CallUnary(ctx, req)
}

package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/pokerledger/pkg/api"
)

// TableServiceName is the fully-qualified name of the TableService service.
const TableServiceName = "pokerledger.v1.TableService"

// Procedure paths of the TableService RPCs.
const (
	TableServiceCreateTableProcedure       = "/pokerledger.v1.TableService/CreateTable"
	TableServiceGetTableProcedure          = "/pokerledger.v1.TableService/GetTable"
	TableServiceListTablesProcedure        = "/pokerledger.v1.TableService/ListTables"
	TableServiceUpdateTableProcedure       = "/pokerledger.v1.TableService/UpdateTable"
	TableServiceToggleTableStatusProcedure = "/pokerledger.v1.TableService/ToggleTableStatus"
	TableServiceGetTableBalanceProcedure   = "/pokerledger.v1.TableService/GetTableBalance"
	TableServiceSetFoodPlayerProcedure     = "/pokerledger.v1.TableService/SetFoodPlayer"
	TableServiceDeleteTableProcedure       = "/pokerledger.v1.TableService/DeleteTable"
)

// TableServiceHandler is implemented by the server.
// Tables and their open/closed lifecycle.
type TableServiceHandler interface {
	CreateTable(context.Context, *connect.Request[api.CreateTableRequest]) (*connect.Response[api.CreateTableResponse], error)
	GetTable(context.Context, *connect.Request[api.GetTableRequest]) (*connect.Response[api.GetTableResponse], error)
	ListTables(context.Context, *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error)
	UpdateTable(context.Context, *connect.Request[api.UpdateTableRequest]) (*connect.Response[api.UpdateTableResponse], error)
	ToggleTableStatus(context.Context, *connect.Request[api.ToggleTableStatusRequest]) (*connect.Response[api.ToggleTableStatusResponse], error)
	GetTableBalance(context.Context, *connect.Request[api.GetTableBalanceRequest]) (*connect.Response[api.GetTableBalanceResponse], error)
	SetFoodPlayer(context.Context, *connect.Request[api.SetFoodPlayerRequest]) (*connect.Response[api.SetFoodPlayerResponse], error)
	DeleteTable(context.Context, *connect.Request[api.DeleteTableRequest]) (*connect.Response[api.DeleteTableResponse], error)
}

// NewTableServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTableServiceHandler(svc TableServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route("/"+TableServiceName+"/", map[string]http.Handler{
		TableServiceCreateTableProcedure:       connect.NewUnaryHandler(TableServiceCreateTableProcedure, svc.CreateTable, opts...),
		TableServiceGetTableProcedure:          connect.NewUnaryHandler(TableServiceGetTableProcedure, svc.GetTable, opts...),
		TableServiceListTablesProcedure:        connect.NewUnaryHandler(TableServiceListTablesProcedure, svc.ListTables, opts...),
		TableServiceUpdateTableProcedure:       connect.NewUnaryHandler(TableServiceUpdateTableProcedure, svc.UpdateTable, opts...),
		TableServiceToggleTableStatusProcedure: connect.NewUnaryHandler(TableServiceToggleTableStatusProcedure, svc.ToggleTableStatus, opts...),
		TableServiceGetTableBalanceProcedure:   connect.NewUnaryHandler(TableServiceGetTableBalanceProcedure, svc.GetTableBalance, opts...),
		TableServiceSetFoodPlayerProcedure:     connect.NewUnaryHandler(TableServiceSetFoodPlayerProcedure, svc.SetFoodPlayer, opts...),
		TableServiceDeleteTableProcedure:       connect.NewUnaryHandler(TableServiceDeleteTableProcedure, svc.DeleteTable, opts...),
	})
}

// TableServiceClient is a client for the pokerledger.v1.TableService service.
type TableServiceClient interface {
	CreateTable(context.Context, *connect.Request[api.CreateTableRequest]) (*connect.Response[api.CreateTableResponse], error)
	GetTable(context.Context, *connect.Request[api.GetTableRequest]) (*connect.Response[api.GetTableResponse], error)
	ListTables(context.Context, *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error)
	UpdateTable(context.Context, *connect.Request[api.UpdateTableRequest]) (*connect.Response[api.UpdateTableResponse], error)
	ToggleTableStatus(context.Context, *connect.Request[api.ToggleTableStatusRequest]) (*connect.Response[api.ToggleTableStatusResponse], error)
	GetTableBalance(context.Context, *connect.Request[api.GetTableBalanceRequest]) (*connect.Response[api.GetTableBalanceResponse], error)
	SetFoodPlayer(context.Context, *connect.Request[api.SetFoodPlayerRequest]) (*connect.Response[api.SetFoodPlayerResponse], error)
	DeleteTable(context.Context, *connect.Request[api.DeleteTableRequest]) (*connect.Response[api.DeleteTableResponse], error)
}

// NewTableServiceClient constructs a client for the pokerledger.v1.TableService service.
// baseURL is the server root, for example https://poker.example.com.
func NewTableServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TableServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &tableServiceClient{
		createTable:       connect.NewClient[api.CreateTableRequest, api.CreateTableResponse](httpClient, baseURL+TableServiceCreateTableProcedure, opts...),
		getTable:          connect.NewClient[api.GetTableRequest, api.GetTableResponse](httpClient, baseURL+TableServiceGetTableProcedure, opts...),
		listTables:        connect.NewClient[api.ListTablesRequest, api.ListTablesResponse](httpClient, baseURL+TableServiceListTablesProcedure, opts...),
		updateTable:       connect.NewClient[api.UpdateTableRequest, api.UpdateTableResponse](httpClient, baseURL+TableServiceUpdateTableProcedure, opts...),
		toggleTableStatus: connect.NewClient[api.ToggleTableStatusRequest, api.ToggleTableStatusResponse](httpClient, baseURL+TableServiceToggleTableStatusProcedure, opts...),
		getTableBalance:   connect.NewClient[api.GetTableBalanceRequest, api.GetTableBalanceResponse](httpClient, baseURL+TableServiceGetTableBalanceProcedure, opts...),
		setFoodPlayer:     connect.NewClient[api.SetFoodPlayerRequest, api.SetFoodPlayerResponse](httpClient, baseURL+TableServiceSetFoodPlayerProcedure, opts...),
		deleteTable:       connect.NewClient[api.DeleteTableRequest, api.DeleteTableResponse](httpClient, baseURL+TableServiceDeleteTableProcedure, opts...),
	}
}

type tableServiceClient struct {
	createTable       *connect.Client[api.CreateTableRequest, api.CreateTableResponse]
	getTable          *connect.Client[api.GetTableRequest, api.GetTableResponse]
	listTables        *connect.Client[api.ListTablesRequest, api.ListTablesResponse]
	updateTable       *connect.Client[api.UpdateTableRequest, api.UpdateTableResponse]
	toggleTableStatus *connect.Client[api.ToggleTableStatusRequest, api.ToggleTableStatusResponse]
	getTableBalance   *connect.Client[api.GetTableBalanceRequest, api.GetTableBalanceResponse]
	setFoodPlayer     *connect.Client[api.SetFoodPlayerRequest, api.SetFoodPlayerResponse]
	deleteTable       *connect.Client[api.DeleteTableRequest, api.DeleteTableResponse]
}

func (c *tableServiceClient) CreateTable(ctx context.Context, req *connect.Request[api.CreateTableRequest]) (*connect.Response[api.CreateTableResponse], error) {
	return c.createTable.CallUnary(ctx, req)
}

func (c *tableServiceClient) GetTable(ctx context.Context, req *connect.Request[api.GetTableRequest]) (*connect.Response[api.GetTableResponse], error) {
	return c.getTable.CallUnary(ctx, req)
}

func (c *tableServiceClient) ListTables(ctx context.Context, req *connect.Request[api.ListTablesRequest]) (*connect.Response[api.ListTablesResponse], error) {
	return c.listTables.CallUnary(ctx, req)
}

func (c *tableServiceClient) UpdateTable(ctx context.Context, req *connect.Request[api.UpdateTableRequest]) (*connect.Response[api.UpdateTableResponse], error) {
	return c.updateTable.CallUnary(ctx, req)
}

func (c *tableServiceClient) ToggleTableStatus(ctx context.Context, req *connect.Request[api.ToggleTableStatusRequest]) (*connect.Response[api.ToggleTableStatusResponse], error) {
	return c.toggleTableStatus.CallUnary(ctx, req)
}

func (c *tableServiceClient) GetTableBalance(ctx context.Context, req *connect.Request[api.GetTableBalanceRequest]) (*connect.Response[api.GetTableBalanceResponse], error) {
	return c.getTableBalance.CallUnary(ctx, req)
}

func (c *tableServiceClient) SetFoodPlayer(ctx context.Context, req *connect.Request[api.SetFoodPlayerRequest]) (*connect.Response[api.SetFoodPlayerResponse], error) {
	return c.setFoodPlayer.CallUnary(ctx, req)
}

func (c *tableServiceClient) DeleteTable(ctx context.Context, req *connect.Request[api.DeleteTableRequest]) (*connect.Response[api.DeleteTableResponse], error) {
	return c.deleteTable.CallUnary(ctx, req)
}

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/auth"
	"github.com/mmynk/pokerledger/internal/middleware"
	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/notify"
	"github.com/mmynk/pokerledger/internal/storage/sqlstore"
	api "github.com/mmynk/pokerledger/pkg/api"
	"github.com/mmynk/pokerledger/pkg/api/apiconnect"
)

// testUserHeader carries the acting user id in tests. A value of the form
// "admin:<id>" acts as a platform admin.
const testUserHeader = "X-Test-User"

// testAuthInterceptor puts the actor named by testUserHeader into the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testUserHeader); id != "" {
				rest, admin := strings.CutPrefix(id, "admin:")
				ctx = middleware.WithActor(ctx, access.Actor{UserID: rest, Admin: admin})
			}
			return next(ctx, req)
		}
	}
}

// recordingNotifier keeps every event it receives.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingNotifier) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

type testEnv struct {
	store    *sqlstore.SQLStore
	notifier *recordingNotifier
	jwt      *auth.JWTManager

	auth    apiconnect.AuthServiceClient
	groups  apiconnect.GroupServiceClient
	tables  apiconnect.TableServiceClient
	players apiconnect.PlayerServiceClient
}

// setupTestServer serves every service over httptest backed by a temp SQLite file.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlstore.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := &recordingNotifier{}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, "admin@example.com")

	interceptors := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		)),
	))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, notifier, logger), interceptors))
	mux.Handle(apiconnect.NewTableServiceHandler(NewTableService(store, notifier, logger), interceptors))
	mux.Handle(apiconnect.NewPlayerServiceHandler(NewPlayerService(store, logger), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:    store,
		notifier: notifier,
		jwt:      jwtManager,
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		tables:   apiconnect.NewTableServiceClient(http.DefaultClient, server.URL),
		players:  apiconnect.NewPlayerServiceClient(http.DefaultClient, server.URL),
	}
}

// newUser registers a user directly in the store.
func (e *testEnv) newUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := models.NewUser(strings.ToLower(name)+"@example.com", name, "unused-hash")
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// as builds a request acting as userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

// asAdmin builds a request acting as a platform admin.
func asAdmin[T any](userID string, msg *T) *connect.Request[T] {
	return as("admin:"+userID, msg)
}

// newGroup creates a group owned by owner and adds the given members.
func (e *testEnv) newGroup(t *testing.T, owner *models.User, members map[*models.User]models.Role) *api.Group {
	t.Helper()
	ctx := context.Background()

	resp, err := e.groups.CreateGroup(ctx, as(owner.ID, &api.CreateGroupRequest{Name: owner.DisplayName + "'s game"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group
	for user, role := range members {
		_, err := e.groups.AddMember(ctx, as(owner.ID, &api.AddMemberRequest{
			GroupId: group.Id,
			Email:   user.Email,
			Role:    string(role),
		}))
		if err != nil {
			t.Fatalf("AddMember(%s) failed: %v", user.DisplayName, err)
		}
	}
	return group
}

// newTable creates a 1/2 table with a $4 minimum in groupID.
func (e *testEnv) newTable(t *testing.T, userID, groupID, name string) *api.Table {
	t.Helper()
	resp, err := e.tables.CreateTable(context.Background(), as(userID, &api.CreateTableRequest{
		GroupId:      groupID,
		Name:         name,
		SmallBlind:   100,
		BigBlind:     200,
		MinimumBuyIn: 400,
	}))
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return resp.Msg.Table
}

func (e *testEnv) addPlayer(t *testing.T, userID, tableID, name string) *api.Player {
	t.Helper()
	resp, err := e.players.AddPlayer(context.Background(), as(userID, &api.AddPlayerRequest{
		TableId: tableID,
		Name:    name,
	}))
	if err != nil {
		t.Fatalf("AddPlayer(%s) failed: %v", name, err)
	}
	return resp.Msg.Player
}

func (e *testEnv) buyIn(t *testing.T, userID, tableID, playerID string, amount int64) *api.Player {
	t.Helper()
	resp, err := e.players.AddBuyIn(context.Background(), as(userID, &api.AddBuyInRequest{
		TableId:  tableID,
		PlayerId: playerID,
		Amount:   amount,
	}))
	if err != nil {
		t.Fatalf("AddBuyIn failed: %v", err)
	}
	return resp.Msg.Player
}

func (e *testEnv) cashOut(t *testing.T, userID, tableID, playerID string, amount int64) *api.Player {
	t.Helper()
	resp, err := e.players.CashOut(context.Background(), as(userID, &api.CashOutRequest{
		TableId:  tableID,
		PlayerId: playerID,
		Amount:   amount,
	}))
	if err != nil {
		t.Fatalf("CashOut failed: %v", err)
	}
	return resp.Msg.Player
}

func (e *testEnv) toggle(t *testing.T, userID, tableID string) *api.Table {
	t.Helper()
	resp, err := e.tables.ToggleTableStatus(context.Background(), as(userID, &api.ToggleTableStatusRequest{TableId: tableID}))
	if err != nil {
		t.Fatalf("ToggleTableStatus failed: %v", err)
	}
	return resp.Msg.Table
}

// wantCode fails the test unless err carries code.
func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != code {
		t.Fatalf("expected code %v, got %v (%s)", code, connectErr.Code(), connectErr.Message())
	}
}

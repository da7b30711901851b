package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	api "github.com/mmynk/pokerledger/pkg/api"
)

type stubAuth struct{}

func (stubAuth) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("not implemented"))
}

func (stubAuth) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("not implemented"))
}

func (stubAuth) GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{User: &api.User{Id: "u1", DisplayName: "Alice"}}), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(stubAuth{}))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRouteContentTypes(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		contentType string
		wantStatus  int
	}{
		{name: "json", path: AuthServiceGetCurrentUserProcedure, contentType: "application/json", wantStatus: http.StatusOK},
		{name: "json with charset", path: AuthServiceGetCurrentUserProcedure, contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "proto", path: AuthServiceGetCurrentUserProcedure, contentType: "application/proto", wantStatus: http.StatusUnsupportedMediaType},
		{name: "grpc proto", path: AuthServiceGetCurrentUserProcedure, contentType: "application/grpc", wantStatus: http.StatusUnsupportedMediaType},
		{name: "missing content type", path: AuthServiceGetCurrentUserProcedure, wantStatus: http.StatusUnsupportedMediaType},
		{name: "unknown procedure", path: "/" + AuthServiceName + "/Logout", contentType: "application/json", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, server.URL+tt.path, strings.NewReader("{}"))
			if err != nil {
				t.Fatalf("NewRequest failed: %v", err)
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			resp, err := server.Client().Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if tt.wantStatus == http.StatusUnsupportedMediaType && resp.Header.Get("Accept-Post") == "" {
				t.Error("expected Accept-Post header on 415")
			}
		})
	}
}

func TestClientRoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := NewAuthServiceClient(server.Client(), server.URL)

	resp, err := client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Msg.User.Id != "u1" {
		t.Errorf("expected user u1, got %q", resp.Msg.User.Id)
	}

	_, err = client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Errorf("expected Unimplemented, got %v", err)
	}
}

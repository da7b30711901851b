package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pokerledger/internal/access"
	"github.com/mmynk/pokerledger/internal/auth"
	"github.com/mmynk/pokerledger/internal/models"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	if GetUserID(ctx) != "" {
		t.Error("expected empty user ID on bare context")
	}

	ctx = WithActor(ctx, access.Actor{UserID: "u1", Admin: true})
	if got := GetActor(ctx); got.UserID != "u1" || !got.Admin {
		t.Errorf("GetActor = %+v", got)
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var seen access.Actor
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetActor(ctx)
		return nil, nil
	})
	handler := RequireAuth(jwtManager, "/public")(next)

	t.Run("valid token", func(t *testing.T) {
		req := connect.NewRequest(&struct{}{})
		req.Header().Set("Authorization", "Bearer "+token)
		if _, err := handler(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen.UserID != "u1" {
			t.Errorf("actor = %+v, want u1", seen)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := handler(context.Background(), connect.NewRequest(&struct{}{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want unauthenticated", connect.CodeOf(err))
		}
	})
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"ok", nil, `"level":"DEBUG"`},
		{"caller error", connect.NewError(connect.CodeNotFound, errors.New("not found")), `"level":"WARN"`},
		{"internal error", connect.NewError(connect.CodeInternal, errors.New("boom")), `"level":"ERROR"`},
		{"plain error", errors.New("boom"), `"level":"ERROR"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			})

			ctx := WithActor(context.Background(), access.Actor{UserID: "u1"})
			_, err := LoggingInterceptor(logger)(next)(ctx, connect.NewRequest(&struct{}{}))
			if err != tt.err {
				t.Fatalf("error not passed through: %v", err)
			}

			line := buf.String()
			if !strings.Contains(line, tt.level) {
				t.Errorf("expected %s in %s", tt.level, line)
			}
			if !strings.Contains(line, `"user_id":"u1"`) {
				t.Errorf("expected user id in %s", line)
			}
		})
	}
}

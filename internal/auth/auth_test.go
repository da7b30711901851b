package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/pokerledger/internal/models"
	"github.com/mmynk/pokerledger/internal/storage"
)

// memUsers is an in-memory UserStorage.
type memUsers struct {
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return storage.ErrConflict
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemUsers(), "Boss@Example.com")

	user, err := a.Register(ctx, "  Alice@Example.com ", "", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}
	if user.DisplayName != "alice" {
		t.Errorf("display name = %q, want local part", user.DisplayName)
	}
	if user.IsAdmin {
		t.Error("alice should not be admin")
	}

	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{"duplicate email", "ALICE@example.com", "hunter2hunter2", ErrEmailExists},
		{"weak password", "bob@example.com", "short", ErrWeakPassword},
		{"invalid email", "bob", "hunter2hunter2", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.email, "", tt.pass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("admin list", func(t *testing.T) {
		boss, err := a.Register(ctx, "boss@example.com", "Boss", "hunter2hunter2")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if !boss.IsAdmin {
			t.Error("expected boss to be admin")
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "alice@example.com", "hunter2hunter2"); err != nil {
			t.Errorf("Authenticate failed: %v", err)
		}
		if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "a@example.com", IsAdmin: true}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@example.com" || !claims.Admin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		tok, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate(strings.Repeat("x", 20)); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

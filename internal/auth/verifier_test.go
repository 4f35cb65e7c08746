package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ayush/coinlist/backend/internal/models"
)

// mockUserStore implements UserStore for testing.
type mockUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (s *mockUserStore) CreateUser(_ context.Context, username, email, hashedPw string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return nil, errors.New("duplicate email")
	}
	u := &models.User{ID: "pg-" + username, Username: username, Email: email, Password: hashedPw}
	s.users[email] = u
	out := *u
	out.Password = ""
	return &out, nil
}

func (s *mockUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	out := *u
	return &out, nil
}

func TestPostgresVerifier(t *testing.T) {
	v := NewPostgresVerifier(&mockUserStore{users: map[string]*models.User{}})
	ctx := context.Background()

	user, err := v.Register(ctx, "frank@example.com", "", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "frank" || user.Password != "" {
		t.Errorf("registered user = %+v", user)
	}
	if _, err := v.Register(ctx, "frank@example.com", "frank2", "x"); err == nil {
		t.Error("duplicate register succeeded")
	}

	got, err := v.Login(ctx, "frank@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID || got.Password != "" {
		t.Errorf("login user = %+v", got)
	}

	tests := []struct {
		email, password string
		want            error
	}{
		{"frank@example.com", "wrong", ErrInvalidCredentials},
		{"ghost@example.com", "s3cret", ErrInvalidCredentials},
		{"", "s3cret", ErrMissingFields},
	}
	for _, tt := range tests {
		if _, err := v.Login(ctx, tt.email, tt.password); !errors.Is(err, tt.want) {
			t.Errorf("Login(%q, %q) err = %v, want %v", tt.email, tt.password, err, tt.want)
		}
	}
}

func TestUsernameFromEmail(t *testing.T) {
	tests := map[string]string{
		"alice@example.com": "alice",
		"a@b@c":             "a",
		"plain":             "plain",
		"":                  "",
	}
	for in, want := range tests {
		if got := UsernameFromEmail(in); got != want {
			t.Errorf("UsernameFromEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

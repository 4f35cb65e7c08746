package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/logging"
	"github.com/ayush/coinlist/backend/internal/models"
)

// Session is the client's view of who is logged in. The user record and
// session id are persisted in LocalStorage so the next process picks them up.
type Session struct {
	api   *API
	store *LocalStorage
	log   *slog.Logger

	mu      sync.Mutex
	user    *models.User
	sid     string
	loading bool
}

// NewSession restores any persisted user. A corrupt entry is logged and the
// session starts unauthenticated.
func NewSession(api *API, store *LocalStorage, log *slog.Logger) *Session {
	s := &Session{api: api, store: store, log: logging.Named(log, "client.session")}
	s.restore()
	return s
}

func (s *Session) restore() {
	raw, ok, err := s.store.GetItem(KeyUser)
	if err != nil {
		s.log.Error("authentication error", "error", err)
		return
	}
	if !ok {
		return
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Error("authentication error", "error", err)
		return
	}
	sid, _, _ := s.store.GetItem(KeySession)
	s.user, s.sid = &user, sid
}

// User returns the current user or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SessionID returns the server session id, empty when logged out.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sid
}

// Loading reports whether a login or registration is in progress.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Login authenticates against the service and persists the result.
func (s *Session) Login(ctx context.Context, email, password string) error {
	err := s.establish(func() (string, *models.User, error) {
		return s.api.Login(ctx, email, password)
	})
	if err != nil {
		s.log.Error("login error", "error", err)
		return fmt.Errorf("%w: %w", auth.ErrLoginFailed, err)
	}
	return nil
}

// Register creates an account and persists the resulting session.
func (s *Session) Register(ctx context.Context, email, username, password string) error {
	err := s.establish(func() (string, *models.User, error) {
		return s.api.Register(ctx, email, username, password)
	})
	if err != nil {
		s.log.Error("registration error", "error", err)
		return fmt.Errorf("%w: %w", auth.ErrRegisterFailed, err)
	}
	return nil
}

// AdminLogin opens an admin session. A rejected pair is reported as
// auth.ErrInvalidCredentials.
func (s *Session) AdminLogin(ctx context.Context, username, password string) error {
	err := s.establish(func() (string, *models.User, error) {
		return s.api.AdminLogin(ctx, username, password)
	})
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return auth.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error("admin login error", "error", err)
		return fmt.Errorf("%w: %w", auth.ErrLoginFailed, err)
	}
	return nil
}

// Logout always clears the persisted session and the current user, even
// when the server cannot be reached, and returns the login path.
func (s *Session) Logout(ctx context.Context) string {
	s.mu.Lock()
	sid := s.sid
	s.user, s.sid = nil, ""
	s.mu.Unlock()

	if sid == "" {
		// restore drops the id when the stored user is unreadable
		sid, _, _ = s.store.GetItem(KeySession)
	}
	if sid != "" {
		if err := s.api.Logout(ctx, sid); err != nil {
			s.log.Warn("logout request failed", "error", err)
		}
	}
	if err := s.store.RemoveItem(KeyUser); err != nil {
		s.log.Error("clear stored user", "error", err)
	}
	if err := s.store.RemoveItem(KeySession); err != nil {
		s.log.Error("clear stored session", "error", err)
	}
	return auth.LoginPath
}

func (s *Session) establish(call func() (string, *models.User, error)) error {
	s.setLoading(true)
	defer s.setLoading(false)

	sid, user, err := call()
	if err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.SetItem(KeyUser, string(data)); err != nil {
		return err
	}
	if err := s.store.SetItem(KeySession, sid); err != nil {
		return err
	}

	s.mu.Lock()
	s.user, s.sid = user, sid
	s.mu.Unlock()
	return nil
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

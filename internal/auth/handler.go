package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayush/coinlist/backend/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// Register creates a user and logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.manager.Register(r.Context(), req.Email, req.Username, req.Password)
	switch {
	case errors.Is(err, ErrMissingFields):
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	case err != nil:
		writeError(w, http.StatusConflict, "Failed to register")
		return
	}

	setSessionCookie(w, sid)
	writeJSON(w, http.StatusCreated, user)
}

// Login authenticates a user and creates a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.manager.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrMissingFields):
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, "Failed to login")
		return
	}

	setSessionCookie(w, sid)
	writeJSON(w, http.StatusOK, user)
}

// AdminLogin opens an admin session.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.manager.AdminLogin(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	setSessionCookie(w, sid)
	writeJSON(w, http.StatusOK, user)
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var sid string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		sid = cookie.Value
	}
	redirect := h.manager.Logout(r.Context(), sid)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	w.Header().Set("Location", redirect)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out", "redirect": redirect})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

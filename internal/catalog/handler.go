package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/logging"
	"github.com/ayush/coinlist/backend/internal/models"
)

// MaxLogoSize bounds logo uploads.
const MaxLogoSize = 2 << 20

var logoTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Handler holds catalog HTTP handlers.
type Handler struct {
	store Store
	files FileStore
	users UserCounter
	log   *slog.Logger
	now   func() time.Time
	intn  func(int) int
}

func NewHandler(store Store, files FileStore, users UserCounter, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		files: files,
		users: users,
		log:   logging.Named(log, "catalog"),
		now:   time.Now,
		intn:  rand.IntN,
	}
}

// ListCoins returns {coins: [...]} filtered and sorted by the query string.
func (h *Handler) ListCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.store.ListCoins(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list coins", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"coins": Filter(coins, QueryFromValues(r.URL.Query())),
	})
}

// PromotedCoins returns the sponsored listings.
func (h *Handler) PromotedCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.store.ListCoins(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list coins", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"coins": Promoted(coins)})
}

// GetCoin returns a single coin.
func (h *Handler) GetCoin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	coin, err := h.store.GetCoin(r.Context(), id)
	if IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "get coin", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, coin)
}

// ListSubmissions returns {submissions: [...]}.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

// CreateSubmission queues a coin for review.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Name == "" || req.Symbol == "" || req.Network == "" {
		writeError(w, http.StatusBadRequest, "name, symbol and network are required")
		return
	}

	sub := &models.Submission{
		Name:            req.Name,
		Symbol:          req.Symbol,
		Network:         req.Network,
		Category:        req.Category,
		Website:         req.Website,
		ContractAddress: req.ContractAddress,
		Description:     req.Description,
		SubmittedBy:     user.ID,
		Status:          models.SubmissionPending,
	}
	id, err := h.store.InsertSubmission(r.Context(), sub)
	if err != nil {
		h.log.ErrorContext(r.Context(), "insert submission", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save submission")
		return
	}

	saved, err := h.store.GetSubmission(r.Context(), id)
	if err != nil {
		saved = sub
	}
	h.log.InfoContext(r.Context(), "submission created", "id", id, "symbol", sub.Symbol, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, saved)
}

// UploadLogo stores the request body as the submission's logo.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	id := chi.URLParam(r, "id")

	sub, err := h.store.GetSubmission(r.Context(), id)
	if IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "get submission", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if sub.SubmittedBy != user.ID && !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "not your submission")
		return
	}

	ct := r.Header.Get("Content-Type")
	if !logoTypes[ct] {
		writeError(w, http.StatusUnsupportedMediaType, "logo must be png, jpeg, webp or svg")
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxLogoSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "logo too large")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty logo")
		return
	}

	key := fmt.Sprintf("submissions/%s/logo", id)
	if err := h.files.Upload(r.Context(), key, data, ct); err != nil {
		h.log.ErrorContext(r.Context(), "logo upload", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	if err := h.store.SetSubmissionLogo(r.Context(), id, key); err != nil {
		h.log.ErrorContext(r.Context(), "set submission logo", "id", id, "error", err)
		if err := h.files.Remove(r.Context(), key); err != nil {
			h.log.ErrorContext(r.Context(), "logo cleanup", "key", key, "error", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to save submission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"logoKey": key})
}

// DownloadLogo streams a submission logo.
func (h *Handler) DownloadLogo(w http.ResponseWriter, r *http.Request) {
	sub, err := h.store.GetSubmission(r.Context(), chi.URLParam(r, "id"))
	if err != nil || sub.LogoKey == "" {
		writeError(w, http.StatusNotFound, "logo not available")
		return
	}
	data, ct, err := h.files.Download(r.Context(), sub.LogoKey)
	if err != nil {
		h.log.ErrorContext(r.Context(), "logo download", "key", sub.LogoKey, "error", err)
		writeError(w, http.StatusInternalServerError, "download failed")
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Write(data)
}

// Dashboard returns the admin stats and the mock 7-day activity series.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coins, err := h.store.ListCoins(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "error fetching dashboard data", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	subs, err := h.store.ListSubmissions(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "error fetching dashboard data", "error", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	users, err := h.users.CountUsers(ctx)
	if err != nil {
		h.log.WarnContext(ctx, "count users", "error", err)
	}

	writeJSON(w, http.StatusOK, models.Dashboard{
		Stats:    Summarize(coins, subs, users),
		Activity: Activity(h.now(), h.intn),
	})
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

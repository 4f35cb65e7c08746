package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ayush/coinlist/backend/internal/auth"
	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/models"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Path, e.Status, e.Message)
}

// checkResp returns an *APIError if the status is not 2xx.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	return &APIError{Status: resp.StatusCode, Path: path, Message: msg}
}

// API calls the coin listing service over HTTP.
type API struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Login calls POST /api/auth/login and returns the session id and user.
func (c *API) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return c.authenticate(ctx, "/api/auth/login", models.LoginRequest{Email: email, Password: password})
}

// Register calls POST /api/auth/register.
func (c *API) Register(ctx context.Context, email, username, password string) (string, *models.User, error) {
	return c.authenticate(ctx, "/api/auth/register", models.RegisterRequest{
		Email: email, Username: username, Password: password,
	})
}

// AdminLogin calls POST /api/auth/admin/login.
func (c *API) AdminLogin(ctx context.Context, username, password string) (string, *models.User, error) {
	return c.authenticate(ctx, "/api/auth/admin/login", models.AdminLoginRequest{Username: username, Password: password})
}

// Logout calls POST /api/auth/logout.
func (c *API) Logout(ctx context.Context, sessionID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout", sessionID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResp(resp, "/api/auth/logout")
}

// Me calls GET /api/auth/me.
func (c *API) Me(ctx context.Context, sessionID string) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/api/auth/me", sessionID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Coins calls GET /api/coins with the query's filters.
func (c *API) Coins(ctx context.Context, q catalog.Query) ([]models.Coin, error) {
	path := "/api/coins"
	if v := q.Values().Encode(); v != "" {
		path += "?" + v
	}
	var result struct {
		Coins []models.Coin `json:"coins"`
	}
	if err := c.getJSON(ctx, path, "", &result); err != nil {
		return nil, err
	}
	return result.Coins, nil
}

// Promoted calls GET /api/coins/promoted. Coins come back in catalog order.
func (c *API) Promoted(ctx context.Context) ([]models.Coin, error) {
	var result struct {
		Coins []models.Coin `json:"coins"`
	}
	if err := c.getJSON(ctx, "/api/coins/promoted", "", &result); err != nil {
		return nil, err
	}
	return result.Coins, nil
}

// Submissions calls GET /api/submissions. Admin sessions only.
func (c *API) Submissions(ctx context.Context, sessionID string) ([]models.Submission, error) {
	var result struct {
		Submissions []models.Submission `json:"submissions"`
	}
	if err := c.getJSON(ctx, "/api/submissions", sessionID, &result); err != nil {
		return nil, err
	}
	return result.Submissions, nil
}

// Dashboard calls GET /api/admin/dashboard. Admin sessions only.
func (c *API) Dashboard(ctx context.Context, sessionID string) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := c.getJSON(ctx, "/api/admin/dashboard", sessionID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *API) authenticate(ctx context.Context, path string, req any) (string, *models.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return "", nil, err
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == auth.SessionCookie {
			return ck.Value, &user, nil
		}
	}
	return "", nil, fmt.Errorf("%s: no session cookie in response", path)
}

func (c *API) getJSON(ctx context.Context, path, sessionID string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, sessionID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	return nil
}

func (c *API) do(ctx context.Context, method, path, sessionID string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: sessionID})
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

package models

import "time"

// RoleAdmin marks users authenticated through the admin login.
const RoleAdmin = "admin"

// User is the record held in a session. Registered users additionally
// live in the PostgreSQL users table when running in live mode.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	Password  string    `json:"-"` // never serialize
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IsAdmin reports whether the user came through the admin login.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RegisterRequest is the JSON body for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginRequest is the JSON body for POST /api/auth/admin/login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

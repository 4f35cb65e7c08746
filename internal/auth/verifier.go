package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/coinlist/backend/internal/models"
)

var (
	// ErrMissingFields is returned when a required credential is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials is returned when a credential pair is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginFailed wraps every failed login.
	ErrLoginFailed = errors.New("login failed")
	// ErrRegisterFailed wraps every failed registration.
	ErrRegisterFailed = errors.New("registration failed")
)

// MockUserID is the fixed id every mock login receives.
const MockUserID = "user-123"

// Verifier turns credentials into a user. Implementations decide how much
// checking happens; the mock one does none.
type Verifier interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, email, username, password string) (*models.User, error)
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// RedactEmail keeps the first character of the local part and the domain,
// for log lines about accounts that may not exist.
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if local == "" {
		return "***"
	}
	r, _ := utf8.DecodeRuneInString(local)
	if !ok {
		return string(r) + "***"
	}
	return string(r) + "***@" + domain
}

// MockVerifier accepts any non-empty credential pair.
type MockVerifier struct{}

func (MockVerifier) Login(_ context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	return &models.User{
		ID:       MockUserID,
		Email:    email,
		Username: UsernameFromEmail(email),
	}, nil
}

func (MockVerifier) Register(_ context.Context, email, username, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if username == "" {
		username = UsernameFromEmail(email)
	}
	return &models.User{
		ID:       fmt.Sprintf("user-%d", rand.IntN(1000)),
		Email:    email,
		Username: username,
	}, nil
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostgresVerifier checks credentials against registered users.
type PostgresVerifier struct {
	users UserStore
}

func NewPostgresVerifier(users UserStore) *PostgresVerifier {
	return &PostgresVerifier{users: users}
}

func (v *PostgresVerifier) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""
	return user, nil
}

func (v *PostgresVerifier) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if username == "" {
		username = UsernameFromEmail(email)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return v.users.CreateUser(ctx, username, email, string(hashed))
}

// AdminVerifier guards the admin panel with a single configured credential pair.
type AdminVerifier struct {
	username string
	hash     []byte
}

func NewAdminVerifier(username, password string) (*AdminVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminVerifier{username: username, hash: hash}, nil
}

func (v *AdminVerifier) Verify(_ context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if !nameOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return &models.User{
		ID:       "admin",
		Email:    username + "@admin.local",
		Username: username,
		Role:     models.RoleAdmin,
	}, nil
}

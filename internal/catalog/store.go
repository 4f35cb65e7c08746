package catalog

import (
	"context"
	"errors"

	"github.com/ayush/coinlist/backend/internal/models"
)

// ErrNotFound is returned by stores when a coin or submission does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for catalog persistence.
type Store interface {
	ListCoins(ctx context.Context) ([]models.Coin, error)
	GetCoin(ctx context.Context, id int64) (*models.Coin, error)
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	InsertSubmission(ctx context.Context, s *models.Submission) (string, error)
	SetSubmissionLogo(ctx context.Context, id, key string) error
}

// FileStore defines the interface for logo object storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// UserCounter reports how many registered users exist.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// StaticUserCount is a UserCounter returning a fixed number.
type StaticUserCount int64

func (n StaticUserCount) CountUsers(context.Context) (int64, error) {
	return int64(n), nil
}

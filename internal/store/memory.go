package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/models"
)

// MemoryStore is the mock-mode catalog: sample data held in process memory
// and rebuilt on every start.
type MemoryStore struct {
	mu          sync.RWMutex
	coins       []models.Coin
	submissions []models.Submission
	now         func() time.Time
}

func NewMemoryStore(coins []models.Coin, submissions []models.Submission) *MemoryStore {
	return &MemoryStore{
		coins:       slices.Clone(coins),
		submissions: slices.Clone(submissions),
		now:         time.Now,
	}
}

func (s *MemoryStore) ListCoins(context.Context) ([]models.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.coins), nil
}

func (s *MemoryStore) GetCoin(_ context.Context, id int64) (*models.Coin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coins {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, catalog.ErrNotFound
}

// ListSubmissions returns pending submissions, newest first.
func (s *MemoryStore) ListSubmissions(context.Context) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if sub.Status == models.SubmissionPending {
			out = append(out, sub)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Submission) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		sub := s.submissions[i]
		return &sub, nil
	}
	return nil, catalog.ErrNotFound
}

func (s *MemoryStore) InsertSubmission(_ context.Context, sub *models.Submission) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = s.now()
	s.submissions = append(s.submissions, *sub)
	return sub.ID.Hex(), nil
}

func (s *MemoryStore) SetSubmissionLogo(_ context.Context, id, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return catalog.ErrNotFound
	}
	s.submissions[i].LogoKey = key
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, sub := range s.submissions {
		if sub.ID.Hex() == id {
			return i
		}
	}
	return -1
}

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryFiles stands in for MinIO in mock mode.
type MemoryFiles struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{objects: make(map[string]memoryObject)}
}

func (f *MemoryFiles) Upload(_ context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = memoryObject{data: slices.Clone(data), contentType: contentType}
	return nil
}

func (f *MemoryFiles) Download(_ context.Context, key string) ([]byte, string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	obj, ok := f.objects[key]
	if !ok {
		return nil, "", catalog.ErrNotFound
	}
	return slices.Clone(obj.data), obj.contentType, nil
}

func (f *MemoryFiles) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

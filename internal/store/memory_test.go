package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayush/coinlist/backend/internal/catalog"
	"github.com/ayush/coinlist/backend/internal/models"
)

func TestMemoryStoreCoinsAreCopies(t *testing.T) {
	s := NewMemoryStore(catalog.SeedCoins(), nil)
	ctx := context.Background()

	coins, err := s.ListCoins(ctx)
	if err != nil {
		t.Fatal(err)
	}
	coins[0].Votes = -1

	again, _ := s.ListCoins(ctx)
	if again[0].Votes == -1 {
		t.Error("ListCoins exposed internal slice")
	}

	c, err := s.GetCoin(ctx, 2)
	if err != nil || c.Symbol != "DOGM" {
		t.Fatalf("GetCoin(2) = %+v, %v", c, err)
	}
	if _, err := s.GetCoin(ctx, 42); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("GetCoin(42) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSubmissions(t *testing.T) {
	s := NewMemoryStore(nil, catalog.SeedSubmissions())
	s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	sub := &models.Submission{Name: "Newcoin", Symbol: "NEW", Status: models.SubmissionPending}
	id, err := s.InsertSubmission(ctx, sub)
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID.Hex() != id || sub.CreatedAt.Year() != 2025 {
		t.Errorf("inserted = %+v", sub)
	}

	// non-pending entries are not listed
	if _, err := s.InsertSubmission(ctx, &models.Submission{Name: "Old", Status: "approved"}); err != nil {
		t.Fatal(err)
	}

	subs, err := s.ListSubmissions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 3 || subs[0].ID.Hex() != id {
		t.Fatalf("ListSubmissions = %d entries, first %s", len(subs), subs[0].Name)
	}

	if err := s.SetSubmissionLogo(ctx, id, "submissions/x/logo"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetSubmission(ctx, id)
	if err != nil || got.LogoKey != "submissions/x/logo" {
		t.Errorf("GetSubmission = %+v, %v", got, err)
	}
	if err := s.SetSubmissionLogo(ctx, "nope", "k"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("SetSubmissionLogo(nope) err = %v", err)
	}
	if _, err := s.GetSubmission(ctx, "nope"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("GetSubmission(nope) err = %v", err)
	}
}

func TestMemoryFiles(t *testing.T) {
	f := NewMemoryFiles()
	ctx := context.Background()

	if _, _, err := f.Download(ctx, "k"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Download(missing) err = %v", err)
	}
	if err := f.Upload(ctx, "k", []byte("png"), "image/png"); err != nil {
		t.Fatal(err)
	}
	data, ct, err := f.Download(ctx, "k")
	if err != nil || string(data) != "png" || ct != "image/png" {
		t.Errorf("Download = %q %q %v", data, ct, err)
	}
	if err := f.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.Download(ctx, "k"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Download after remove err = %v", err)
	}
}

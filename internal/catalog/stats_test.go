package catalog

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	stats := Summarize(SeedCoins(), SeedSubmissions(), MockUserCount)

	if stats.TotalCoins != 5 {
		t.Errorf("TotalCoins = %d, want 5", stats.TotalCoins)
	}
	if stats.PendingSubmissions != 2 {
		t.Errorf("PendingSubmissions = %d, want 2", stats.PendingSubmissions)
	}
	if want := int64(12500 + 9800 + 7500 + 3100 + 5400); stats.TotalVotes != want {
		t.Errorf("TotalVotes = %d, want %d", stats.TotalVotes, want)
	}
	if stats.TotalUsers != MockUserCount {
		t.Errorf("TotalUsers = %d, want %d", stats.TotalUsers, MockUserCount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, nil, 0)
	if stats.TotalCoins != 0 || stats.TotalVotes != 0 || stats.PendingSubmissions != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestActivity(t *testing.T) {
	now := time.Date(2024, 3, 3, 15, 0, 0, 0, time.UTC)
	var calls []int
	intn := func(n int) int {
		calls = append(calls, n)
		return n - 1
	}

	points := Activity(now, intn)
	if len(points) != ActivityDays {
		t.Fatalf("len = %d, want %d", len(points), ActivityDays)
	}
	if points[0].Date != "Feb 26" || points[6].Date != "Mar 3" {
		t.Errorf("dates = %s..%s, want Feb 26..Mar 3", points[0].Date, points[6].Date)
	}
	for _, p := range points {
		if p.Coins != 9 || p.Votes != 499 {
			t.Errorf("point %+v, want coins 9 votes 499", p)
		}
	}
	if len(calls) != 2*ActivityDays || calls[0] != 10 || calls[1] != 500 {
		t.Errorf("intn calls = %v", calls)
	}
}

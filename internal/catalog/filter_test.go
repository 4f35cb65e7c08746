package catalog

import (
	"net/url"
	"reflect"
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ayush/coinlist/backend/internal/models"
)

func ids(coins []models.Coin) []int64 {
	out := make([]int64, len(coins))
	for i, c := range coins {
		out[i] = c.ID
	}
	return out
}

func TestFilterSortByVotes(t *testing.T) {
	coins := []models.Coin{
		{ID: 2, Name: "B", Votes: 50},
		{ID: 1, Name: "A", Votes: 100},
	}
	got := Filter(coins, Query{Sort: SortVotes})
	if want := []int64{1, 2}; !slices.Equal(ids(got), want) {
		t.Errorf("sorted ids = %v, want %v", ids(got), want)
	}
}

func TestFilterCategoryCaseInsensitive(t *testing.T) {
	coins := SeedCoins()
	got := Filter(coins, Query{Category: "defi", Sort: SortVotes})
	if len(got) != 1 || got[0].Symbol != "SAFE" {
		t.Fatalf("defi filter = %v, want only SAFE", ids(got))
	}
	for _, c := range got {
		if c.Category != "DeFi" {
			t.Errorf("coin %s has category %q", c.Symbol, c.Category)
		}
	}
}

func TestFilter(t *testing.T) {
	coins := SeedCoins()
	tests := []struct {
		name string
		q    Query
		want []int64
	}{
		{"default votes", Query{Sort: SortVotes}, []int64{1, 2, 3, 5, 4}},
		{"all filters", Query{Category: All, Network: "ALL", Sort: SortVotes}, []int64{1, 2, 3, 5, 4}},
		{"search name", Query{Search: "moon", Sort: SortVotes}, []int64{2}},
		{"search symbol", Query{Search: "nnet"}, []int64{5}},
		{"network", Query{Network: "ethereum", Sort: SortVotes}, []int64{1, 5}},
		{"category and network", Query{Category: "meme", Network: "bsc"}, []int64{2}},
		{"newest", Query{Sort: SortNewest}, []int64{4, 5, 3, 2, 1}},
		{"market cap", Query{Sort: SortMarketCap}, []int64{5, 3, 2, 1, 4}},
		{"unknown sort keeps order", Query{Sort: "hype"}, []int64{1, 2, 3, 4, 5}},
		{"no match", Query{Search: "zzz"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(coins, tt.q)); !slices.Equal(got, tt.want) {
				t.Errorf("Filter(%+v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestFilterIsPureAndIdempotent(t *testing.T) {
	coins := SeedCoins()
	before := slices.Clone(coins)

	for _, q := range []Query{
		{Sort: SortVotes},
		{Sort: SortNewest, Network: "ethereum"},
		{Sort: SortMarketCap, Search: "e"},
	} {
		once := Filter(coins, q)
		twice := Filter(once, q)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("%+v: not idempotent: %v then %v", q, ids(once), ids(twice))
		}
		if !reflect.DeepEqual(coins, before) {
			t.Fatalf("%+v: input slice was modified", q)
		}
	}
}

func TestPromoted(t *testing.T) {
	got := Promoted(SeedCoins())
	if want := []int64{1, 3}; !slices.Equal(ids(got), want) {
		t.Errorf("Promoted = %v, want %v", ids(got), want)
	}
	if got := Promoted(nil); got == nil || len(got) != 0 {
		t.Errorf("Promoted(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1.2M", "1200000"},
		{"$950K", "950000"},
		{"$12.4m", "12400000"},
		{"$2B", "2000000000"},
		{"$1,250", "1250"},
		{"", "0"},
		{"n/a", "0"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{"search": {"doge"}, "network": {"bsc"}})
	if q.Sort != SortVotes {
		t.Errorf("default sort = %q, want votes", q.Sort)
	}
	if q.Search != "doge" || q.Network != "bsc" || q.Category != "" {
		t.Errorf("unexpected query %+v", q)
	}

	round := QueryFromValues(q.Values())
	if round != q {
		t.Errorf("round trip = %+v, want %+v", round, q)
	}
}

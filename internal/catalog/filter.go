package catalog

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayush/coinlist/backend/internal/models"
)

// Sort keys accepted by Filter.
const (
	SortVotes     = "votes"
	SortNewest    = "newest"
	SortMarketCap = "marketCap"
)

// All disables the category or network filter.
const All = "all"

// Query describes a coin listing view.
type Query struct {
	Search   string
	Category string
	Network  string
	Sort     string
}

// QueryFromValues reads search, category, network and sort parameters.
// An absent sort defaults to votes.
func QueryFromValues(v url.Values) Query {
	q := Query{
		Search:   v.Get("search"),
		Category: v.Get("category"),
		Network:  v.Get("network"),
		Sort:     v.Get("sort"),
	}
	if q.Sort == "" {
		q.Sort = SortVotes
	}
	return q
}

// Values is the inverse of QueryFromValues, omitting empty fields.
func (q Query) Values() url.Values {
	v := url.Values{}
	for k, s := range map[string]string{
		"search": q.Search, "category": q.Category, "network": q.Network, "sort": q.Sort,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	return v
}

// Filter returns the coins matching q in q.Sort order. The input slice is
// left untouched. Unknown sort keys keep input order.
func Filter(coins []models.Coin, q Query) []models.Coin {
	search := strings.ToLower(q.Search)
	out := make([]models.Coin, 0, len(coins))
	for _, c := range coins {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Symbol), search) {
			continue
		}
		if !matches(q.Category, c.Category) || !matches(q.Network, c.Network) {
			continue
		}
		out = append(out, c)
	}

	switch q.Sort {
	case SortVotes:
		slices.SortStableFunc(out, func(a, b models.Coin) int {
			return cmpDesc(a.Votes, b.Votes)
		})
	case SortNewest:
		slices.SortStableFunc(out, func(a, b models.Coin) int {
			return parseDate(b.DateAdded).Compare(parseDate(a.DateAdded))
		})
	case SortMarketCap:
		slices.SortStableFunc(out, func(a, b models.Coin) int {
			return ParseAmount(b.MarketCap).Cmp(ParseAmount(a.MarketCap))
		})
	}
	return out
}

// Promoted returns the promoted coins in input order.
func Promoted(coins []models.Coin) []models.Coin {
	out := make([]models.Coin, 0)
	for _, c := range coins {
		if c.Promoted {
			out = append(out, c)
		}
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || strings.EqualFold(want, All) || strings.EqualFold(want, got)
}

func cmpDesc(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

var suffixes = map[byte]decimal.Decimal{
	'K': decimal.NewFromInt(1_000),
	'M': decimal.NewFromInt(1_000_000),
	'B': decimal.NewFromInt(1_000_000_000),
	'T': decimal.NewFromInt(1_000_000_000_000),
}

// ParseAmount parses display amounts such as "$1.2M" or "950K".
// Malformed input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	mult := decimal.NewFromInt(1)
	if m, ok := suffixes[strings.ToUpper(s[len(s)-1:])[0]]; ok {
		mult = m
		s = s[:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Mul(mult)
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ayush/coinlist/backend/internal/models"
)

func printCoins(out io.Writer, coins []models.Coin) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSYMBOL\tPRICE\t24H\tMCAP\tNETWORK\tVOTES\tFLAGS")
	for _, c := range coins {
		fmt.Fprintf(tw, "%s\t%s\t$%s\t%+.1f%%\t%s\t%s\t%d\t%s\n",
			c.Name, c.Symbol, c.Price.StringFixed(8), c.Change24h,
			c.MarketCap, c.Network, c.Votes, flags(c))
	}
	tw.Flush()
}

func printSubmissions(out io.Writer, subs []models.Submission) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSYMBOL\tNETWORK\tCATEGORY\tSUBMITTED BY\tCREATED")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID.Hex(), s.Name, s.Symbol, s.Network, s.Category, s.SubmittedBy,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func flags(c models.Coin) string {
	var f []string
	if c.Promoted {
		f = append(f, "promoted")
	}
	if c.Featured {
		f = append(f, "featured")
	}
	if c.KYC {
		f = append(f, "kyc")
	}
	if c.Audit {
		f = append(f, "audit")
	}
	return strings.Join(f, ",")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

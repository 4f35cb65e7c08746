package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coin is a display-only listing entry. Seeded once, never modified.
type Coin struct {
	ID        int64   `json:"id"         bson:"id"`
	Name      string  `json:"name"       bson:"name"`
	Symbol    string  `json:"symbol"     bson:"symbol"`
	Logo      string  `json:"logo"       bson:"logo"`
	Price     Price   `json:"price"      bson:"price"`
	Change24h float64 `json:"change24h"  bson:"change24h"`
	MarketCap string  `json:"marketCap"  bson:"market_cap"`
	Volume    string  `json:"volume"     bson:"volume"`
	Network   string  `json:"network"    bson:"network"`
	Votes     int64   `json:"votes"      bson:"votes"`
	Category  string  `json:"category"   bson:"category"`
	Status    string  `json:"status"     bson:"status"`
	Promoted  bool    `json:"promoted"   bson:"promoted"`
	Featured  bool    `json:"featured"   bson:"featured"`
	KYC       bool    `json:"kyc"        bson:"kyc"`
	Audit     bool    `json:"audit"      bson:"audit"`
	DateAdded string  `json:"dateAdded"  bson:"date_added"`
}

// SubmissionPending is the only status a new submission can have.
const SubmissionPending = "pending"

// Submission is a coin listing request waiting for review.
type Submission struct {
	ID              primitive.ObjectID `json:"id"              bson:"_id,omitempty"`
	Name            string             `json:"name"            bson:"name"`
	Symbol          string             `json:"symbol"          bson:"symbol"`
	Network         string             `json:"network"         bson:"network"`
	Category        string             `json:"category"        bson:"category"`
	Website         string             `json:"website"         bson:"website"`
	ContractAddress string             `json:"contractAddress" bson:"contract_address"`
	Description     string             `json:"description"     bson:"description"`
	LogoKey         string             `json:"logoKey"         bson:"logo_key"`
	SubmittedBy     string             `json:"submittedBy"     bson:"submitted_by"`
	Status          string             `json:"status"          bson:"status"`
	CreatedAt       time.Time          `json:"createdAt"       bson:"created_at"`
}

// SubmissionRequest is the JSON body for POST /api/submissions.
type SubmissionRequest struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Network         string `json:"network"`
	Category        string `json:"category"`
	Website         string `json:"website"`
	ContractAddress string `json:"contractAddress"`
	Description     string `json:"description"`
}

// DashboardStats are the admin dashboard headline numbers.
type DashboardStats struct {
	TotalCoins         int   `json:"totalCoins"`
	PendingSubmissions int   `json:"pendingSubmissions"`
	TotalVotes         int64 `json:"totalVotes"`
	TotalUsers         int64 `json:"totalUsers"`
}

// ActivityPoint is one day of the dashboard activity chart.
type ActivityPoint struct {
	Date  string `json:"date"`
	Coins int    `json:"coins"`
	Votes int    `json:"votes"`
}

// Dashboard is the response of GET /api/admin/dashboard.
type Dashboard struct {
	Stats    DashboardStats  `json:"stats"`
	Activity []ActivityPoint `json:"activity"`
}

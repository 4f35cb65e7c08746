package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/coinlist/backend/internal/models"
)

// MockUserCount stands in for the user total when no user table exists.
const MockUserCount = 1250

const placeholderLogo = "/placeholder.svg?height=32&width=32"

// SeedCoins returns a fresh copy of the sample listing.
func SeedCoins() []models.Coin {
	return []models.Coin{
		{
			ID: 1, Name: "Memereum", Symbol: "MEME", Logo: placeholderLogo,
			Price: models.MustPrice("0.000001"), Change24h: 15.7,
			MarketCap: "$1.2M", Volume: "$450K", Network: "Ethereum",
			Votes: 12500, Category: "Meme", Status: "active",
			Promoted: true, Featured: true, KYC: true, Audit: true,
			DateAdded: "2024-03-01",
		},
		{
			ID: 2, Name: "DogeMoon", Symbol: "DOGM", Logo: placeholderLogo,
			Price: models.MustPrice("0.0000023"), Change24h: 8.3,
			MarketCap: "$3.5M", Volume: "$780K", Network: "BSC",
			Votes: 9800, Category: "Meme", Status: "active",
			Featured: true, KYC: true, Audit: true,
			DateAdded: "2024-03-02",
		},
		{
			ID: 3, Name: "SafeFinance", Symbol: "SAFE", Logo: placeholderLogo,
			Price: models.MustPrice("0.0045"), Change24h: -2.1,
			MarketCap: "$8.7M", Volume: "$1.2M", Network: "Solana",
			Votes: 7500, Category: "DeFi", Status: "active",
			Promoted: true, KYC: true, Audit: true,
			DateAdded: "2024-03-03",
		},
		{
			ID: 4, Name: "PixelQuest", Symbol: "PIXL", Logo: placeholderLogo,
			Price: models.MustPrice("0.012"), Change24h: 4.6,
			MarketCap: "$950K", Volume: "$120K", Network: "Arbitrum",
			Votes: 3100, Category: "Gaming", Status: "active",
			KYC: true,
			DateAdded: "2024-03-05",
		},
		{
			ID: 5, Name: "NeuralNet", Symbol: "NNET", Logo: placeholderLogo,
			Price: models.MustPrice("0.31"), Change24h: -6.4,
			MarketCap: "$12.4M", Volume: "$2.3M", Network: "Ethereum",
			Votes: 5400, Category: "AI", Status: "active",
			Featured: true, Audit: true,
			DateAdded: "2024-03-04",
		},
	}
}

// SeedSubmissions returns sample pending submissions.
func SeedSubmissions() []models.Submission {
	created := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	return []models.Submission{
		{
			ID: primitive.NewObjectID(), Name: "ShibaRocket", Symbol: "SHRK",
			Network: "BSC", Category: "Meme", Website: "https://shibarocket.example",
			Description: "Community meme token.", SubmittedBy: "user-123",
			Status: models.SubmissionPending, CreatedAt: created,
		},
		{
			ID: primitive.NewObjectID(), Name: "YieldLoop", Symbol: "YLOOP",
			Network: "Arbitrum", Category: "DeFi", Website: "https://yieldloop.example",
			Description: "Auto-compounding vaults.", SubmittedBy: "user-123",
			Status: models.SubmissionPending, CreatedAt: created.Add(time.Hour),
		},
	}
}

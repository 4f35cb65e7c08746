package catalog

import (
	"time"

	"github.com/ayush/coinlist/backend/internal/models"
)

// ActivityDays is the length of the dashboard activity series.
const ActivityDays = 7

// Summarize computes the dashboard headline numbers.
func Summarize(coins []models.Coin, submissions []models.Submission, users int64) models.DashboardStats {
	var votes int64
	for _, c := range coins {
		votes += c.Votes
	}
	return models.DashboardStats{
		TotalCoins:         len(coins),
		PendingSubmissions: len(submissions),
		TotalVotes:         votes,
		TotalUsers:         users,
	}
}

// Activity builds the mock activity series ending at now, oldest first.
// intn must return a value in [0, n), e.g. rand.IntN.
func Activity(now time.Time, intn func(n int) int) []models.ActivityPoint {
	points := make([]models.ActivityPoint, ActivityDays)
	for i := range points {
		day := now.AddDate(0, 0, -(ActivityDays - 1 - i))
		points[i] = models.ActivityPoint{
			Date:  day.Format("Jan 2"),
			Coins: intn(10),
			Votes: intn(500),
		}
	}
	return points
}

package rating

import (
	"sort"

	"github.com/yourusername/trackday/internal/models"
)

// BuildRankings combines match and track ratings into the overall
// player ranking table. The total rating is a configurable blend:
// MatchWeight goes to the match rating, the remainder to the track
// rating. Rows are sorted descending by total; ties break by ascending
// user id so the order is deterministic. Positions are 1-based.
func BuildRankings(users []models.UserInfo, matches *MatchCalculator, tracks *TrackCalculator, cfg Config) []models.Ranking {
	rankings := make([]models.Ranking, 0, len(users))

	for _, user := range users {
		matchRating := matches.GetRating(user.ID)
		trackRating := tracks.GetRating(user.ID)
		rankings = append(rankings, models.Ranking{
			User:        user,
			MatchRating: matchRating,
			TrackRating: trackRating,
			TotalRating: cfg.MatchWeight*matchRating + (1.0-cfg.MatchWeight)*trackRating,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].TotalRating != rankings[j].TotalRating {
			return rankings[i].TotalRating > rankings[j].TotalRating
		}
		return rankings[i].User.ID.String() < rankings[j].User.ID.String()
	})

	for i := range rankings {
		rankings[i].Position = i + 1
	}

	return rankings
}

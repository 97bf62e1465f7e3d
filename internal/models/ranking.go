package models

// Ranking represents one row of the overall player ranking table
type Ranking struct {
	User        UserInfo `json:"user"`
	Position    int      `json:"position"`
	TotalRating float64  `json:"total_rating"`
	MatchRating float64  `json:"match_rating"`
	TrackRating float64  `json:"track_rating"`
}

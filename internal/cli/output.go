package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourusername/trackday/internal/laptime"
	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/service"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case service.RebuildSummary:
		o.printRebuildSummary(v)
	case []models.Ranking:
		o.printRankings(v)
	case *models.Leaderboard:
		o.printLeaderboard(v)
	case Prediction:
		o.printPrediction(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Prediction is the CLI view of a head-to-head matchup
type Prediction struct {
	User1       string  `json:"user1"`
	User2       string  `json:"user2"`
	Probability float64 `json:"probability"`
	User1Odds   string  `json:"user1_odds,omitempty"`
	User2Odds   string  `json:"user2_odds,omitempty"`
}

func (o *Output) printRebuildSummary(s service.RebuildSummary) {
	fmt.Printf("Rebuild completed in %s\n", s.Duration)
	fmt.Printf("  Rankings:          %d\n", s.Rankings)
	fmt.Printf("  Matches processed: %d\n", s.MatchesProcessed)
	fmt.Printf("  Matches skipped:   %d\n", s.MatchesSkipped)
	fmt.Printf("  Time entries:      %d\n", s.TimeEntries)
}

func (o *Output) printRankings(rankings []models.Ranking) {
	if len(rankings) == 0 {
		fmt.Println("No rankings yet")
		return
	}

	fmt.Printf("%-4s %-30s %10s %10s %10s\n", "POS", "PLAYER", "TOTAL", "MATCH", "TRACK")
	for _, r := range rankings {
		fmt.Printf("%-4d %-30s %10.1f %10.1f %10.1f\n",
			r.Position, displayName(r.User), r.TotalRating, r.MatchRating, r.TrackRating)
	}
}

func (o *Output) printLeaderboard(board *models.Leaderboard) {
	fmt.Printf("Track #%d (%s %s), %d entries\n",
		board.Track.Number, board.Track.Level, board.Track.Type, board.TotalEntries)

	if len(board.Entries) == 0 {
		fmt.Println("No entries on this page")
		return
	}

	fmt.Printf("%-4s %-30s %12s %12s\n", "POS", "PLAYER", "TIME", "GAP")
	for _, e := range board.Entries {
		fmt.Printf("%-4d %-30s %12s %12s\n",
			e.Gap.Position, displayName(e.User), formatDuration(e.Duration), formatGap(e.Gap.Leader))
	}
}

func (o *Output) printPrediction(p Prediction) {
	fmt.Printf("P(%s beats %s) = %.3f\n", p.User1, p.User2, p.Probability)
	if p.User1Odds != "" {
		fmt.Printf("Decimal odds: %s / %s\n", p.User1Odds, p.User2Odds)
	}
}

func displayName(u models.UserInfo) string {
	if u.ShortName != nil && *u.ShortName != "" {
		return *u.ShortName
	}
	if u.LastName != nil && *u.LastName != "" {
		return u.FirstName + " " + *u.LastName
	}
	if u.FirstName == "" {
		return u.ID.String()
	}
	return u.FirstName
}

func formatDuration(d *models.Milliseconds) string {
	if d == nil {
		return "DNF"
	}
	formatted, err := laptime.Format(*d)
	if err != nil {
		return fmt.Sprintf("%dms", *d)
	}
	return formatted
}

func formatGap(gap *models.Milliseconds) string {
	if gap == nil {
		return "-"
	}
	return fmt.Sprintf("+%.3fs", float64(*gap)/1000.0)
}

package rating

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackday/internal/models"
)

// MatchOdds is the decimal-odds pair for a head-to-head prediction
type MatchOdds struct {
	User1 decimal.Decimal `json:"user1_odds"`
	User2 decimal.Decimal `json:"user2_odds"`
}

// MatchCalculator maintains Glicko-2 ratings for a seeded roster of
// users from head-to-head match outcomes. One instance per rating
// computation job; mutating calls must not run concurrently.
type MatchCalculator struct {
	cfg     Config
	players map[uuid.UUID]*Glicko2Rating
	logger  *logrus.Logger
}

// NewMatchCalculator creates a calculator seeded with the given roster,
// every player starting at the configured initial rating.
func NewMatchCalculator(cfg Config, roster []uuid.UUID, logger *logrus.Logger) *MatchCalculator {
	c := &MatchCalculator{
		cfg:     cfg,
		players: make(map[uuid.UUID]*Glicko2Rating, len(roster)),
		logger:  logger,
	}
	for _, id := range roster {
		c.seed(id)
	}
	return c
}

func (c *MatchCalculator) seed(id uuid.UUID) {
	c.players[id] = &Glicko2Rating{
		Rating:     c.cfg.InitialRating,
		Deviation:  c.cfg.InitialDeviation,
		Volatility: c.cfg.InitialVolatility,
	}
}

// GetRating returns the current point estimate for a user, or the
// initial rating for a user that was never seeded.
func (c *MatchCalculator) GetRating(userID uuid.UUID) float64 {
	if p, ok := c.players[userID]; ok {
		return p.Rating
	}
	return c.cfg.InitialRating
}

// GetPlayer returns a snapshot of a seeded player's full rating triple
func (c *MatchCalculator) GetPlayer(userID uuid.UUID) (Glicko2Rating, bool) {
	if p, ok := c.players[userID]; ok {
		return *p, true
	}
	return Glicko2Rating{}, false
}

// Predict returns the win probability of user1 over user2. The second
// return value is false when either user is not seeded.
func (c *MatchCalculator) Predict(user1, user2 uuid.UUID) (float64, bool) {
	p1, ok := c.players[user1]
	if !ok {
		return 0, false
	}
	p2, ok := c.players[user2]
	if !ok {
		return 0, false
	}

	mu1, _ := toInternalScale(p1.Rating, p1.Deviation)
	mu2, phi2 := toInternalScale(p2.Rating, p2.Deviation)
	return expectedScore(mu1, mu2, phi2), true
}

// Odds returns two-decimal decimal odds (1/p and 1/(1-p)) for a
// head-to-head matchup; false when Predict is undefined or the
// probability is degenerate.
func (c *MatchCalculator) Odds(user1, user2 uuid.UUID) (MatchOdds, bool) {
	p, ok := c.Predict(user1, user2)
	if !ok || p <= 0 || p >= 1 {
		return MatchOdds{}, false
	}

	return MatchOdds{
		User1: decimal.NewFromFloat(1.0 / p).Round(2),
		User2: decimal.NewFromFloat(1.0 / (1.0 - p)).Round(2),
	}, true
}

// ProcessMatches applies a batch of match outcomes as one Glicko-2
// rating period: every player's games in the batch feed a single
// deviation/volatility update, not one-at-a-time sequential updates.
// It returns how many matches were applied and how many were skipped.
//
// Matches that are not completed, lack a participant or winner, or
// reference an unseeded player are skipped with a warning. Partial
// tournament data is expected, not an error.
func (c *MatchCalculator) ProcessMatches(matches []*models.Match) (processed, skipped int) {
	type playerGames struct {
		id      uuid.UUID
		results []gameResult
	}

	// Opponent triples are frozen at the start of the period.
	snapshot := make(map[uuid.UUID]Glicko2Rating, len(c.players))
	for id, p := range c.players {
		snapshot[id] = *p
	}

	games := make(map[uuid.UUID]*playerGames)
	order := make([]uuid.UUID, 0, len(matches)*2)
	appendResult := func(id uuid.UUID, opponent Glicko2Rating, score float64) {
		pg, ok := games[id]
		if !ok {
			pg = &playerGames{id: id}
			games[id] = pg
			order = append(order, id)
		}
		pg.results = append(pg.results, gameResult{Opponent: opponent, Score: score})
	}

	for _, match := range matches {
		if !match.IsRateable() {
			c.logger.WithFields(logrus.Fields{
				"match_id": match.ID,
				"status":   match.Status,
			}).Warn("Skipping match without completed outcome")
			skipped++
			continue
		}

		user1, user2, winner := *match.User1ID, *match.User2ID, *match.WinnerID
		snap1, ok1 := snapshot[user1]
		snap2, ok2 := snapshot[user2]
		if !ok1 || !ok2 {
			c.logger.WithFields(logrus.Fields{
				"match_id": match.ID,
				"user1":    user1,
				"user2":    user2,
			}).Warn("Skipping match with unseeded participant")
			skipped++
			continue
		}

		score1 := 0.0
		if winner == user1 {
			score1 = 1.0
		}
		appendResult(user1, snap2, score1)
		appendResult(user2, snap1, 1.0-score1)
		processed++
	}

	for _, id := range order {
		c.players[id].applyPeriod(games[id].results, c.cfg.Tau)
	}

	return processed, skipped
}

// Reset clears all player state. This is a hard reset back to an empty
// calculator, not a re-seed.
func (c *MatchCalculator) Reset() {
	c.players = make(map[uuid.UUID]*Glicko2Rating)
}

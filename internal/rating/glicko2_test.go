package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRating() *Glicko2Rating {
	return &Glicko2Rating{Rating: 1500, Deviation: 350, Volatility: 0.06}
}

func TestApplyPeriodWinRaisesRating(t *testing.T) {
	player := newTestRating()
	opponent := *newTestRating()

	player.applyPeriod([]gameResult{{Opponent: opponent, Score: 1}}, 0.5)

	assert.Greater(t, player.Rating, 1500.0)
	assert.Less(t, player.Deviation, 350.0)
	assert.Equal(t, 1, player.Games)
}

func TestApplyPeriodLossLowersRating(t *testing.T) {
	player := newTestRating()
	opponent := *newTestRating()

	player.applyPeriod([]gameResult{{Opponent: opponent, Score: 0}}, 0.5)

	assert.Less(t, player.Rating, 1500.0)
}

func TestApplyPeriodEmptyAges(t *testing.T) {
	player := newTestRating()
	player.applyPeriod(nil, 0.5)

	assert.InDelta(t, 1500.0, player.Rating, 1e-9)
	assert.Greater(t, player.Deviation, 350.0)
}

func TestApplyPeriodSplitResultsCancel(t *testing.T) {
	// One win and one loss against identical opponents within a single
	// period should leave the rating where it started.
	player := newTestRating()
	opponent := *newTestRating()

	player.applyPeriod([]gameResult{
		{Opponent: opponent, Score: 1},
		{Opponent: opponent, Score: 0},
	}, 0.5)

	assert.InDelta(t, 1500.0, player.Rating, 1e-6)
	assert.Less(t, player.Deviation, 350.0)
}

func TestExpectedScoreSymmetry(t *testing.T) {
	mu1, phi1 := toInternalScale(1600, 200)
	mu2, phi2 := toInternalScale(1400, 200)

	e12 := expectedScore(mu1, mu2, phi2)
	e21 := expectedScore(mu2, mu1, phi1)

	assert.Greater(t, e12, 0.5)
	assert.Less(t, e21, 0.5)
	assert.InDelta(t, 1.0, e12+e21, 1e-9)
}

func TestScaleConversionRoundTrip(t *testing.T) {
	mu, phi := toInternalScale(1723.5, 112.25)
	r, rd := fromInternalScale(mu, phi)

	assert.InDelta(t, 1723.5, r, 1e-9)
	assert.InDelta(t, 112.25, rd, 1e-9)
}

func TestSolveVolatilityStaysFinite(t *testing.T) {
	vol := solveVolatility(0.5, 1.2, 1.8, 0.06, 0.5)
	assert.False(t, math.IsNaN(vol))
	assert.False(t, math.IsInf(vol, 0))
	assert.Greater(t, vol, 0.0)
}

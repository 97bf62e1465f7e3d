package rating

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackday/internal/models"
)

func rosterOf(users []models.UserInfo) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestBuildRankingsOrdersByTotal(t *testing.T) {
	users := []models.UserInfo{
		{ID: uuid.New(), FirstName: "alice"},
		{ID: uuid.New(), FirstName: "bob"},
		{ID: uuid.New(), FirstName: "carol"},
	}
	cfg := DefaultConfig()
	matches := NewMatchCalculator(cfg, rosterOf(users), testLogger())
	tracks := NewTrackCalculator(cfg, testLogger())

	// alice beats bob twice; carol never competes.
	matches.ProcessMatches([]*models.Match{
		completedMatch(users[0].ID, users[1].ID, users[0].ID),
		completedMatch(users[0].ID, users[1].ID, users[0].ID),
	})

	rankings := BuildRankings(users, matches, tracks, cfg)
	require.Len(t, rankings, 3)

	assert.Equal(t, "alice", rankings[0].User.FirstName)
	assert.Equal(t, "bob", rankings[2].User.FirstName)
	assert.Equal(t, "carol", rankings[1].User.FirstName)
	for i, r := range rankings {
		assert.Equal(t, i+1, r.Position)
	}
	assert.Greater(t, rankings[0].TotalRating, rankings[1].TotalRating)
	assert.Greater(t, rankings[1].TotalRating, rankings[2].TotalRating)
}

func TestBuildRankingsBlendsMatchAndTrack(t *testing.T) {
	user := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	cfg := DefaultConfig()
	cfg.MatchWeight = 0.25

	matches := NewMatchCalculator(cfg, []uuid.UUID{user.ID}, testLogger())
	tracks := NewTrackCalculator(cfg, testLogger())

	rankings := BuildRankings([]models.UserInfo{user}, matches, tracks, cfg)
	require.Len(t, rankings, 1)

	r := rankings[0]
	assert.InDelta(t, 0.25*r.MatchRating+0.75*r.TrackRating, r.TotalRating, 1e-9)
	assert.InDelta(t, cfg.InitialRating, r.TotalRating, 1e-9)
}

func TestBuildRankingsTieBreakDeterministic(t *testing.T) {
	users := []models.UserInfo{
		{ID: uuid.New(), FirstName: "alice"},
		{ID: uuid.New(), FirstName: "bob"},
	}
	cfg := DefaultConfig()
	matches := NewMatchCalculator(cfg, rosterOf(users), testLogger())
	tracks := NewTrackCalculator(cfg, testLogger())

	first := BuildRankings(users, matches, tracks, cfg)
	reversed := BuildRankings([]models.UserInfo{users[1], users[0]}, matches, tracks, cfg)

	require.Len(t, first, 2)
	require.Len(t, reversed, 2)
	assert.Equal(t, first[0].User.ID, reversed[0].User.ID)
	assert.Equal(t, first[1].User.ID, reversed[1].User.ID)
}

func TestBuildRankingsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	matches := NewMatchCalculator(cfg, nil, testLogger())
	tracks := NewTrackCalculator(cfg, testLogger())

	rankings := BuildRankings(nil, matches, tracks, cfg)
	assert.Empty(t, rankings)
}

package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/rating"
	"github.com/yourusername/trackday/internal/repository"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRankingFixture() (*RankingService, *MockUserRepository, *MockMatchRepository, *MockTimeEntryRepository) {
	userRepo := &MockUserRepository{}
	matchRepo := &MockMatchRepository{}
	entryRepo := &MockTimeEntryRepository{}
	repos := &repository.Repositories{
		User:      userRepo,
		Match:     matchRepo,
		TimeEntry: entryRepo,
	}
	svc := NewRankingService(repos, rating.DefaultConfig(), quietLogger())
	return svc, userRepo, matchRepo, entryRepo
}

func completedMatch(user1, user2, winner uuid.UUID, sessionID *uuid.UUID) *models.Match {
	return &models.Match{
		ID:        uuid.New(),
		SessionID: sessionID,
		User1ID:   &user1,
		User2ID:   &user2,
		WinnerID:  &winner,
		Status:    models.MatchStatusCompleted,
	}
}

type captureNotifier struct {
	summaries []RebuildSummary
	err       error
}

func (n *captureNotifier) NotifyRebuild(_ context.Context, summary RebuildSummary) error {
	n.summaries = append(n.summaries, summary)
	return n.err
}

type captureBroadcaster struct {
	snapshots [][]models.Ranking
}

func (b *captureBroadcaster) BroadcastRankings(rankings []models.Ranking) {
	b.snapshots = append(b.snapshots, rankings)
}

func TestRebuildProducesRankings(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	alice := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	bob := models.UserInfo{ID: uuid.New(), FirstName: "bob"}
	users := []models.UserInfo{alice, bob}

	duration := models.Milliseconds(60000)
	entries := []*models.TimeEntry{
		{ID: uuid.New(), UserID: alice.ID, TrackID: uuid.New(), Duration: &duration},
	}

	userRepo.On("GetAllInfo", mock.Anything).Return(users, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{
		completedMatch(alice.ID, bob.ID, alice.ID, nil),
	}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return(entries, nil)

	summary, err := svc.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rankings)
	assert.Equal(t, 1, summary.MatchesProcessed)
	assert.Equal(t, 0, summary.MatchesSkipped)
	assert.Equal(t, 1, summary.TimeEntries)

	rankings := svc.GetRankings()
	require.Len(t, rankings, 2)
	assert.Equal(t, alice.ID, rankings[0].User.ID)
	assert.Equal(t, 1, rankings[0].Position)
	assert.Greater(t, rankings[0].TotalRating, rankings[1].TotalRating)

	row, ok := svc.GetRanking(bob.ID)
	require.True(t, ok)
	assert.Equal(t, 2, row.Position)
}

func TestRebuildEmptyData(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{}, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return([]*models.TimeEntry{}, nil)

	summary, err := svc.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Rankings)
	assert.Empty(t, svc.GetRankings())
}

func TestRebuildPropagatesLoadError(t *testing.T) {
	svc, userRepo, _, _ := newRankingFixture()

	userRepo.On("GetAllInfo", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.Rebuild(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load users")
}

func TestRebuildNotifiesAndBroadcasts(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	alice := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{alice}, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return([]*models.TimeEntry{}, nil)

	notifier := &captureNotifier{}
	broadcaster := &captureBroadcaster{}
	svc.SetNotifier(notifier)
	svc.SetBroadcaster(broadcaster)

	_, err := svc.Rebuild(context.Background())
	require.NoError(t, err)

	require.Len(t, notifier.summaries, 1)
	assert.Equal(t, 1, notifier.summaries[0].Rankings)
	require.Len(t, broadcaster.snapshots, 1)
}

func TestRebuildSurvivesNotifierError(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{}, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return([]*models.TimeEntry{}, nil)

	svc.SetNotifier(&captureNotifier{err: errors.New("webhook down")})

	_, err := svc.Rebuild(context.Background())
	assert.NoError(t, err)
}

func TestPredictBeforeRebuild(t *testing.T) {
	svc, _, _, _ := newRankingFixture()

	_, ok := svc.PredictMatch(uuid.New(), uuid.New())
	assert.False(t, ok)

	_, ok = svc.MatchOdds(uuid.New(), uuid.New())
	assert.False(t, ok)

	_, ok = svc.TrackStats(uuid.New())
	assert.False(t, ok)
}

func TestPredictAfterRebuild(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	alice := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	bob := models.UserInfo{ID: uuid.New(), FirstName: "bob"}

	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{alice, bob}, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{
		completedMatch(alice.ID, bob.ID, alice.ID, nil),
	}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return([]*models.TimeEntry{}, nil)

	_, err := svc.Rebuild(context.Background())
	require.NoError(t, err)

	p, ok := svc.PredictMatch(alice.ID, bob.ID)
	require.True(t, ok)
	assert.Greater(t, p, 0.5)

	odds, ok := svc.MatchOdds(alice.ID, bob.ID)
	require.True(t, ok)
	assert.True(t, odds.User1.IsPositive())
}

func TestBatchMatchesBySession(t *testing.T) {
	userA, userB := uuid.New(), uuid.New()
	session1 := uuid.New()
	session2 := uuid.New()

	m1 := completedMatch(userA, userB, userA, &session1)
	m2 := completedMatch(userB, userA, userB, &session1)
	m3 := completedMatch(userA, userB, userA, nil)
	m4 := completedMatch(userA, userB, userB, &session2)

	batches := batchMatchesBySession([]*models.Match{m1, m2, m3, m4})
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 1)
	assert.Len(t, batches[2], 1)
}

func TestGetRankingsReturnsCopy(t *testing.T) {
	svc, userRepo, matchRepo, entryRepo := newRankingFixture()

	alice := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{alice}, nil)
	matchRepo.On("GetCompletedChronological", mock.Anything).Return([]*models.Match{}, nil)
	entryRepo.On("GetAllChronological", mock.Anything).Return([]*models.TimeEntry{}, nil)

	_, err := svc.Rebuild(context.Background())
	require.NoError(t, err)

	first := svc.GetRankings()
	first[0].Position = 99

	second := svc.GetRankings()
	assert.Equal(t, 1, second[0].Position)
}

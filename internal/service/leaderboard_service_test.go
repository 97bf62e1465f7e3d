package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackday/internal/config"
	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/repository"
)

func newLeaderboardFixture() (*LeaderboardService, *MockTrackRepository, *MockTimeEntryRepository, *MockUserRepository) {
	trackRepo := &MockTrackRepository{}
	entryRepo := &MockTimeEntryRepository{}
	userRepo := &MockUserRepository{}
	repos := &repository.Repositories{
		User:      userRepo,
		Track:     trackRepo,
		TimeEntry: entryRepo,
	}
	cfg := config.LeaderboardConfig{
		CacheTTLSeconds:     30,
		CacheCleanupSeconds: 60,
		DefaultPageSize:     50,
	}
	svc := NewLeaderboardService(repos, cfg, quietLogger())
	return svc, trackRepo, entryRepo, userRepo
}

func trackFixture() *models.Track {
	return &models.Track{
		ID:     uuid.New(),
		Number: 1,
		Level:  models.TrackLevelGreen,
		Type:   models.TrackTypeValley,
	}
}

func TestGetLeaderboardBuildsPage(t *testing.T) {
	svc, trackRepo, entryRepo, userRepo := newLeaderboardFixture()

	track := trackFixture()
	alice := models.UserInfo{ID: uuid.New(), FirstName: "alice"}
	bob := models.UserInfo{ID: uuid.New(), FirstName: "bob"}

	fast := models.Milliseconds(58000)
	slow := models.Milliseconds(61000)
	entries := []*models.TimeEntry{
		{ID: uuid.New(), UserID: bob.ID, TrackID: track.ID, Duration: &slow},
		{ID: uuid.New(), UserID: alice.ID, TrackID: track.ID, Duration: &fast},
	}

	trackRepo.On("GetByID", mock.Anything, track.ID).Return(track, nil)
	entryRepo.On("GetByTrackID", mock.Anything, track.ID).Return(entries, nil)
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{alice, bob}, nil)

	board, err := svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, board.TotalEntries)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, alice.ID, board.Entries[0].User.ID)
	assert.Equal(t, 1, board.Entries[0].Gap.Position)
}

func TestGetLeaderboardServesCachedPage(t *testing.T) {
	svc, trackRepo, entryRepo, userRepo := newLeaderboardFixture()

	track := trackFixture()
	trackRepo.On("GetByID", mock.Anything, track.ID).Return(track, nil)
	entryRepo.On("GetByTrackID", mock.Anything, track.ID).Return([]*models.TimeEntry{}, nil)
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{}, nil)

	_, err := svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)

	_, err = svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)

	// The second call must not hit the repositories again.
	trackRepo.AssertNumberOfCalls(t, "GetByID", 1)
	entryRepo.AssertNumberOfCalls(t, "GetByTrackID", 1)
}

func TestGetLeaderboardDistinctPagesAreDistinctKeys(t *testing.T) {
	svc, trackRepo, entryRepo, userRepo := newLeaderboardFixture()

	track := trackFixture()
	trackRepo.On("GetByID", mock.Anything, track.ID).Return(track, nil)
	entryRepo.On("GetByTrackID", mock.Anything, track.ID).Return([]*models.TimeEntry{}, nil)
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{}, nil)

	_, err := svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)
	_, err = svc.GetLeaderboard(context.Background(), track.ID, 10, 10)
	require.NoError(t, err)

	trackRepo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestGetLeaderboardTrackNotFound(t *testing.T) {
	svc, trackRepo, _, _ := newLeaderboardFixture()

	trackID := uuid.New()
	trackRepo.On("GetByID", mock.Anything, trackID).Return(nil, models.ErrTrackNotFound)

	_, err := svc.GetLeaderboard(context.Background(), trackID, 0, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTrackNotFound)
}

func TestSubmitTimeEntryInvalidatesCache(t *testing.T) {
	svc, trackRepo, entryRepo, userRepo := newLeaderboardFixture()

	track := trackFixture()
	trackRepo.On("GetByID", mock.Anything, track.ID).Return(track, nil)
	entryRepo.On("GetByTrackID", mock.Anything, track.ID).Return([]*models.TimeEntry{}, nil)
	userRepo.On("GetAllInfo", mock.Anything).Return([]models.UserInfo{}, nil)
	entryRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)

	duration := models.Milliseconds(59000)
	err = svc.SubmitTimeEntry(context.Background(), &models.TimeEntry{
		UserID:   uuid.New(),
		TrackID:  track.ID,
		Duration: &duration,
	})
	require.NoError(t, err)

	_, err = svc.GetLeaderboard(context.Background(), track.ID, 0, 10)
	require.NoError(t, err)

	// Cached page was dropped, so the board was rebuilt from the repos.
	entryRepo.AssertNumberOfCalls(t, "GetByTrackID", 2)
}

func TestSubmitTimeEntryAssignsID(t *testing.T) {
	svc, trackRepo, entryRepo, _ := newLeaderboardFixture()

	track := trackFixture()
	trackRepo.On("GetByID", mock.Anything, track.ID).Return(track, nil)

	var created *models.TimeEntry
	entryRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.TimeEntry)
	}).Return(nil)

	err := svc.SubmitTimeEntry(context.Background(), &models.TimeEntry{
		UserID:  uuid.New(),
		TrackID: track.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestSubmitTimeEntryNilEntry(t *testing.T) {
	svc, _, _, _ := newLeaderboardFixture()

	err := svc.SubmitTimeEntry(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSubmitTimeEntryUnknownTrack(t *testing.T) {
	svc, trackRepo, entryRepo, _ := newLeaderboardFixture()

	trackID := uuid.New()
	trackRepo.On("GetByID", mock.Anything, trackID).Return(nil, models.ErrTrackNotFound)

	err := svc.SubmitTimeEntry(context.Background(), &models.TimeEntry{
		UserID:  uuid.New(),
		TrackID: trackID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTrackNotFound)
	entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRemoveTimeEntry(t *testing.T) {
	svc, _, entryRepo, _ := newLeaderboardFixture()

	trackID := uuid.New()
	entry := &models.TimeEntry{ID: uuid.New(), UserID: uuid.New(), TrackID: trackID}

	entryRepo.On("GetByID", mock.Anything, entry.ID).Return(entry, nil)
	entryRepo.On("SoftDelete", mock.Anything, entry.ID).Return(nil)

	err := svc.RemoveTimeEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	entryRepo.AssertCalled(t, "SoftDelete", mock.Anything, entry.ID)
}

func TestRemoveTimeEntryNotFound(t *testing.T) {
	svc, _, entryRepo, _ := newLeaderboardFixture()

	id := uuid.New()
	entryRepo.On("GetByID", mock.Anything, id).Return(nil, models.ErrNotFound)

	err := svc.RemoveTimeEntry(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrNotFound)
	entryRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestRemoveTimeEntrySoftDeleteFailure(t *testing.T) {
	svc, _, entryRepo, _ := newLeaderboardFixture()

	entry := &models.TimeEntry{ID: uuid.New(), UserID: uuid.New(), TrackID: uuid.New()}
	entryRepo.On("GetByID", mock.Anything, entry.ID).Return(entry, nil)
	entryRepo.On("SoftDelete", mock.Anything, entry.ID).Return(errors.New("connection reset"))

	err := svc.RemoveTimeEntry(context.Background(), entry.ID)
	require.Error(t, err)
}

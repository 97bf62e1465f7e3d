// Package leaderboard turns a track's raw time-entry history into an
// ordered, deduplicated, gap-annotated leaderboard view.
package leaderboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/yourusername/trackday/internal/models"
)

// Build produces the leaderboard for a track from its time entries and
// the identities of the users referenced by them.
//
// Soft-deleted entries are excluded. An entry referencing a user not
// present in users is an error (models.ErrUserNotFound), never a silent
// drop. Gaps are computed over the full deduplicated sequence before
// offset/limit slicing, so pagination does not change gap values.
func Build(track *models.Track, entries []*models.TimeEntry, users []models.UserInfo, offset, limit int) (*models.Leaderboard, error) {
	if track == nil {
		return nil, models.ErrTrackNotFound
	}
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: negative offset or limit", models.ErrInvalidInput)
	}

	userByID := make(map[uuid.UUID]models.UserInfo, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	live := make([]*models.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDeleted() {
			continue
		}
		if _, ok := userByID[entry.UserID]; !ok {
			return nil, fmt.Errorf("%w: time entry %s references user %s", models.ErrUserNotFound, entry.ID, entry.UserID)
		}
		live = append(live, entry)
	}

	sortEntries(live)

	deduped := dedupeByUser(live)

	ranked := make([]models.LeaderboardEntry, len(deduped))
	for i, entry := range deduped {
		ranked[i] = models.LeaderboardEntry{
			ID:        entry.ID,
			Duration:  entry.Duration,
			Amount:    entry.Amount,
			Comment:   entry.Comment,
			CreatedAt: entry.CreatedAt,
			UpdatedAt: entry.UpdatedAt,
			DeletedAt: entry.DeletedAt,
			User:      userByID[entry.UserID],
			Gap:       computeGap(deduped, i),
		}
	}

	return &models.Leaderboard{
		Track:        track,
		TotalEntries: len(ranked),
		Entries:      slicePage(ranked, offset, limit),
	}, nil
}

// sortEntries orders entries ascending by duration with DNF entries
// last; ties break by most recent createdAt first.
func sortEntries(entries []*models.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Duration == nil && b.Duration == nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a.Duration == nil:
			return false
		case b.Duration == nil:
			return true
		case *a.Duration != *b.Duration:
			return *a.Duration < *b.Duration
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// dedupeByUser keeps the first occurrence per user in the sorted order,
// which is that user's best lap. A DNF entry survives only when the
// user has no timed entry, since all DNFs sort after the timed ones.
func dedupeByUser(entries []*models.TimeEntry) []*models.TimeEntry {
	seen := make(map[uuid.UUID]bool, len(entries))
	deduped := make([]*models.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.UserID] {
			continue
		}
		seen[entry.UserID] = true
		deduped = append(deduped, entry)
	}
	return deduped
}

func computeGap(entries []*models.TimeEntry, i int) models.Gap {
	gap := models.Gap{Position: i + 1}
	cur := entries[i].Duration
	if cur == nil {
		return gap
	}

	if i > 0 {
		if prev := entries[i-1].Duration; prev != nil {
			gap.Previous = round10(*cur - *prev)
		}
		if leader := entries[0].Duration; leader != nil {
			gap.Leader = round10(*cur - *leader)
		}
	}
	if i < len(entries)-1 {
		if next := entries[i+1].Duration; next != nil {
			gap.Next = round10(*next - *cur)
		}
	}
	return gap
}

// round10 rounds a delta to the nearest 10 ms so displayed gaps don't
// jitter on the last digit.
func round10(delta models.Milliseconds) *models.Milliseconds {
	rounded := models.Milliseconds(math.Round(float64(delta)/10.0) * 10.0)
	return &rounded
}

func slicePage(entries []models.LeaderboardEntry, offset, limit int) []models.LeaderboardEntry {
	if offset >= len(entries) {
		return []models.LeaderboardEntry{}
	}
	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return entries[offset:end]
}

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/trackday/internal/models"
	"github.com/yourusername/trackday/internal/service"
)

type rankingsResponse struct {
	Rankings    []models.Ranking `json:"rankings"`
	LastRebuild time.Time        `json:"last_rebuild"`
}

// handleRankings serves the current ranking snapshot
func handleRankings(svc *service.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		writeJSON(w, http.StatusOK, rankingsResponse{
			Rankings:    svc.GetRankings(),
			LastRebuild: svc.LastRebuild(),
		})
	}
}

// handleLeaderboard serves one leaderboard page per request, with the
// track id as the trailing path segment
func handleLeaderboard(svc *service.LeaderboardService, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		trackID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/leaderboard/"))
		if err != nil {
			http.Error(w, "invalid track id", http.StatusBadRequest)
			return
		}

		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			http.Error(w, "invalid offset or limit", http.StatusBadRequest)
			return
		}
		limit, err := queryInt(r, "limit", defaultPageSize)
		if err != nil {
			http.Error(w, "invalid offset or limit", http.StatusBadRequest)
			return
		}

		board, err := svc.GetLeaderboard(r.Context(), trackID, offset, limit)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrTrackNotFound):
				http.Error(w, "track not found", http.StatusNotFound)
			case errors.Is(err, models.ErrInvalidInput):
				http.Error(w, "invalid offset or limit", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, board)
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package handlers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/lmalina/shape-rank/internal/shapeapi"
)

// LeaderboardHandler proxies the aggregate method leaderboard.
type LeaderboardHandler struct {
	client *shapeapi.Client
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(client *shapeapi.Client) *LeaderboardHandler {
	return &LeaderboardHandler{client: client}
}

// leaderboardEntry is one method's aggregate score, lower is better.
type leaderboardEntry struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

// Get fetches the ranking totals and returns them sorted best-first.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.GetRankings(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to fetch rankings: %v", err))
		return
	}

	entries := make([]leaderboardEntry, 0, len(resp.RankingTotals))
	for method, total := range resp.RankingTotals {
		entries = append(entries, leaderboardEntry{Method: method, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total < entries[j].Total
		}
		return entries[i].Method < entries[j].Method
	})

	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

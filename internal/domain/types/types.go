// Package types contains common types shared across the application
package types

import (
	"time"

	"github.com/okian/skillswap/internal/domain/model"
)

// SwipeResult is the outcome of one reconciled swipe.
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}

// MatchView is a match with the counterpart user resolved, as returned
// to API consumers.
type MatchView struct {
	ID          string     `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Counterpart model.User `json:"counterpart"`
}

// SimulationStats summarizes the current ledger and match state.
// Always recomputed from scratch; percentages are in [0,100].
type SimulationStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalMatches    int     `json:"total_matches"`
	TotalSwipes     int     `json:"total_swipes"`
	RightSwipes     int     `json:"right_swipes"`
	MatchRate       float64 `json:"match_rate"`
	UserUtilization float64 `json:"user_utilization"`
}

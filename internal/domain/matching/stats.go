package matching

import (
	"context"
	"fmt"

	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
)

// percent converts a ratio to a percentage.
const percent = 100

// ComputeStats derives SimulationStats from the current ledger and
// match state. Always a full recompute; incremental counters drift
// from ground truth and are deliberately not kept.
func ComputeStats(ctx context.Context, directory repository.Directory, ledger repository.Ledger, matches repository.MatchStore) (types.SimulationStats, error) {
	stats := types.SimulationStats{
		TotalUsers:   directory.Count(ctx),
		TotalMatches: matches.Len(ctx),
	}

	rows, err := ledger.All(ctx)
	if err != nil {
		return types.SimulationStats{}, fmt.Errorf("stats: ledger scan: %w", err)
	}
	stats.TotalSwipes = len(rows)
	for _, row := range rows {
		if row.Action == model.ActionLike {
			stats.RightSwipes++
		}
	}

	if stats.RightSwipes > 0 {
		stats.MatchRate = float64(stats.TotalMatches) / float64(stats.RightSwipes) * percent
	}

	if stats.TotalUsers > 0 {
		all, err := matches.All(ctx)
		if err != nil {
			return types.SimulationStats{}, fmt.Errorf("stats: match scan: %w", err)
		}
		seen := make(map[string]struct{}, len(all)*2)
		for _, m := range all {
			seen[m.UserAID] = struct{}{}
			seen[m.UserBID] = struct{}{}
		}
		stats.UserUtilization = float64(len(seen)) / float64(stats.TotalUsers) * percent
	}
	return stats, nil
}

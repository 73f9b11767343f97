package matching

import (
	"context"
	"fmt"

	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/pkg/metrics"
)

// Selector computes the set of users eligible to be shown next to a
// given user: everyone in the directory except the user themselves,
// anyone they already swiped, and anyone they are matched with.
type Selector struct {
	directory repository.Directory
	ledger    repository.Ledger
	matches   repository.MatchStore
}

// NewSelector creates a candidate selector over the given stores.
func NewSelector(directory repository.Directory, ledger repository.Ledger, matches repository.MatchStore) *Selector {
	return &Selector{
		directory: directory,
		ledger:    ledger,
		matches:   matches,
	}
}

// Candidates returns eligible users in directory order. Exhaustion is
// an empty slice, never an error; an unknown userID is ErrNotFound.
func (s *Selector) Candidates(ctx context.Context, userID string) ([]model.User, error) {
	if _, err := s.directory.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("candidates for %s: %w", userID, err)
	}

	all, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.User, 0, len(all))
	for _, u := range all {
		if u.ID == userID {
			continue
		}
		if s.ledger.HasSwiped(ctx, userID, u.ID) {
			continue
		}
		if _, err := s.matches.GetByPair(ctx, userID, u.ID); err == nil {
			continue
		}
		out = append(out, u)
	}
	metrics.RecordCandidatesServed(len(out))
	return out, nil
}

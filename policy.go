package cfr

import (
	"fmt"
	"io"
)

// Policy is an average strategy: for each information set key, a
// probability distribution over that infoset's legal actions in their
// canonical order. Policies returned by the solver are independent
// snapshots, decoupled from any future training.
type Policy map[string][]float64

// Get returns the strategy stored for key, or nil if absent.
func (p Policy) Get(key string) []float64 {
	return p[key]
}

// Clone returns a deep copy of the policy.
func (p Policy) Clone() Policy {
	out := make(Policy, len(p))
	for k, sigma := range p {
		dup := make([]float64, len(sigma))
		copy(dup, sigma)
		out[k] = dup
	}

	return out
}

// AverageStrategy extracts the current average strategy from the solver's
// strategy-sum table. Each entry is normalized by its total accumulated
// mass; entries that never accumulated mass fall back to uniform. The
// returned policy is a copy and is not aliased to solver state.
func (s *Solver[S, A]) AverageStrategy() Policy {
	policy := make(Policy, len(s.entries))
	for key, e := range s.entries {
		policy[key] = e.averageStrategy()
	}

	return policy
}

// WriteStrategies dumps the average strategy to w, ordered by information
// set key, with the game's action labels and four-decimal probabilities.
func (s *Solver[S, A]) WriteStrategies(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Average strategy by information set:\n"); err != nil {
		return err
	}

	policy := s.AverageStrategy()
	for _, key := range s.InfoSetKeys() {
		if _, err := fmt.Fprintf(w, "InfoSet: %s\n", key); err != nil {
			return err
		}

		e := s.entries[key]
		for i, p := range policy[key] {
			if _, err := fmt.Fprintf(w, "  %s : %.4f\n", s.game.ActionString(e.actions[i]), p); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

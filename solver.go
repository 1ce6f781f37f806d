package cfr

import (
	"math"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Params configure the accumulation rules of a Solver. The zero value is
// valid and corresponds to vanilla CFR with simultaneous updates.
type Params struct {
	Variant Variant

	// Alternating restricts each traversal's regret and strategy
	// accumulation to a single updating player, alternating by iteration
	// parity. Canonical CFR+ results use alternating updates; the default
	// (simultaneous) updates both players in every traversal.
	Alternating bool
}

// Solver implements full-tree CFR over a Game. It owns the regret and
// strategy tables for its lifetime and is not safe for concurrent use:
// training is a strictly single-threaded depth-first traversal.
type Solver[S, A any] struct {
	game   Game[S, A]
	params Params

	// iter is the 1-based number of the iteration currently (or most
	// recently) run. CFR+ linear averaging reads it.
	iter     int
	updating PlayerID

	entries map[string]*entry[A]
	pool    floatSlicePool
}

// New creates a Solver for the given game with empty tables.
func New[S, A any](game Game[S, A], params Params) *Solver[S, A] {
	return &Solver[S, A]{
		game:    game,
		params:  params,
		entries: make(map[string]*entry[A]),
	}
}

// Game returns the game this solver was created for.
func (s *Solver[S, A]) Game() Game[S, A] {
	return s.game
}

// Iterations returns the number of completed training iterations.
func (s *Solver[S, A]) Iterations() int {
	return s.iter
}

// NumInfoSets returns the number of information sets materialized so far.
func (s *Solver[S, A]) NumInfoSets() int {
	return len(s.entries)
}

// RunIteration performs one CFR traversal from the initial state with unit
// reach for both players, updating the regret and strategy tables for
// every reached information set (with Params.Alternating, only those of
// this iteration's updating player). It returns the expected utilities of the
// root under the current strategy profile, which are diagnostic only.
func (s *Solver[S, A]) RunIteration() (v1, v2 float64) {
	s.iter++
	if s.params.Alternating {
		s.updating = PlayerID((s.iter + 1) % 2)
	}

	return s.traverse(s.game.InitialState(), 1.0, 1.0)
}

func (s *Solver[S, A]) traverse(state S, reach1, reach2 float64) (float64, float64) {
	if s.game.IsTerminal(state) {
		return s.game.Payoffs(state)
	}

	player := s.game.CurrentPlayer(state)
	if player == Chance {
		return s.traverseChance(state, reach1, reach2)
	}

	actions := s.game.LegalActions(state)
	e := s.lookup(s.game.InfoSetKey(state, player), actions)

	sigma := s.pool.get(len(actions))
	e.matchRegrets(sigma)

	util1 := s.pool.get(len(actions))
	util2 := s.pool.get(len(actions))
	for i, a := range actions {
		child := s.game.Transition(state, a)
		if player == Player1 {
			util1[i], util2[i] = s.traverse(child, sigma[i]*reach1, reach2)
		} else {
			util1[i], util2[i] = s.traverse(child, reach1, sigma[i]*reach2)
		}
	}

	node1 := floats.Dot(sigma, util1)
	node2 := floats.Dot(sigma, util2)

	if !s.params.Alternating || player == s.updating {
		ownReach, oppReach := reach1, reach2
		ownUtil, nodeUtil := util1, node1
		if player == Player2 {
			ownReach, oppReach = reach2, reach1
			ownUtil, nodeUtil = util2, node2
		}

		s.applyStrategy(e, sigma, ownReach)
		for i := range actions {
			s.applyRegret(e, i, oppReach*(ownUtil[i]-nodeUtil))
		}
	}

	s.pool.put(util2)
	s.pool.put(util1)
	s.pool.put(sigma)
	return node1, node2
}

// traverseChance enumerates every chance outcome and folds the chance mass
// into the returned value. Player reach probabilities are not scaled by
// chance probabilities; the counterfactual chance contribution is implicit
// in the enumeration.
func (s *Solver[S, A]) traverseChance(state S, reach1, reach2 float64) (float64, float64) {
	var v1, v2, mass float64
	for _, o := range s.game.ChanceOutcomes(state) {
		c1, c2 := s.traverse(o.State, reach1, reach2)
		v1 += o.Prob * c1
		v2 += o.Prob * c2
		mass += o.Prob
	}

	if math.Abs(mass-1.0) > chanceTol {
		panic(errors.Wrapf(ErrInvalidChance, "outcome probabilities sum to %v", mass))
	}

	return v1, v2
}

// lookup materializes the table entry for an information set on first
// visit. Materialization is atomic: the regret vector, strategy-sum vector
// and cached action list are sized together from the same action list.
func (s *Solver[S, A]) lookup(key string, actions []A) *entry[A] {
	e, ok := s.entries[key]
	if !ok {
		e = newEntry(actions)
		s.entries[key] = e
		if len(s.entries)%100000 == 0 {
			glog.V(2).Infof("strategy table grew to %d infosets", len(s.entries))
		}

		return e
	}

	if e.numActions() != len(actions) {
		panic(errors.Wrapf(ErrLegalActionsChanged,
			"infoset %q has %d actions but node offers %d", key, e.numActions(), len(actions)))
	}

	return e
}

// InfoSetKeys returns the keys of all materialized information sets in
// their natural string order.
func (s *Solver[S, A]) InfoSetKeys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// RegretSum returns a copy of the cumulative regret vector for the given
// information set, or nil if it has never been visited.
func (s *Solver[S, A]) RegretSum(key string) []float64 {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}

	out := make([]float64, len(e.regretSum))
	copy(out, e.regretSum)
	return out
}

// StrategySum returns a copy of the accumulated strategy-weight vector for
// the given information set, or nil if it has never been visited.
func (s *Solver[S, A]) StrategySum(key string) []float64 {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}

	out := make([]float64, len(e.strategySum))
	copy(out, e.strategySum)
	return out
}

// RegretDiagnostics returns the positive-regret descent diagnostics over
// the whole regret table: the sum and the maximum of clamped-positive
// cumulative regrets, each divided by the number of completed iterations.
// Both approach zero as the average strategy converges.
func (s *Solver[S, A]) RegretDiagnostics() (avgPos, maxPos float64) {
	if s.iter == 0 {
		return 0, 0
	}

	for _, e := range s.entries {
		for _, r := range e.regretSum {
			if r > 0 {
				avgPos += r
				if r > maxPos {
					maxPos = r
				}
			}
		}
	}

	return avgPos / float64(s.iter), maxPos / float64(s.iter)
}

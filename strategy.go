package cfr

import (
	"gonum.org/v1/gonum/floats"
)

// entry holds the per-information-set accumulators: cumulative
// counterfactual regrets, reach-weighted strategy mass, and the cached
// legal action list. The three are sized together on creation and their
// common length never changes.
type entry[A any] struct {
	actions     []A
	regretSum   []float64
	strategySum []float64
}

func newEntry[A any](actions []A) *entry[A] {
	cached := make([]A, len(actions))
	copy(cached, actions)
	return &entry[A]{
		actions:     cached,
		regretSum:   make([]float64, len(actions)),
		strategySum: make([]float64, len(actions)),
	}
}

func (e *entry[A]) numActions() int {
	return len(e.regretSum)
}

// matchRegrets writes the regret-matching strategy into sigma: action
// probabilities proportional to positive cumulative regret, or uniform if
// no regret is positive. sigma must have length numActions().
func (e *entry[A]) matchRegrets(sigma []float64) {
	total := 0.0
	for i, r := range e.regretSum {
		if r > 0 {
			sigma[i] = r
			total += r
		} else {
			sigma[i] = 0
		}
	}

	if total > 0 {
		floats.Scale(1.0/total, sigma)
		return
	}

	uniform(sigma)
}

// averageStrategy returns the normalized accumulated strategy as a fresh
// slice. An entry that never accumulated mass yields a uniform
// distribution.
func (e *entry[A]) averageStrategy() []float64 {
	avg := make([]float64, len(e.strategySum))
	total := floats.Sum(e.strategySum)
	if total > 0 {
		floats.ScaleTo(avg, 1.0/total, e.strategySum)
	} else {
		uniform(avg)
	}

	return avg
}

func uniform(dst []float64) {
	p := 1.0 / float64(len(dst))
	for i := range dst {
		dst[i] = p
	}
}

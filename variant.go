package cfr

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Variant selects the regret and strategy accumulation rules. It is a
// closed set: CFR variants differ only in these two hooks, so a tag with a
// switch is preferred over an open interface.
type Variant uint8

const (
	// Vanilla is the original CFR update: regrets accumulate unclamped and
	// the average strategy is weighted by reach probability alone.
	Vanilla Variant = iota
	// Plus is CFR+: cumulative regrets are floored at zero after every
	// update and the average strategy is weighted linearly by iteration.
	Plus
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case Vanilla:
		return "vanilla"
	case Plus:
		return "plus"
	}

	return "unknown"
}

// ParseVariant converts a variant name ("vanilla" or "plus") to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "vanilla":
		return Vanilla, nil
	case "plus":
		return Plus, nil
	}

	return Vanilla, errors.Errorf("unknown CFR variant: %q", s)
}

// applyRegret accumulates one action's counterfactual regret delta.
func (s *Solver[S, A]) applyRegret(e *entry[A], action int, delta float64) {
	switch s.params.Variant {
	case Plus:
		e.regretSum[action] = math.Max(0, e.regretSum[action]+delta)
	default:
		e.regretSum[action] += delta
	}
}

// applyStrategy accumulates the acting player's reach-weighted strategy.
// CFR+ additionally weights by the 1-based iteration number (linear
// averaging).
func (s *Solver[S, A]) applyStrategy(e *entry[A], sigma []float64, reach float64) {
	w := reach
	if s.params.Variant == Plus {
		w *= float64(s.iter)
	}

	floats.AddScaled(e.strategySum, w, sigma)
}

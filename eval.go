package cfr

import (
	"math"

	"github.com/pkg/errors"
)

// The evaluator walks the full game tree against a frozen policy. It is
// independent of the solver's tables: metrics computed mid-training see a
// snapshot, never live accumulators.

// ExpectedValue returns hero's expected utility when both players play
// policy. Decision nodes where the policy has no entry for the infoset, or
// an entry whose length does not match the legal action list, are played
// uniformly at random.
func ExpectedValue[S, A any](game Game[S, A], policy Policy, hero PlayerID) float64 {
	checkObserver(hero)
	return policyValue(game, game.InitialState(), policy, hero)
}

func policyValue[S, A any](game Game[S, A], state S, policy Policy, hero PlayerID) float64 {
	if game.IsTerminal(state) {
		return heroPayoff(game, state, hero)
	}

	player := game.CurrentPlayer(state)
	if player == Chance {
		return chanceValue(game, state, func(child S) float64 {
			return policyValue(game, child, policy, hero)
		})
	}

	actions := game.LegalActions(state)
	sigma := lookupSigma(policy, game.InfoSetKey(state, player), len(actions))

	v := 0.0
	for i, a := range actions {
		if sigma[i] == 0 {
			continue
		}

		v += sigma[i] * policyValue(game, game.Transition(state, a), policy, hero)
	}

	return v
}

// BestResponseValue returns hero's expected utility when hero plays a
// deterministic best response and the opponent plays policy (with the same
// uniform fallback as ExpectedValue).
func BestResponseValue[S, A any](game Game[S, A], policy Policy, hero PlayerID) float64 {
	checkObserver(hero)
	return bestResponseValue(game, game.InitialState(), policy, hero)
}

func bestResponseValue[S, A any](game Game[S, A], state S, policy Policy, hero PlayerID) float64 {
	if game.IsTerminal(state) {
		return heroPayoff(game, state, hero)
	}

	player := game.CurrentPlayer(state)
	if player == Chance {
		return chanceValue(game, state, func(child S) float64 {
			return bestResponseValue(game, child, policy, hero)
		})
	}

	actions := game.LegalActions(state)

	if player == hero {
		best := math.Inf(-1)
		for _, a := range actions {
			v := bestResponseValue(game, game.Transition(state, a), policy, hero)
			if v > best {
				best = v
			}
		}

		return best
	}

	sigma := lookupSigma(policy, game.InfoSetKey(state, player), len(actions))
	v := 0.0
	for i, a := range actions {
		if sigma[i] == 0 {
			continue
		}

		v += sigma[i] * bestResponseValue(game, game.Transition(state, a), policy, hero)
	}

	return v
}

// NashConv is the sum over both players of their best-response value
// against policy. It is non-negative in zero-sum games and zero iff the
// policy is a Nash equilibrium.
func NashConv[S, A any](game Game[S, A], policy Policy) float64 {
	return BestResponseValue(game, policy, Player1) + BestResponseValue(game, policy, Player2)
}

// Exploitability is NashConv divided by the number of players.
func Exploitability[S, A any](game Game[S, A], policy Policy) float64 {
	return NashConv(game, policy) / 2
}

func heroPayoff[S, A any](game Game[S, A], state S, hero PlayerID) float64 {
	u1, u2 := game.Payoffs(state)
	if hero == Player1 {
		return u1
	}

	return u2
}

func chanceValue[S, A any](game Game[S, A], state S, eval func(S) float64) float64 {
	var v, mass float64
	for _, o := range game.ChanceOutcomes(state) {
		v += o.Prob * eval(o.State)
		mass += o.Prob
	}

	if math.Abs(mass-1.0) > chanceTol {
		panic(errors.Wrapf(ErrInvalidChance, "outcome probabilities sum to %v", mass))
	}

	return v
}

// lookupSigma resolves the strategy for one decision node, substituting a
// fresh uniform distribution when the policy is missing the infoset or
// disagrees about the number of actions.
func lookupSigma(policy Policy, key string, numActions int) []float64 {
	if sigma, ok := policy[key]; ok && len(sigma) == numActions {
		return sigma
	}

	sigma := make([]float64, numActions)
	uniform(sigma)
	return sigma
}

func checkObserver(hero PlayerID) {
	if hero != Player1 && hero != Player2 {
		panic(errors.Wrapf(ErrInvalidObserver, "hero=%v", hero))
	}
}

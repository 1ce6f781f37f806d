// Package tree provides exhaustive walks over a game's state tree, used by
// game implementations to test structural invariants.
package tree

import (
	cfr "github.com/cfrlab/tabular-cfr"
)

// Visit calls visitor on every state of the game tree rooted at state, in
// depth-first order.
func Visit[S, A any](game cfr.Game[S, A], state S, visitor func(S)) {
	visitor(state)
	if game.IsTerminal(state) {
		return
	}

	if game.CurrentPlayer(state) == cfr.Chance {
		for _, o := range game.ChanceOutcomes(state) {
			Visit(game, o.State, visitor)
		}

		return
	}

	for _, a := range game.LegalActions(state) {
		Visit(game, game.Transition(state, a), visitor)
	}
}

// VisitInfoSets calls visitor once per distinct information set of the
// acting player at each decision node.
func VisitInfoSets[S, A any](game cfr.Game[S, A], root S, visitor func(player cfr.PlayerID, key string)) {
	seen := make(map[string]struct{})
	Visit(game, root, func(s S) {
		if game.IsTerminal(s) {
			return
		}

		player := game.CurrentPlayer(s)
		if player == cfr.Chance {
			return
		}

		key := game.InfoSetKey(s, player)
		if _, ok := seen[key]; ok {
			return
		}

		seen[key] = struct{}{}
		visitor(player, key)
	})
}

// VisitTerminals calls visitor on every terminal state.
func VisitTerminals[S, A any](game cfr.Game[S, A], root S, visitor func(S)) {
	Visit(game, root, func(s S) {
		if game.IsTerminal(s) {
			visitor(s)
		}
	})
}

// CountNodes returns the total number of states in the game tree.
func CountNodes[S, A any](game cfr.Game[S, A], root S) int {
	total := 0
	Visit(game, root, func(S) { total++ })
	return total
}

// CountTerminalNodes returns the number of terminal states.
func CountTerminalNodes[S, A any](game cfr.Game[S, A], root S) int {
	total := 0
	VisitTerminals(game, root, func(S) { total++ })
	return total
}

// CountInfoSets returns the number of distinct information sets across
// both players.
func CountInfoSets[S, A any](game cfr.Game[S, A], root S) int {
	total := 0
	VisitInfoSets(game, root, func(cfr.PlayerID, string) { total++ })
	return total
}

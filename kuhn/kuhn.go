// Package kuhn implements Kuhn poker: a three-card, one-round betting game
// that is the standard smoke test for CFR solvers. Both players ante one
// chip, each is dealt one card from {J, Q, K}, and a single bet of one
// chip is allowed.
package kuhn

import (
	"fmt"

	"github.com/pkg/errors"

	cfr "github.com/cfrlab/tabular-cfr"
)

// Action is a single betting move. Call doubles as "check" when there is
// no outstanding bet.
type Action byte

const (
	Call Action = 'c'
	Bet  Action = 'b'
	Fold Action = 'f'
)

// Ante is each player's forced contribution before the deal.
const Ante = 1.0

// Cards is the deck, ordered by rank.
var Cards = [3]byte{'J', 'Q', 'K'}

// Betting histories at which the hand ends.
const (
	histCallCall    = "cc"
	histBetCall     = "bc"
	histBetFold     = "bf"
	histCallBetCall = "cbc"
	histCallBetFold = "cbf"
)

// State fully describes one node of the Kuhn game tree. States are small
// values, copied on transition.
type State struct {
	P1Contribution float64
	P2Contribution float64
	Pot            float64

	// History is the sequence of betting actions taken so far.
	History string

	// CardsDealt holds the private cards in deal order: CardsDealt[0] is
	// player 1's card, CardsDealt[1] is player 2's.
	CardsDealt string
}

// Game implements cfr.Game for Kuhn poker.
type Game struct{}

var _ cfr.Game[State, Action] = Game{}

// New returns the Kuhn poker game definition.
func New() Game {
	return Game{}
}

// InitialState implements cfr.Game.
func (Game) InitialState() State {
	return State{
		P1Contribution: Ante,
		P2Contribution: Ante,
		Pot:            2 * Ante,
	}
}

// IsTerminal implements cfr.Game.
func (Game) IsTerminal(s State) bool {
	switch s.History {
	case histCallCall, histBetCall, histBetFold, histCallBetCall, histCallBetFold:
		return true
	}

	return false
}

// CurrentPlayer implements cfr.Game. Both private cards are dealt before
// any betting, so every state with fewer than two cards is a chance node.
func (Game) CurrentPlayer(s State) cfr.PlayerID {
	if len(s.CardsDealt) < 2 {
		return cfr.Chance
	}

	if len(s.History)%2 == 0 {
		return cfr.Player1
	}

	return cfr.Player2
}

// LegalActions implements cfr.Game.
func (Game) LegalActions(s State) []Action {
	switch s.History {
	case "", "c":
		return []Action{Call, Bet}
	case "b", "cb":
		return []Action{Call, Fold}
	}

	return nil
}

// Transition implements cfr.Game.
func (g Game) Transition(s State, action Action) State {
	player := g.CurrentPlayer(s)
	next := s
	next.History += string(action)

	// A bet always puts in a chip; a call puts in a chip only when it is
	// matching an outstanding bet.
	paying := action == Bet ||
		(action == Call && (s.History == "b" || s.History == "cb"))
	if paying {
		if player == cfr.Player1 {
			next.P1Contribution++
		} else {
			next.P2Contribution++
		}

		next.Pot++
	}

	return next
}

// ChanceOutcomes implements cfr.Game: player 1's card is dealt uniformly
// from the full deck, then player 2's from the remaining two cards.
func (Game) ChanceOutcomes(s State) []cfr.ChanceOutcome[State] {
	switch len(s.CardsDealt) {
	case 0:
		outcomes := make([]cfr.ChanceOutcome[State], 0, len(Cards))
		for _, card := range Cards {
			next := s
			next.CardsDealt = string(card)
			outcomes = append(outcomes, cfr.ChanceOutcome[State]{State: next, Prob: 1.0 / 3.0})
		}

		return outcomes
	case 1:
		outcomes := make([]cfr.ChanceOutcome[State], 0, len(Cards)-1)
		for _, card := range Cards {
			if card == s.CardsDealt[0] {
				continue
			}

			next := s
			next.CardsDealt += string(card)
			outcomes = append(outcomes, cfr.ChanceOutcome[State]{State: next, Prob: 1.0 / 2.0})
		}

		return outcomes
	}

	panic(errors.Wrapf(cfr.ErrInvalidChance, "all cards already dealt in %q", s.CardsDealt))
}

// Payoffs implements cfr.Game. The winner takes the opponent's
// contribution; the loser forfeits their own, so payoffs always sum to
// zero.
func (g Game) Payoffs(s State) (float64, float64) {
	var p1Wins bool
	switch s.History {
	case histCallCall, histBetCall, histCallBetCall:
		p1Wins = cardRank(s.CardsDealt[0]) > cardRank(s.CardsDealt[1])
	case histBetFold:
		p1Wins = true
	case histCallBetFold:
		p1Wins = false
	default:
		panic(errors.Wrapf(cfr.ErrInvalidTerminal, "history %q", s.History))
	}

	if p1Wins {
		return s.Pot - s.P1Contribution, -s.P2Contribution
	}

	return -s.P1Contribution, s.Pot - s.P2Contribution
}

// InfoSetKey implements cfr.Game. The key is the observer identity, their
// private card, and the public betting history, e.g. "1:J|" at player 1's
// first decision with the jack, or "2:K|b" for player 2 holding the king
// facing a bet.
func (Game) InfoSetKey(s State, observer cfr.PlayerID) string {
	if observer != cfr.Player1 && observer != cfr.Player2 {
		panic(errors.Wrapf(cfr.ErrInvalidObserver, "observer=%v", observer))
	}

	return fmt.Sprintf("%d:%c|%s", observer+1, s.CardsDealt[observer], s.History)
}

// ActionString implements cfr.Game.
func (Game) ActionString(a Action) string {
	switch a {
	case Call:
		return "CHECK/CALL (c)"
	case Bet:
		return "BET (b)"
	case Fold:
		return "FOLD (f)"
	}

	return fmt.Sprintf("UNKNOWN (%c)", a)
}

func cardRank(card byte) int {
	switch card {
	case 'J':
		return 0
	case 'Q':
		return 1
	case 'K':
		return 2
	}

	return -1
}

// Package leduc implements Leduc hold'em: a six-card, two-round betting
// game with one public card, the standard mid-size benchmark for CFR
// solvers. Both players ante one chip and are dealt one private card from
// a deck of three ranks with two suits each. After the first betting round
// a single public card is revealed and a second round is played with a
// larger fixed raise. At showdown a private card paired with the public
// card beats any unpaired hand.
package leduc

import (
	"fmt"

	"github.com/pkg/errors"

	cfr "github.com/cfrlab/tabular-cfr"
)

// Action is a single betting move. Call doubles as "check" when there is
// no outstanding bet.
type Action byte

const (
	Bet  Action = 'B'
	Call Action = 'C'
	Fold Action = 'F'
)

// Round identifies the betting round.
type Round uint8

const (
	Preflop Round = iota
	Flop
)

// Betting structure.
const (
	Ante         = 1.0
	PreflopRaise = 2.0
	FlopRaise    = 4.0
)

// Cards is the deck: three ranks, two suits each. Suit never matters
// except that it makes pairing with the public card possible.
var Cards = [6]byte{'J', 'j', 'Q', 'q', 'K', 'k'}

// Per-round betting histories. A round ends on a check-check, a called
// bet, or a fold.
const (
	histCheck        = "C"
	histBet          = "B"
	histCheckCheck   = "CC"
	histCheckBet     = "CB"
	histBetCall      = "BC"
	histBetFold      = "BF"
	histCheckBetCall = "CBC"
	histCheckBetFold = "CBF"
)

// noCard marks an undealt card slot.
const noCard byte = 0

// State fully describes one node of the Leduc game tree. States are small
// values, copied on transition.
type State struct {
	P1Contribution float64
	P2Contribution float64
	Pot            float64

	// Round is the current betting round. Histories are kept per round;
	// Flop stays empty until the public card is dealt.
	Round   Round
	Preflop string
	Flop    string

	P1Card     byte
	P2Card     byte
	PublicCard byte

	// Turn is the player to act, tracked explicitly because the deal of
	// the public card interrupts the betting alternation.
	Turn cfr.PlayerID
}

// roundHistory returns the betting history of the current round.
func (s State) roundHistory() string {
	if s.Round == Preflop {
		return s.Preflop
	}

	return s.Flop
}

// Game implements cfr.Game for Leduc hold'em.
type Game struct{}

var _ cfr.Game[State, Action] = Game{}

// New returns the Leduc hold'em game definition.
func New() Game {
	return Game{}
}

// InitialState implements cfr.Game.
func (Game) InitialState() State {
	return State{
		P1Contribution: Ante,
		P2Contribution: Ante,
		Pot:            2 * Ante,
		Turn:           cfr.Chance,
	}
}

// IsTerminal implements cfr.Game. A fold ends the hand in either round; a
// check-check or called bet ends the hand only on the flop, since preflop
// it just triggers the public card deal.
func (Game) IsTerminal(s State) bool {
	switch h := s.roundHistory(); {
	case h == histBetFold || h == histCheckBetFold:
		return true
	case s.Round == Flop && (h == histCheckCheck || h == histBetCall || h == histCheckBetCall):
		return true
	}

	return false
}

// CurrentPlayer implements cfr.Game.
func (Game) CurrentPlayer(s State) cfr.PlayerID {
	return s.Turn
}

// LegalActions implements cfr.Game.
func (Game) LegalActions(s State) []Action {
	if s.Turn == cfr.Chance {
		return nil
	}

	switch s.roundHistory() {
	case "", histCheck:
		return []Action{Bet, Call}
	case histBet, histCheckBet:
		return []Action{Call, Fold}
	}

	return nil
}

// Transition implements cfr.Game.
func (g Game) Transition(s State, action Action) State {
	next := s

	h := s.roundHistory() + string(action)
	if s.Round == Preflop {
		next.Preflop = h
	} else {
		next.Flop = h
	}

	switch action {
	case Bet:
		raise := PreflopRaise
		if s.Round == Flop {
			raise = FlopRaise
		}

		if s.Turn == cfr.Player1 {
			next.P1Contribution += raise
		} else {
			next.P2Contribution += raise
		}

		next.Pot += raise
	case Call:
		// Matching the outstanding bet; zero when the call is a check.
		var toCall float64
		if s.Turn == cfr.Player1 {
			toCall = s.P2Contribution - s.P1Contribution
			next.P1Contribution += toCall
		} else {
			toCall = s.P1Contribution - s.P2Contribution
			next.P2Contribution += toCall
		}

		next.Pot += toCall
	}

	roundComplete := h == histCheckCheck || h == histBetCall || h == histCheckBetCall ||
		h == histBetFold || h == histCheckBetFold
	fold := h == histBetFold || h == histCheckBetFold

	if roundComplete && s.Round == Preflop && !fold {
		next.Turn = cfr.Chance
	} else {
		next.Turn = s.Turn.Opponent()
	}

	return next
}

// ChanceOutcomes implements cfr.Game. Deals are uniform over the cards not
// yet dealt: first player 1's private card, then player 2's, then (after
// the preflop round completes without a fold) the public card, which also
// advances the state to the flop round.
func (Game) ChanceOutcomes(s State) []cfr.ChanceOutcome[State] {
	if s.Turn != cfr.Chance {
		panic(errors.Wrapf(cfr.ErrInvalidChance, "%v to act", s.Turn))
	}

	remaining := make([]byte, 0, len(Cards))
	for _, card := range Cards {
		if card == s.P1Card || card == s.P2Card || card == s.PublicCard {
			continue
		}

		remaining = append(remaining, card)
	}

	prob := 1.0 / float64(len(remaining))
	outcomes := make([]cfr.ChanceOutcome[State], 0, len(remaining))
	for _, card := range remaining {
		next := s
		switch {
		case s.P1Card == noCard:
			next.P1Card = card
			next.Turn = cfr.Chance
		case s.P2Card == noCard:
			next.P2Card = card
			next.Turn = cfr.Player1
		default:
			next.PublicCard = card
			next.Round = Flop
			next.Turn = cfr.Player1
		}

		outcomes = append(outcomes, cfr.ChanceOutcome[State]{State: next, Prob: prob})
	}

	return outcomes
}

// Payoffs implements cfr.Game. At showdown the stronger hand takes the
// opponent's contribution; equal strength splits the pot for zero net. A
// fold awards the pot to the bettor regardless of cards.
func (g Game) Payoffs(s State) (float64, float64) {
	if !g.IsTerminal(s) {
		panic(errors.Wrapf(cfr.ErrInvalidTerminal, "round %d history %q", s.Round, s.roundHistory()))
	}

	var p1Wins bool
	switch h := s.roundHistory(); h {
	case histCheckCheck, histBetCall, histCheckBetCall:
		p1 := handStrength(s.P1Card, s.PublicCard)
		p2 := handStrength(s.P2Card, s.PublicCard)
		if p1 == p2 {
			return 0, 0
		}

		p1Wins = p1 > p2
	case histBetFold:
		p1Wins = true
	case histCheckBetFold:
		p1Wins = false
	default:
		panic(errors.Wrapf(cfr.ErrInvalidTerminal, "round %d history %q", s.Round, h))
	}

	if p1Wins {
		return s.Pot - s.P1Contribution, -s.P2Contribution
	}

	return -s.P1Contribution, s.Pot - s.P2Contribution
}

// InfoSetKey implements cfr.Game. The key is the observer identity, their
// private card, the public card (or '_' before the flop), and both round
// histories, e.g. "1:J|_|CB/" preflop or "2:q|K|BC/C" on the flop.
func (Game) InfoSetKey(s State, observer cfr.PlayerID) string {
	priv := s.P1Card
	switch observer {
	case cfr.Player1:
	case cfr.Player2:
		priv = s.P2Card
	default:
		panic(errors.Wrapf(cfr.ErrInvalidObserver, "observer=%v", observer))
	}

	pub := byte('_')
	if s.PublicCard != noCard {
		pub = s.PublicCard
	}

	return fmt.Sprintf("%d:%c|%c|%s/%s", observer+1, priv, pub, s.Preflop, s.Flop)
}

// ActionString implements cfr.Game.
func (Game) ActionString(a Action) string {
	switch a {
	case Call:
		return "CHECK/CALL (C)"
	case Bet:
		return "BET (B)"
	case Fold:
		return "FOLD (F)"
	}

	return fmt.Sprintf("UNKNOWN (%c)", a)
}

// handStrength scores a private card against the public card: rank 0..2,
// plus 3 when paired, so any pair beats any unpaired hand.
func handStrength(private, public byte) int {
	strength := 0
	if lower(private) == lower(public) {
		strength += 3
	}

	switch lower(private) {
	case 'j':
	case 'q':
		strength++
	case 'k':
		strength += 2
	}

	return strength
}

func lower(card byte) byte {
	if card >= 'A' && card <= 'Z' {
		return card + ('a' - 'A')
	}

	return card
}

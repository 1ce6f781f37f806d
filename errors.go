package cfr

import "github.com/pkg/errors"

// The solver and conforming games raise only programmer errors: violations
// of the Game contract. All are fatal and surface as panics wrapping one of
// the sentinel values below.
var (
	// ErrInvalidTerminal indicates Payoffs was called on a non-terminal
	// state, or a terminal state disagreed with IsTerminal.
	ErrInvalidTerminal = errors.New("payoffs requested for non-terminal state")

	// ErrInvalidChance indicates ChanceOutcomes was called on a state whose
	// current player is not Chance, or the outcome probabilities do not sum
	// to 1 within tolerance.
	ErrInvalidChance = errors.New("invalid chance node")

	// ErrInvalidObserver indicates InfoSetKey was called with an observer
	// other than Player1 or Player2.
	ErrInvalidObserver = errors.New("information set observer must be a player")

	// ErrLegalActionsChanged indicates the legal action list returned for a
	// known information set changed length between visits.
	ErrLegalActionsChanged = errors.New("legal actions changed for information set")
)

// chanceTol is the tolerance applied when checking that chance outcome
// probabilities sum to 1.
const chanceTol = 1e-9

package game

import (
	"github.com/lox/blackjacktrainer/internal/deck"
)

// Phase is the round state machine phase.
type Phase string

const (
	Betting    Phase = "betting"
	Dealing    Phase = "dealing"
	PlayerTurn Phase = "playerTurn"
	DealerTurn Phase = "dealerTurn"
	Complete   Phase = "complete"
)

// Legality holds the per-phase action flags the rendering collaborator
// gates its controls on. The engine re-checks them on every transition.
type Legality struct {
	CanHit       bool `json:"canHit"`
	CanStand     bool `json:"canStand"`
	CanDouble    bool `json:"canDouble"`
	CanSplit     bool `json:"canSplit"`
	CanSurrender bool `json:"canSurrender"`
}

// Round is one immutable snapshot of the round state machine. Transitions
// read a snapshot and produce a new one; nothing outside the engine writes
// to it. The deck is stored tail-up: the last element is the next card
// drawn.
type Round struct {
	Deck        []deck.Card `json:"deck"`
	PlayerHands []Hand      `json:"playerHands"`
	DealerHand  Hand        `json:"dealerHand"`
	CurrentBet  int         `json:"currentBet"`
	Bank        float64     `json:"bank"`
	Phase       Phase       `json:"gamePhase"`
	ActiveHand  int         `json:"activeHandIndex"`
	Surrendered bool        `json:"surrendered"`
	Legality
}

// clone returns a deep enough copy for copy-on-write transitions: slices
// are duplicated, hands are value types and card slices inside hands are
// never mutated in place.
func (r *Round) clone() *Round {
	next := *r
	next.Deck = make([]deck.Card, len(r.Deck))
	copy(next.Deck, r.Deck)
	next.PlayerHands = make([]Hand, len(r.PlayerHands))
	copy(next.PlayerHands, r.PlayerHands)
	return &next
}

// Active returns the player hand currently being acted on, or a zero hand
// when no hands have been dealt.
func (r *Round) Active() Hand {
	if r.ActiveHand < 0 || r.ActiveHand >= len(r.PlayerHands) {
		return Hand{}
	}
	return r.PlayerHands[r.ActiveHand]
}

// clearLegality zeroes every action flag.
func (r *Round) clearLegality() {
	r.Legality = Legality{}
}

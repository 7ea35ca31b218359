package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjacktrainer/internal/deck"
)

// Hand is a scored sequence of cards. Score and the derived flags are
// recomputed from Cards on every change and never mutated independently.
type Hand struct {
	Cards     []deck.Card `json:"cards"`
	Score     int         `json:"score"`
	Soft      bool        `json:"isSoft"`
	Bust      bool        `json:"isBust"`
	Blackjack bool        `json:"isBlackjack"`
}

// NewHand scores the given cards into a Hand.
func NewHand(cards ...deck.Card) Hand {
	return Score(cards)
}

// Score computes the blackjack total for a card sequence.
//
// Non-ace values are summed first, then each ace is counted greedily as 11
// unless that (with every remaining undecided ace forced to its minimum of
// 1) would bust the hand. A hand is soft while at least one ace still
// counts as 11, and a blackjack is exactly two cards totalling 21.
func Score(cards []deck.Card) Hand {
	score := 0
	aces := 0

	for _, c := range cards {
		if c.IsAce() {
			aces++
		} else {
			score += c.Value()
		}
	}

	soft := false
	for i := 0; i < aces; i++ {
		remaining := aces - i - 1
		if score+11+remaining <= 21 {
			score += 11
			soft = true
		} else {
			score++
		}
	}

	return Hand{
		Cards:     cards,
		Score:     score,
		Soft:      soft,
		Bust:      score > 21,
		Blackjack: score == 21 && len(cards) == 2,
	}
}

// Add returns a new scored hand with card appended. The receiver's card
// slice is never mutated.
func (h Hand) Add(card deck.Card) Hand {
	cards := make([]deck.Card, len(h.Cards), len(h.Cards)+1)
	copy(cards, h.Cards)
	return Score(append(cards, card))
}

// String renders the hand as "A♠ K♥ (21)".
func (h Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	s := strings.Join(parts, " ")
	switch {
	case h.Bust:
		return s + " (bust)"
	case h.Blackjack:
		return s + " (blackjack)"
	default:
		return s + " (" + strconv.Itoa(h.Score) + ")"
	}
}

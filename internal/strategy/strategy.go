// Package strategy holds the trainer's reference tables: the basic
// strategy chart and the rolling-count card values. Everything here is a
// pure function of its inputs; the tables are not engine state.
package strategy

import (
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
)

// Action is a recommended play from the basic strategy chart.
type Action string

const (
	Hit              Action = "H"
	Stand            Action = "S"
	DoubleOrHit      Action = "D"
	Split            Action = "P"
	SurrenderOrHit   Action = "Rh"
	SurrenderOrStand Action = "Rs"
)

// Description returns the long form of an action for display.
func (a Action) Description() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case DoubleOrHit:
		return "Double if allowed, otherwise Hit"
	case Split:
		return "Split"
	case SurrenderOrHit:
		return "Surrender if allowed, otherwise Hit"
	case SurrenderOrStand:
		return "Surrender if allowed, otherwise Stand"
	default:
		return "Unknown"
	}
}

// HandType selects which strategy table applies.
type HandType string

const (
	HardTotal HandType = "hard"
	SoftTotal HandType = "soft"
	Pair      HandType = "pairs"
)

// Suggest returns the chart action for a player total against a dealer
// upcard value (2–11, where 11 is an ace). For pairs, playerTotal is the
// blackjack value of one of the paired cards (2–11).
func Suggest(handType HandType, playerTotal, dealerUp int) Action {
	switch handType {
	case SoftTotal:
		return softTotalAction(playerTotal, dealerUp)
	case Pair:
		return pairAction(playerTotal, dealerUp)
	default:
		return hardTotalAction(playerTotal, dealerUp)
	}
}

// SuggestForHand classifies a live hand and consults the chart.
func SuggestForHand(hand game.Hand, dealerUp deck.Card) Action {
	if len(hand.Cards) == 2 && hand.Cards[0].Value() == hand.Cards[1].Value() {
		return Suggest(Pair, hand.Cards[0].Value(), dealerUp.Value())
	}
	if hand.Soft {
		return Suggest(SoftTotal, hand.Score, dealerUp.Value())
	}
	return Suggest(HardTotal, hand.Score, dealerUp.Value())
}

func hardTotalAction(playerTotal, dealerUp int) Action {
	switch {
	case playerTotal >= 17:
		return Stand
	case playerTotal <= 8:
		return Hit
	case playerTotal == 16 && dealerUp >= 9:
		return SurrenderOrHit
	case playerTotal == 15 && dealerUp == 10:
		return SurrenderOrHit
	case playerTotal >= 13 && dealerUp <= 6:
		return Stand
	case playerTotal == 11:
		return DoubleOrHit
	case playerTotal == 10 && dealerUp <= 9:
		return DoubleOrHit
	case playerTotal == 9 && dealerUp >= 3 && dealerUp <= 6:
		return DoubleOrHit
	default:
		return Hit
	}
}

func softTotalAction(playerTotal, dealerUp int) Action {
	switch {
	case playerTotal >= 20:
		return Stand
	case playerTotal == 19:
		if dealerUp == 6 {
			return DoubleOrHit
		}
		return Stand
	case playerTotal == 18:
		switch {
		case dealerUp >= 9:
			return Hit
		case dealerUp >= 7:
			return Stand
		default:
			return DoubleOrHit
		}
	case playerTotal == 17:
		if dealerUp >= 3 && dealerUp <= 6 {
			return DoubleOrHit
		}
		return Hit
	case playerTotal == 16, playerTotal == 15:
		if dealerUp >= 4 && dealerUp <= 6 {
			return DoubleOrHit
		}
		return Hit
	case playerTotal == 14, playerTotal == 13:
		if dealerUp >= 5 && dealerUp <= 6 {
			return DoubleOrHit
		}
		return Hit
	default:
		return Hit
	}
}

// pairAction takes the blackjack value of one paired card: 11 for aces,
// 10 for any ten-value pair.
func pairAction(cardValue, dealerUp int) Action {
	switch cardValue {
	case 11:
		return Split
	case 10:
		return Stand
	case 9:
		if dealerUp == 7 || dealerUp >= 10 {
			return Stand
		}
		return Split
	case 8:
		return Split
	case 7:
		if dealerUp <= 7 {
			return Split
		}
		return Hit
	case 6:
		if dealerUp <= 6 {
			return Split
		}
		return Hit
	case 5:
		if dealerUp <= 9 {
			return DoubleOrHit
		}
		return Hit
	case 4:
		if dealerUp == 5 || dealerUp == 6 {
			return Split
		}
		return Hit
	case 3, 2:
		if dealerUp <= 7 {
			return Split
		}
		return Hit
	default:
		return Hit
	}
}

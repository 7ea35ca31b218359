package game

// Rules captures the table rules the engine plays under. The zero value is
// not useful; use DefaultRules or decode a config file.
type Rules struct {
	NumDecks         int
	DealerHitsSoft17 bool
	SurrenderAllowed bool
	DoubleAfterSplit bool
}

// DefaultRules returns the house rules the trainer ships with: six-deck
// shoe, dealer hits soft 17, late surrender and double-after-split allowed.
func DefaultRules() Rules {
	return Rules{
		NumDecks:         6,
		DealerHitsSoft17: true,
		SurrenderAllowed: true,
		DoubleAfterSplit: true,
	}
}

// CanSplit reports whether hand may be split: exactly two cards of equal
// blackjack value (10♠/K♦ counts, ranks need not match) with enough bank
// left to cover the second hand's matching bet.
func CanSplit(hand Hand, bank float64, currentBet int) bool {
	return len(hand.Cards) == 2 &&
		hand.Cards[0].Value() == hand.Cards[1].Value() &&
		bank >= float64(currentBet)
}

// CanDouble reports whether the bank covers doubling the current bet.
func CanDouble(bank float64, currentBet int) bool {
	return bank >= float64(currentBet)
}

// CanSurrender reports whether surrender is on offer for the given phase.
// It is phase-only; the round state machine is responsible for withdrawing
// the option once the hand has been acted on.
func CanSurrender(phase Phase) bool {
	return phase == PlayerTurn
}

// DealerShouldDraw implements the dealer's drawing rule for hand: draw
// below 17, and on 17 only when the hand is soft and the table hits soft
// 17.
func (r Rules) DealerShouldDraw(hand Hand) bool {
	if hand.Score < 17 {
		return true
	}
	return r.DealerHitsSoft17 && hand.Score == 17 && hand.Soft
}

// Payout resolves a single player hand against the dealer hand.
//
// The returned amount is the total credited to the bank for this hand,
// with one deliberate asymmetry carried from the reference behavior: a
// winning blackjack returns only the 3:2 profit (bet × 1.5) and the
// settlement step adds the original stake back, while a regular win
// returns stake plus profit (bet × 2). A push returns the stake and a
// loss or bust returns 0. Surrender returns half the bet.
func Payout(playerHand, dealerHand Hand, bet int, surrendered bool) float64 {
	b := float64(bet)

	switch {
	case surrendered:
		return b / 2
	case playerHand.Bust:
		return 0
	case playerHand.Blackjack && !dealerHand.Blackjack:
		return b * 1.5
	case dealerHand.Bust || playerHand.Score > dealerHand.Score:
		return b * 2
	case playerHand.Score == dealerHand.Score:
		return b
	default:
		return 0
	}
}

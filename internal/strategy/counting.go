package strategy

import "github.com/lox/blackjacktrainer/internal/deck"

// CountValue returns the rolling-count increment for a rank: +1 for the
// low cards (2–6), 0 for the neutral cards (7–9) and −1 for tens and
// aces. The count is balanced: a full deck sums to zero.
func CountValue(rank deck.Rank) int {
	switch {
	case rank >= deck.Two && rank <= deck.Six:
		return 1
	case rank >= deck.Seven && rank <= deck.Nine:
		return 0
	default:
		return -1
	}
}

// RunningCount sums the count values of a dealt card sequence.
func RunningCount(cards []deck.Card) int {
	count := 0
	for _, c := range cards {
		count += CountValue(c.Rank)
	}
	return count
}

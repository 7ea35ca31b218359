package statistics

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/stretchr/testify/assert"
)

func hand(cards string) game.Hand {
	return game.Score(deck.MustParseCards(cards))
}

func TestAddClassifiesHands(t *testing.T) {
	s := NewSession()

	s.Add(RoundResult{
		Hands:   []game.Hand{hand("TsKh")},
		Bet:     10,
		Payouts: []float64{20},
	})
	s.Add(RoundResult{
		Hands:   []game.Hand{hand("Ts7h")},
		Bet:     10,
		Payouts: []float64{0},
	})
	s.Add(RoundResult{
		Hands:   []game.Hand{hand("Ts9h")},
		Bet:     10,
		Payouts: []float64{10},
	})

	assert.Equal(t, 3, s.HandsPlayed)
	assert.Equal(t, 1, s.HandsWon)
	assert.Equal(t, 1, s.HandsLost)
	assert.Equal(t, 1, s.HandsPushed)
	assert.Equal(t, 0.0, s.ProfitLoss)
	assert.InDelta(t, 1.0/3.0, s.WinRate(), 1e-9)
}

func TestAddSplitRoundCountsEachHand(t *testing.T) {
	s := NewSession()

	s.Add(RoundResult{
		Hands:   []game.Hand{hand("8cTh"), hand("8d4h")},
		Bet:     20,
		Payouts: []float64{40, 0},
	})

	assert.Equal(t, 2, s.HandsPlayed)
	assert.Equal(t, 1, s.HandsWon)
	assert.Equal(t, 1, s.HandsLost)
	// One win of +20 and one loss of −20.
	assert.Equal(t, 0.0, s.ProfitLoss)
	// The bet is recorded once per round.
	assert.Equal(t, []int{20}, s.Bets)
}

func TestProfitLossExtremes(t *testing.T) {
	s := NewSession()

	s.Add(RoundResult{Hands: []game.Hand{hand("TsKh")}, Bet: 50, Payouts: []float64{100}})
	assert.Equal(t, 50.0, s.MaxProfit)

	s.Add(RoundResult{Hands: []game.Hand{hand("Ts7h")}, Bet: 100, Payouts: []float64{0}})
	s.Add(RoundResult{Hands: []game.Hand{hand("Ts7h")}, Bet: 100, Payouts: []float64{0}})
	assert.Equal(t, -150.0, s.ProfitLoss)
	assert.Equal(t, -150.0, s.MaxLoss)
	assert.Equal(t, 50.0, s.MaxProfit, "peak survives later losses")
}

func TestCounters(t *testing.T) {
	s := NewSession()
	s.Add(RoundResult{
		Hands:   []game.Hand{hand("AsKh"), hand("Ts9h5c")},
		Bet:     10,
		Payouts: []float64{25, 0},
	})

	assert.Equal(t, 1, s.BlackjackCount())
	assert.Equal(t, 1, s.BustCount())
}

func TestEmptySessionWinRate(t *testing.T) {
	assert.Equal(t, 0.0, NewSession().WinRate())
}

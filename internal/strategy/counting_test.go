package strategy

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/randutil"
)

func TestCountValue(t *testing.T) {
	tests := []struct {
		rank deck.Rank
		want int
	}{
		{deck.Two, 1},
		{deck.Six, 1},
		{deck.Seven, 0},
		{deck.Nine, 0},
		{deck.Ten, -1},
		{deck.King, -1},
		{deck.Ace, -1},
	}
	for _, tt := range tests {
		if got := CountValue(tt.rank); got != tt.want {
			t.Errorf("CountValue(%s) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestRunningCount(t *testing.T) {
	cards := deck.MustParseCards("2c6dKh9sAc3d")
	// +1 +1 -1 0 -1 +1 = 1
	if got := RunningCount(cards); got != 1 {
		t.Errorf("RunningCount = %d, want 1", got)
	}
}

func TestFullDeckIsBalanced(t *testing.T) {
	shoe := deck.NewShoe(1, randutil.New(1))
	if got := RunningCount(shoe.Cards()); got != 0 {
		t.Errorf("full deck count = %d, want 0", got)
	}
}

package strategy

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
)

func TestHardTotals(t *testing.T) {
	tests := []struct {
		total    int
		dealerUp int
		want     Action
	}{
		{20, 6, Stand},
		{17, 10, Stand},
		{16, 9, SurrenderOrHit},
		{16, 10, SurrenderOrHit},
		{16, 11, SurrenderOrHit},
		{16, 8, Hit},
		{15, 10, SurrenderOrHit},
		{15, 9, Hit},
		{14, 5, Stand},
		{13, 2, Stand},
		{13, 7, Hit},
		{12, 4, Hit},
		{11, 11, DoubleOrHit},
		{10, 9, DoubleOrHit},
		{10, 10, Hit},
		{9, 3, DoubleOrHit},
		{9, 2, Hit},
		{8, 5, Hit},
		{5, 2, Hit},
	}

	for _, tt := range tests {
		if got := Suggest(HardTotal, tt.total, tt.dealerUp); got != tt.want {
			t.Errorf("hard %d vs %d = %s, want %s", tt.total, tt.dealerUp, got, tt.want)
		}
	}
}

func TestSoftTotals(t *testing.T) {
	tests := []struct {
		total    int
		dealerUp int
		want     Action
	}{
		{20, 6, Stand},
		{19, 6, DoubleOrHit},
		{19, 5, Stand},
		{18, 9, Hit},
		{18, 7, Stand},
		{18, 2, DoubleOrHit},
		{17, 3, DoubleOrHit},
		{17, 2, Hit},
		{16, 4, DoubleOrHit},
		{15, 3, Hit},
		{14, 5, DoubleOrHit},
		{13, 4, Hit},
	}

	for _, tt := range tests {
		if got := Suggest(SoftTotal, tt.total, tt.dealerUp); got != tt.want {
			t.Errorf("soft %d vs %d = %s, want %s", tt.total, tt.dealerUp, got, tt.want)
		}
	}
}

func TestPairs(t *testing.T) {
	tests := []struct {
		cardValue int
		dealerUp  int
		want      Action
	}{
		{11, 10, Split},
		{10, 6, Stand},
		{9, 7, Stand},
		{9, 6, Split},
		{9, 10, Stand},
		{8, 10, Split},
		{7, 7, Split},
		{7, 8, Hit},
		{6, 6, Split},
		{6, 7, Hit},
		{5, 9, DoubleOrHit},
		{5, 10, Hit},
		{4, 5, Split},
		{4, 4, Hit},
		{3, 7, Split},
		{2, 8, Hit},
	}

	for _, tt := range tests {
		if got := Suggest(Pair, tt.cardValue, tt.dealerUp); got != tt.want {
			t.Errorf("pair of %ds vs %d = %s, want %s", tt.cardValue, tt.dealerUp, got, tt.want)
		}
	}
}

func TestSuggestForHand(t *testing.T) {
	tests := []struct {
		player string
		dealer string
		want   Action
	}{
		{"8c8d", "Th", Split},          // pair
		{"KcTd", "6h", Stand},          // ten-value pair plays as a pair
		{"As6d", "4h", DoubleOrHit},    // soft 17
		{"As6d2c", "6h", DoubleOrHit},  // soft 19 vs 6
		{"Ts6d", "9h", SurrenderOrHit}, // hard 16
		{"5c3d2h", "6h", DoubleOrHit},  // hard 10 across three cards is not a pair
	}

	for _, tt := range tests {
		hand := game.Score(deck.MustParseCards(tt.player))
		up := deck.MustParseCards(tt.dealer)[0]
		if got := SuggestForHand(hand, up); got != tt.want {
			t.Errorf("SuggestForHand(%s vs %s) = %s, want %s", tt.player, tt.dealer, got, tt.want)
		}
	}
}

func TestActionDescriptions(t *testing.T) {
	for _, a := range []Action{Hit, Stand, DoubleOrHit, Split, SurrenderOrHit, SurrenderOrStand} {
		if a.Description() == "Unknown" {
			t.Errorf("missing description for %s", a)
		}
	}
}

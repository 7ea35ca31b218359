package game

import (
	"testing"

	"github.com/lox/blackjacktrainer/internal/deck"
)

func TestScore(t *testing.T) {
	tests := []struct {
		cards     string
		score     int
		soft      bool
		bust      bool
		blackjack bool
	}{
		{"KsQh", 20, false, false, false},
		{"AsKh", 21, true, false, true},
		{"As5h", 16, true, false, false},
		{"AsAh9c", 21, true, false, false},
		{"AsAhAc8d", 21, true, false, false},
		{"AsAh", 12, true, false, false},
		{"KsQh5c", 25, false, true, false},
		{"As5h9c", 15, false, false, false},
		{"7c7h7d", 21, false, false, false},
		{"2c3d", 5, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			hand := Score(deck.MustParseCards(tt.cards))
			if hand.Score != tt.score {
				t.Errorf("Score(%s) = %d, want %d", tt.cards, hand.Score, tt.score)
			}
			if hand.Soft != tt.soft {
				t.Errorf("Score(%s).Soft = %v, want %v", tt.cards, hand.Soft, tt.soft)
			}
			if hand.Bust != tt.bust {
				t.Errorf("Score(%s).Bust = %v, want %v", tt.cards, hand.Bust, tt.bust)
			}
			if hand.Blackjack != tt.blackjack {
				t.Errorf("Score(%s).Blackjack = %v, want %v", tt.cards, hand.Blackjack, tt.blackjack)
			}
		})
	}
}

func TestHandAddDoesNotMutate(t *testing.T) {
	original := NewHand(deck.MustParseCards("Ts5h")...)
	grown := original.Add(deck.MustParseCards("2c")[0])

	if len(original.Cards) != 2 {
		t.Fatalf("original hand mutated: %v", original.Cards)
	}
	if grown.Score != 17 {
		t.Errorf("grown.Score = %d, want 17", grown.Score)
	}
	if original.Score != 15 {
		t.Errorf("original.Score = %d, want 15", original.Score)
	}
}

func TestHandString(t *testing.T) {
	tests := []struct {
		cards string
		want  string
	}{
		{"AsKh", "A♠ K♥ (blackjack)"},
		{"KsQh5c", "K♠ Q♥ 5♣ (bust)"},
		{"Ts5h", "10♠ 5♥ (15)"},
	}
	for _, tt := range tests {
		hand := Score(deck.MustParseCards(tt.cards))
		if got := hand.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

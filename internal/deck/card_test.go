package deck

import "testing"

func TestCardValue(t *testing.T) {
	tests := []struct {
		card string
		want int
	}{
		{"2c", 2},
		{"9d", 9},
		{"Th", 10},
		{"Js", 10},
		{"Qc", 10},
		{"Kd", 10},
		{"As", 11},
	}
	for _, tt := range tests {
		card := MustParseCards(tt.card)[0]
		if got := card.Value(); got != tt.want {
			t.Errorf("%s.Value() = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card string
		want string
	}{
		{"As", "A♠"},
		{"Th", "10♥"},
		{"2d", "2♦"},
		{"Kc", "K♣"},
	}
	for _, tt := range tests {
		card := MustParseCards(tt.card)[0]
		if got := card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("AsKh 2d")
	if err != nil {
		t.Fatalf("ParseCards failed: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(cards))
	}
	if cards[0] != (Card{Suit: Spades, Rank: Ace}) {
		t.Errorf("cards[0] = %v", cards[0])
	}
	if cards[2] != (Card{Suit: Diamonds, Rank: Two}) {
		t.Errorf("cards[2] = %v", cards[2])
	}
}

func TestParseCardsErrors(t *testing.T) {
	for _, s := range []string{"A", "Xs", "Az", "AsK"} {
		if _, err := ParseCards(s); err == nil {
			t.Errorf("ParseCards(%q) should fail", s)
		}
	}
}

func TestIsRed(t *testing.T) {
	if !MustParseCards("Ah")[0].IsRed() {
		t.Error("hearts should be red")
	}
	if !MustParseCards("Ad")[0].IsRed() {
		t.Error("diamonds should be red")
	}
	if MustParseCards("Ac")[0].IsRed() {
		t.Error("clubs should not be red")
	}
	if MustParseCards("As")[0].IsRed() {
		t.Error("spades should not be red")
	}
}

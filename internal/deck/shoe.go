package deck

import (
	rand "math/rand/v2"
)

// Shoe is an ordered set of one or more shuffled 52-card decks.
// Cards are drawn from the tail of the slice, so the logical "top"
// of the shoe is the last element.
type Shoe struct {
	cards    []Card
	numDecks int
	rng      *rand.Rand
}

// NewShoe builds numDecks standard decks, shuffles them with the provided
// RNG and returns the shoe. numDecks values below 1 are treated as 1.
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}

	s := &Shoe{
		cards:    make([]Card, 0, 52*numDecks),
		numDecks: numDecks,
		rng:      rng,
	}

	for i := 0; i < numDecks; i++ {
		for suit := Hearts; suit <= Spades; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}

	s.Shuffle()
	return s
}

// Shuffle applies a Fisher-Yates shuffle to the remaining cards.
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card. The second return value is false
// when the shoe is empty; callers are expected to rebuild the shoe and
// retry rather than treat this as an error.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// NumDecks returns the deck count the shoe was built with.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// Cards returns a copy of the remaining cards in draw order (tail first is
// the next card drawn). Used for snapshots and tests.
func (s *Shoe) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Restore rebuilds a shoe from a saved card sequence. The sequence is used
// as-is, without reshuffling, so persisted games resume mid-shoe.
func Restore(cards []Card, numDecks int, rng *rand.Rand) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	s := &Shoe{
		cards:    make([]Card, len(cards)),
		numDecks: numDecks,
		rng:      rng,
	}
	copy(s.cards, cards)
	return s
}

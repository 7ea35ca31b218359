package tui

import (
	"strconv"
	"strings"

	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
)

// formatCard renders one card with suit colouring.
func formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// formatHand renders a hand as "[A♠ K♥] (21)".
func formatHand(hand game.Hand) string {
	parts := make([]string, len(hand.Cards))
	for i, c := range hand.Cards {
		parts[i] = formatCard(c)
	}
	cards := "[" + strings.Join(parts, " ") + "]"

	switch {
	case hand.Bust:
		return cards + " " + ErrorStyle.Render("BUST")
	case hand.Blackjack:
		return cards + " " + SuccessStyle.Render("BLACKJACK")
	case hand.Soft:
		return cards + " " + InfoStyle.Render("(soft "+strconv.Itoa(hand.Score)+")")
	default:
		return cards + " " + InfoStyle.Render("("+strconv.Itoa(hand.Score)+")")
	}
}

// formatDealerHand renders the dealer hand, hiding the hole card while the
// player is still acting.
func formatDealerHand(hand game.Hand, hideHole bool) string {
	if len(hand.Cards) == 0 {
		return InfoStyle.Render("[--]")
	}
	if hideHole && len(hand.Cards) >= 2 {
		up := formatCard(hand.Cards[0])
		return "[" + up + " " + HiddenCardStyle.Render("??") + "] " +
			InfoStyle.Render("(showing "+strconv.Itoa(hand.Cards[0].Value())+")")
	}
	return formatHand(hand)
}

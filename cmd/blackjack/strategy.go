package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/strategy"
	"github.com/lox/blackjacktrainer/internal/tui"
	"github.com/muesli/termenv"
)

// StrategyCmd prints the basic strategy chart, or a single lookup when a
// hand is given.
type StrategyCmd struct {
	Hand   string `help:"Player cards to look up, e.g. 'As6d'"`
	Dealer string `help:"Dealer upcard, e.g. 'Th'"`
}

func (c *StrategyCmd) Run(g *Globals) error {
	if c.Hand == "" && c.Dealer == "" {
		// Chart output goes through a pipe as often as a terminal, so pick
		// the colour profile from the environment rather than assuming one.
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		fmt.Println(tui.RenderChart())
		return nil
	}
	if c.Hand == "" || c.Dealer == "" {
		return fmt.Errorf("a lookup needs both --hand and --dealer")
	}

	cards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("invalid hand: %w", err)
	}
	if len(cards) < 2 {
		return fmt.Errorf("hand needs at least two cards")
	}

	up, err := deck.ParseCards(c.Dealer)
	if err != nil {
		return fmt.Errorf("invalid dealer upcard: %w", err)
	}
	if len(up) != 1 {
		return fmt.Errorf("dealer upcard must be a single card")
	}

	hand := game.Score(cards)
	action := strategy.SuggestForHand(hand, up[0])
	fmt.Printf("%s vs %s: %s\n", hand, up[0], action.Description())
	return nil
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/blackjacktrainer/cmd/blackjack/shared"
	"github.com/lox/blackjacktrainer/internal/tui"
)

// DrillCmd runs the card-counting practice view.
type DrillCmd struct {
	Decks int `help:"Number of decks in the drill shoe" default:"1"`
}

func (c *DrillCmd) Run(g *Globals) error {
	logger := shared.SetupDiscardLogger()

	model := tui.NewDrillModel(logger, c.Decks, g.rng())
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

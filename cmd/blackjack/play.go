package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/cmd/blackjack/shared"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/storage"
	"github.com/lox/blackjacktrainer/internal/tui"
)

// PlayCmd runs the interactive terminal game.
type PlayCmd struct {
	Fresh   bool   `help:"Ignore any saved round and start fresh"`
	NoSave  bool   `help:"Do not persist rounds or statistics"`
	LogFile string `help:"Write debug logs to this file" type:"path"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger, cleanup, err := c.setupLogger(g)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	settings, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	engine := game.NewEngine(logger, g.rng(),
		game.WithRules(settings.Rules()),
		game.WithStartingBank(settings.Table.StartingBank),
	)

	opts := []tui.PlayOption{
		tui.WithBetLimits(settings.Table.MinBet, settings.Table.MaxBet),
	}

	var store *storage.Store
	if !c.NoSave {
		dir, err := g.stateDir()
		if err != nil {
			return err
		}
		store, err = storage.NewStore(dir, logger)
		if err != nil {
			return fmt.Errorf("failed to open state dir %s: %w", dir, err)
		}
		opts = append(opts, tui.WithStore(store))

		history, err := storage.OpenHistory(filepath.Join(dir, "history.db"))
		if err != nil {
			return err
		}
		defer history.Close()
		opts = append(opts, tui.WithHistory(history))

		if session, ok := store.LoadStats(); ok {
			opts = append(opts, tui.WithSession(session))
		}
	}

	model := tui.NewPlayModel(logger, engine, opts...)

	// The model is subscribed now, so a restored dealer turn replays its
	// draw events into the UI once the program starts.
	if store != nil && !c.Fresh {
		if round, ok := store.LoadRound(); ok && round.Phase != game.Complete {
			engine.Restore(round)
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (c *PlayCmd) setupLogger(g *Globals) (*log.Logger, func() error, error) {
	if c.LogFile != "" {
		return shared.SetupFileLogger(c.LogFile, g.Debug)
	}
	return shared.SetupDiscardLogger(), nil, nil
}

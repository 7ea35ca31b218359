package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/blackjacktrainer/cmd/blackjack/shared"
	"github.com/lox/blackjacktrainer/internal/storage"
)

// StatsCmd summarises saved statistics and the round history log.
type StatsCmd struct {
	Recent int `help:"Also list the N most recent rounds" default:"0"`
}

func (c *StatsCmd) Run(g *Globals) error {
	logger := shared.SetupLogger(g.Debug)

	dir, err := g.stateDir()
	if err != nil {
		return err
	}
	store, err := storage.NewStore(dir, logger)
	if err != nil {
		return err
	}

	session, ok := store.LoadStats()
	if !ok {
		fmt.Println("No saved statistics yet. Play a few hands first.")
	} else {
		fmt.Printf("Session: %d hands played (%d won, %d lost, %d pushed)\n",
			session.HandsPlayed, session.HandsWon, session.HandsLost, session.HandsPushed)
		fmt.Printf("Win rate: %.1f%%  Blackjacks: %d  Busts: %d\n",
			session.WinRate()*100, session.BlackjackCount(), session.BustCount())
		fmt.Printf("Profit/loss: $%.2f (peak $%.2f, trough $%.2f)\n",
			session.ProfitLoss, session.MaxProfit, session.MaxLoss)
	}

	historyPath := filepath.Join(dir, "history.db")
	if _, err := os.Stat(historyPath); err != nil {
		return nil
	}

	history, err := storage.OpenHistory(historyPath)
	if err != nil {
		return err
	}
	defer history.Close()

	totals, err := history.Totals()
	if err != nil {
		return err
	}
	fmt.Printf("\nAll time: %d rounds, $%d wagered, $%.2f paid out, net $%.2f\n",
		totals.Rounds, totals.TotalBet, totals.TotalPaid, totals.NetWin)

	if c.Recent > 0 {
		records, err := history.Recent(c.Recent)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, rec := range records {
			fmt.Printf("%s  bet $%d  net $%+.2f  dealer %s\n",
				rec.CreatedAt.Format("2006-01-02 15:04"), rec.Bet, rec.NetWin, rec.Dealer)
		}
	}
	return nil
}

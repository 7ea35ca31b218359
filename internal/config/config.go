// Package config loads the trainer's settings file. Settings are plain
// table rules and bankroll limits; the engine receives them at
// construction and holds no process-wide state of its own.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjacktrainer/internal/game"
)

// Settings is the decoded blackjack.hcl file.
type Settings struct {
	Table TableSettings `hcl:"table,block"`
}

// TableSettings holds the configurable table rules and bankroll limits.
type TableSettings struct {
	StartingBank     float64 `hcl:"starting_bank,optional"`
	MinBet           int     `hcl:"min_bet,optional"`
	MaxBet           int     `hcl:"max_bet,optional"`
	Decks            int     `hcl:"decks,optional"`
	DealerHitsSoft17 *bool   `hcl:"dealer_hits_soft17,optional"`
	SurrenderAllowed *bool   `hcl:"surrender_allowed,optional"`
	DoubleAfterSplit *bool   `hcl:"double_after_split,optional"`
}

// Default returns the settings used when no config file is present.
func Default() *Settings {
	t := true
	return &Settings{
		Table: TableSettings{
			StartingBank:     1000,
			MinBet:           5,
			MaxBet:           500,
			Decks:            6,
			DealerHitsSoft17: &t,
			SurrenderAllowed: &t,
			DoubleAfterSplit: &t,
		},
	}
}

// Rules converts the table settings into engine rules.
func (s *Settings) Rules() game.Rules {
	return game.Rules{
		NumDecks:         s.Table.Decks,
		DealerHitsSoft17: *s.Table.DealerHitsSoft17,
		SurrenderAllowed: *s.Table.SurrenderAllowed,
		DoubleAfterSplit: *s.Table.DoubleAfterSplit,
	}
}

// Load reads settings from an HCL file. A missing file yields defaults;
// a malformed file is an error so a typo never silently changes the
// rules mid-session.
func Load(filename string) (*Settings, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var settings Settings
	diags = gohcl.DecodeBody(file.Body, nil, &settings)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&settings)
	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func applyDefaults(s *Settings) {
	def := Default()
	if s.Table.StartingBank == 0 {
		s.Table.StartingBank = def.Table.StartingBank
	}
	if s.Table.MinBet == 0 {
		s.Table.MinBet = def.Table.MinBet
	}
	if s.Table.MaxBet == 0 {
		s.Table.MaxBet = def.Table.MaxBet
	}
	if s.Table.Decks == 0 {
		s.Table.Decks = def.Table.Decks
	}
	if s.Table.DealerHitsSoft17 == nil {
		s.Table.DealerHitsSoft17 = def.Table.DealerHitsSoft17
	}
	if s.Table.SurrenderAllowed == nil {
		s.Table.SurrenderAllowed = def.Table.SurrenderAllowed
	}
	if s.Table.DoubleAfterSplit == nil {
		s.Table.DoubleAfterSplit = def.Table.DoubleAfterSplit
	}
}

func validate(s *Settings) error {
	t := s.Table
	if t.StartingBank < 100 || t.StartingBank > 100000 {
		return fmt.Errorf("starting_bank %v out of range [100, 100000]", t.StartingBank)
	}
	if t.MinBet < 1 || t.MinBet > 1000 {
		return fmt.Errorf("min_bet %d out of range [1, 1000]", t.MinBet)
	}
	if t.MaxBet < t.MinBet || t.MaxBet > 10000 {
		return fmt.Errorf("max_bet %d out of range [%d, 10000]", t.MaxBet, t.MinBet)
	}
	if t.Decks < 1 || t.Decks > 8 {
		return fmt.Errorf("decks %d out of range [1, 8]", t.Decks)
	}
	return nil
}

package main

import (
	rand "math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lox/blackjacktrainer/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every subcommand.
type Globals struct {
	Debug    bool   `help:"Enable debug logging"`
	Config   string `help:"Path to HCL config file" type:"path"`
	StateDir string `help:"Directory for saved state (default ~/.blackjacktrainer)" type:"path"`
	Seed     int64  `help:"RNG seed for reproducible shoes (0 = random)"`
}

// stateDir resolves the state directory, defaulting under the home dir.
func (g *Globals) stateDir() (string, error) {
	if g.StateDir != "" {
		return g.StateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blackjacktrainer"), nil
}

// rng builds the shoe RNG from the seed flag.
func (g *Globals) rng() *rand.Rand {
	if g.Seed != 0 {
		return randutil.New(g.Seed)
	}
	return randutil.New(time.Now().UnixNano())
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play blackjack in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve the game over a websocket for browser clients"`
	Strategy StrategyCmd      `cmd:"" help:"Show the basic strategy chart or look up a hand"`
	Drill    DrillCmd         `cmd:"" help:"Practice card counting against a live shoe"`
	Stats    StatsCmd         `cmd:"" help:"Show session statistics and round history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack trainer with basic strategy and counting drills"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

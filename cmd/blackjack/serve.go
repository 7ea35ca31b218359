package main

import (
	"github.com/lox/blackjacktrainer/cmd/blackjack/shared"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/server"
)

// ServeCmd runs the websocket server for browser clients.
type ServeCmd struct {
	Addr string `help:"Listen address" default:"localhost:8080"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := shared.SetupLogger(g.Debug)

	settings, err := config.Load(g.Config)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	srv := server.NewServer(logger, settings, g.Seed)
	return srv.Run(ctx, c.Addr)
}

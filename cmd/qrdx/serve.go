package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrdx/internal/logger"
	"github.com/Mictilt/qrdx/internal/server"
)

func serveCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the HTTP export API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default from config, :8080)"},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("addr") {
				e.cfg.Server.Addr = c.String("addr")
			}
			return server.New(e.cfg, logger.Named("server")).Run(c.Context)
		},
	}
}

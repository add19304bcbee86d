package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrdx/internal/config"
	"github.com/Mictilt/qrdx/internal/logger"
)

// env is what Before prepares for the commands.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  "qrdx",
		Usage: "export styled QR codes as svg, png, jpg, pdf or eps",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log debug messages",
				EnvVars: []string{"QRDX_DEBUG"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config with presets and named logos",
				EnvVars: []string{"QRDX_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.Bool("debug") {
				cfg.Log.Debug = true
			}
			if err = logger.Init(logger.Config{
				Debug:     cfg.Log.Debug,
				LogToFile: cfg.Log.LogToFile,
				LogsDir:   cfg.Log.LogsDir,
			}); err != nil {
				return err
			}
			e.cfg, e.log = cfg, logger.Log
			return nil
		},
		After: func(c *cli.Context) error {
			if logger.Log != nil {
				_ = logger.Log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			exportCommand(e),
			inspectCommand(e),
			presetsCommand(e),
			batchCommand(e),
			serveCommand(e),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "qrdx:", err)
		stop()
		os.Exit(1)
	}
}

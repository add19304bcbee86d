package main

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrdx/internal/batch"
	"github.com/Mictilt/qrdx/internal/logger"
)

func batchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "export every job of a YAML job file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "YAML list of jobs", Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory", Value: "."},
			&cli.IntFlag{Name: "concurrency", Aliases: []string{"j"}, Usage: "exports in flight", Value: runtime.NumCPU()},
		},
		Action: func(c *cli.Context) error {
			jobs, err := batch.LoadJobs(c.String("file"))
			if err != nil {
				return err
			}

			r := &batch.Runner{
				Config:      e.cfg,
				OutDir:      c.String("out"),
				Concurrency: c.Int("concurrency"),
				AllowFiles:  true,
				Log:         logger.Named("batch"),
			}
			results, err := r.Run(c.Context, jobs)
			if results == nil && err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(c.App.ErrWriter, "job %d: %v\n", res.Index+1, res.Err)
					continue
				}
				fmt.Fprintln(c.App.Writer, res.Path)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(results))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/writer/terminal"
)

func inspectCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "print the symbol parameters and a text preview",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "text or URL to encode", Required: true},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "error correction level L, M, Q or H", Value: "Q"},
			&cli.IntFlag{Name: "mask", Usage: "force a mask pattern 0..7", Value: -1},
			&cli.BoolFlag{Name: "full", Usage: "two columns per module instead of half blocks"},
			&cli.BoolFlag{Name: "invert", Usage: "swap dark and light, for dark terminals"},
			&cli.BoolFlag{Name: "show", Usage: "draw full screen and wait for a key"},
		},
		Action: func(c *cli.Context) error {
			level, err := encoder.ParseLevel(c.String("level"))
			if err != nil {
				return err
			}
			var opts []encoder.EncodeOption
			if c.IsSet("mask") {
				opts = append(opts, encoder.WithMask(c.Int("mask")))
			}

			data := c.String("data")
			m, err := encoder.Encode(data, level, opts...)
			if err != nil {
				return err
			}
			e.log.Debugw("encoded", "version", m.Version(), "mask", m.Mask())

			w := terminal.New()
			w.Compressed = !c.Bool("full")
			w.Invert = c.Bool("invert")
			if c.Bool("show") {
				return w.Show(m)
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "version\t%d\n", m.Version())
			fmt.Fprintf(tw, "level\t%s (%d%% recovery)\n", m.Level(), m.Level().RecoveryPercent())
			fmt.Fprintf(tw, "mask\t%d\n", m.Mask())
			fmt.Fprintf(tw, "side\t%d modules\n", m.Side())
			fmt.Fprintf(tw, "payload\t%d of %d bytes\n", len(data), encoder.Capacity(m.Version(), m.Level()))
			fmt.Fprintf(tw, "correctable\t%d codewords per block\n", m.CorrectableErrors())
			if err = tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer)
			return w.Write(c.App.Writer, m)
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func presetsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "presets",
		Usage: "list the style presets",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yaml", Usage: "print the presets as YAML"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("yaml") {
				enc := yaml.NewEncoder(c.App.Writer)
				enc.SetIndent(2)
				if err := enc.Encode(e.cfg.Presets); err != nil {
					return err
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBODY\tEYE\tCOLORS")
			for _, id := range e.cfg.PresetIDs() {
				p := e.cfg.Presets[id]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s on %s\n",
					id, p.Name, p.Style.BodyPattern, p.Style.CornerEyePattern, p.Style.FgColor, p.Style.BgColor)
			}
			return tw.Flush()
		},
	}
}

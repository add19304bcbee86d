package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

// styleFlags override the preset style of an export.
func styleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: "start from a named preset"},
		&cli.StringFlag{Name: "fg", Usage: "foreground color"},
		&cli.StringFlag{Name: "bg", Usage: "background color, or transparent"},
		&cli.StringFlag{Name: "eye", Usage: "corner eye color"},
		&cli.StringFlag{Name: "dot", Usage: "corner eye dot color"},
		&cli.StringFlag{Name: "body-pattern", Usage: "module pattern, e.g. dots, classy, fluid"},
		&cli.StringFlag{Name: "eye-pattern", Usage: "corner eye pattern"},
		&cli.StringFlag{Name: "eye-dot-pattern", Usage: "corner eye dot pattern"},
		&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "error correction level L, M, Q or H"},
		&cli.IntFlag{Name: "margin", Usage: "quiet margin in modules"},
		&cli.StringFlag{Name: "template", Usage: "frame, frame-rounded, caption or badge"},
		&cli.StringFlag{Name: "text", Usage: "caption text"},
		&cli.StringFlag{Name: "logo", Usage: "logo file, data URI or named logo"},
		&cli.Float64Flag{Name: "logo-size", Usage: "logo side as a share of the symbol, 0.1 to 0.3"},
	}
}

// styleFromFlags layers the config defaults, --preset and the flags.
func styleFromFlags(c *cli.Context, e *env) (style.Config, error) {
	overlay := style.Config{
		FgColor:             c.String("fg"),
		BgColor:             c.String("bg"),
		EyeColor:            c.String("eye"),
		DotColor:            c.String("dot"),
		BodyPattern:         c.String("body-pattern"),
		CornerEyePattern:    c.String("eye-pattern"),
		CornerEyeDotPattern: c.String("eye-dot-pattern"),
		Level:               c.String("level"),
		TemplateID:          c.String("template"),
		CustomText:          c.String("text"),
		Logo:                c.String("logo"),
		LogoSize:            c.Float64("logo-size"),
	}
	overlay.ShowLogo = overlay.Logo != ""
	if c.IsSet("margin") {
		m := c.Int("margin")
		overlay.Margin = &m
	}
	return e.cfg.Style(c.String("preset"), overlay)
}

func exportCommand(e *env) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "text or URL to encode", Required: true},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "png, jpg, svg, pdf or eps", Value: "png"},
		&cli.StringFlag{Name: "size", Aliases: []string{"s"}, Usage: "side in pixels or a preset size (small .. 3xl)"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, - for stdout (default qr-code-WxH.ext)"},
		&cli.BoolFlag{Name: "logo-strict", Usage: "fail instead of raising the level for a logo"},
		&cli.BoolFlag{Name: "data-uri", Usage: "print a data URI instead of writing a file"},
	}

	return &cli.Command{
		Name:  "export",
		Usage: "encode text and write the styled QR code",
		Flags: append(flags, styleFlags()...),
		Action: func(c *cli.Context) error {
			cfg, err := styleFromFlags(c, e)
			if err != nil {
				return err
			}

			size := standard.Square(style.DefaultDefaults().Size)
			if cfg.Size > 0 {
				size = standard.Square(cfg.Size)
			}
			if c.IsSet("size") {
				if size, err = standard.ParseSize(c.String("size")); err != nil {
					return err
				}
			}

			opts := []qrdx.ExportOption{
				qrdx.WithLogoLoader(e.cfg.LogoLoader(true)),
				qrdx.WithLogger(e.log.Zap()),
			}
			out := c.String("out")
			if out != "" && out != "-" {
				opts = append(opts, qrdx.WithFilename(filepath.Base(out)))
			}
			if c.Bool("logo-strict") {
				opts = append(opts, qrdx.WithLogoPolicy(encoder.LogoStrict))
			}

			art, err := qrdx.ExportArtifact(c.String("data"), cfg, standard.Format(c.String("format")), size, opts...)
			if err != nil {
				return err
			}
			if art.Contrast.Warning {
				e.log.Warnw(art.Contrast.Message(), "ratio", fmt.Sprintf("%.2f", art.Contrast.Ratio))
			}
			if art.LevelUpgraded {
				e.log.Infow("error correction raised for the logo", "level", art.Level.String())
			}

			switch {
			case c.Bool("data-uri"):
				_, err = fmt.Fprintln(c.App.Writer, art.DataURI())
				return err
			case out == "-":
				_, err = c.App.Writer.Write(art.Data)
				return err
			}

			path := art.Filename
			if out != "" {
				path = filepath.Join(filepath.Dir(out), art.Filename)
			}
			if err = os.WriteFile(path, art.Data, 0o644); err != nil {
				return errors.Wrap(err, "write artifact")
			}
			fmt.Fprintf(c.App.Writer, "%s: version %d, level %s, %s\n", path, art.Version, art.Level, art.Size)
			return nil
		},
	}
}

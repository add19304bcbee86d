package main

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

func main() {
	logo := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(logo, logo.Bounds(), &image.Uniform{C: color.RGBA{R: 0xe1, G: 0x1d, B: 0x48, A: 0xff}}, image.Point{}, draw.Src)

	// Level L cannot hold a logo, the level is raised to Q before encoding.
	a, err := qrdx.ExportArtifact("https://github.com/Mictilt/qrdx",
		style.Config{Level: "L", LogoSize: 0.2},
		standard.FormatSVG, standard.Square(400),
		qrdx.WithLogoImage(logo),
		qrdx.WithFilename("qrcode_with_logo"),
	)
	if err != nil {
		panic(err)
	}
	if a.LevelUpgraded {
		println("error correction raised to " + a.Level.String())
	}
	if err = os.WriteFile(a.Filename, a.Data, 0o644); err != nil {
		panic(err)
	}

	// With the strict policy the same request fails instead.
	_, err = qrdx.ExportArtifact("https://github.com/Mictilt/qrdx",
		style.Config{Level: "L"},
		standard.FormatPNG, standard.Square(400),
		qrdx.WithLogoImage(logo),
		qrdx.WithLogoPolicy(encoder.LogoStrict),
	)
	if err != nil {
		println("strict: " + err.Error())
	}
}

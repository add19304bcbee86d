package main

import (
	"os"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

func main() {
	// one SVG per body pattern, eyes and colors left at their defaults
	for _, body := range style.BodyPatterns {
		a, err := qrdx.ExportArtifact("https://github.com/Mictilt/qrdx",
			style.Config{BodyPattern: string(body)},
			standard.FormatSVG, standard.Square(400),
			qrdx.WithFilename("qrcode_"+string(body)),
		)
		if err != nil {
			panic(err)
		}
		if err = os.WriteFile(a.Filename, a.Data, 0o644); err != nil {
			panic(err)
		}
	}

	// rounded eyes with a caption underneath
	a, err := qrdx.ExportArtifact("https://github.com/Mictilt/qrdx",
		style.Config{
			BodyPattern:         string(style.BodyFluid),
			CornerEyePattern:    string(style.EyeExtraRounded),
			CornerEyeDotPattern: string(style.EyeDotCircle),
			TemplateID:          string(style.TemplateCaption),
			CustomText:          "Scan me",
		},
		standard.FormatSVG, standard.Square(800),
		qrdx.WithFilename("qrcode_caption"),
	)
	if err != nil {
		panic(err)
	}
	if err = os.WriteFile(a.Filename, a.Data, 0o644); err != nil {
		panic(err)
	}

	println("SVG files created successfully!")
}

package main

import (
	"os"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

func save(name string, cfg style.Config) {
	a, err := qrdx.ExportArtifact("https://github.com/Mictilt/qrdx", cfg,
		standard.FormatPNG, standard.Square(600), qrdx.WithFilename(name))
	if err != nil {
		panic(err)
	}
	if a.Contrast.Warning {
		println(name + ": " + a.Contrast.Message())
	}
	if err = os.WriteFile(a.Filename, a.Data, 0o644); err != nil {
		panic(err)
	}
}

func main() {
	// Data modules blue, finder rings red. The finder centers follow the
	// ring color unless dotColor is set.
	save("element-colors-qr", style.Config{
		FgColor:  "#0066CC",
		EyeColor: "#CC0000",
		Level:    "Q",
	})

	// Every element in its own color.
	save("element-colors-all", style.Config{
		FgColor:             "#00a651",
		EyeColor:            "#ff0000",
		DotColor:            "#1d4ed8",
		BodyPattern:         string(style.BodyCircle),
		CornerEyePattern:    string(style.EyeRounded),
		CornerEyeDotPattern: string(style.EyeDotCircle),
	})

	// Yellow on white is kept but reported as hard to scan.
	save("element-colors-low-contrast", style.Config{
		FgColor: "#ffff00",
		BgColor: "#ffffff",
	})

	println("QR codes with element colors saved")
}

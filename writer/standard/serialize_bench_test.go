package standard_test

import (
	"testing"

	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

func Benchmark_Serialize(b *testing.B) {
	scene := mustScene(b, style.Config{BodyPattern: "fluid"})
	for _, f := range standard.Formats {
		b.Run(string(f), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = standard.Serialize(scene, f, standard.Square(400),
					standard.WithCreationDate(fixedDate))
			}
		})
	}
}

// squares are emitted as rects, circles as arcs and fluid as merged outlines
func Benchmark_Serialize_SVG_Bodies(b *testing.B) {
	for _, body := range []style.BodyPattern{style.BodySquare, style.BodyCircle, style.BodyFluid} {
		scene := mustScene(b, style.Config{BodyPattern: string(body)})
		b.Run(string(body), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = standard.Serialize(scene, standard.FormatSVG, standard.Square(800))
			}
		})
	}
}

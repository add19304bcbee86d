package render

import (
	"image"
	"image/color"

	"github.com/Mictilt/qrdx/encoder"
	"github.com/Mictilt/qrdx/style"
)

// Scene is a rendered symbol in module space, independent of any output
// format. One unit is one module.
type Scene struct {
	// Width and Height of the view box, quiet margin and template included.
	Width, Height float64
	// Origin is the position of matrix module (0, 0).
	Origin Vec
	Side   int
	Margin int

	Background color.RGBA
	// Layers are ordered bottom to top, one per zone.
	Layers []Layer

	Logo    *Logo
	Frame   *Frame
	Caption *Caption
}

// Layer holds the primitives of one zone.
type Layer struct {
	Zone encoder.Zone
	Fill color.RGBA
	// Crisp is set when every primitive is an axis aligned Rect on the module
	// grid, so serializers may snap edges to whole pixels.
	Crisp      bool
	Primitives []Primitive
}

// Logo is the placement of the center image.
type Logo struct {
	// Modules is the light footprint in matrix coordinates.
	Modules encoder.Rect
	// X, Y, W, H is where the image goes in module space.
	X, Y, W, H float64

	Image image.Image
	// Source holds the original bytes when the logo is an SVG document, for
	// serializers that can embed it as is.
	Source []byte
	MIME   string
}

// Frame is the decoration drawn by a template.
type Frame struct {
	Template   style.Template
	Fill       color.RGBA
	Primitives []Primitive
}

// Caption is a single line of text centered on (X, Y).
type Caption struct {
	Text string
	X, Y float64
	// Size is the font height in modules.
	Size  float64
	Color color.RGBA
}

// Layer returns the layer of zone z, nil when the scene has none.
func (s *Scene) Layer(z encoder.Zone) *Layer {
	for i := range s.Layers {
		if s.Layers[i].Zone == z {
			return &s.Layers[i]
		}
	}
	return nil
}

// Fit returns the scale and offsets that center the view box inside a
// w x h pixel canvas without distortion.
func (s *Scene) Fit(w, h int) (scale, dx, dy float64) {
	sx, sy := float64(w)/s.Width, float64(h)/s.Height
	scale = sx
	if sy < scale {
		scale = sy
	}
	dx = (float64(w) - s.Width*scale) / 2
	dy = (float64(h) - s.Height*scale) / 2
	return scale, dx, dy
}

// Count returns the number of primitives over all layers.
func (s *Scene) Count() int {
	n := 0
	for _, l := range s.Layers {
		n += len(l.Primitives)
	}
	return n
}
